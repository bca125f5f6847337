package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// WeightedSurveyController 处理加权评分问卷
type WeightedSurveyController struct {
	Service *service.WeightedSurveyService
}

func NewWeightedSurveyController(s *service.WeightedSurveyService) *WeightedSurveyController {
	return &WeightedSurveyController{Service: s}
}

// CreateWeightedSurvey godoc
// @Summary 创建加权问卷
// @Description 每个项目下各维度权重之和必须为 1（误差 0.001），任一项目不合法则整体不保存
// @Tags 加权问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.WeightedSurveyReq true "项目、维度与选项"
// @Success 201 {object} util.Response{data=service.SurveyDetail} "创建成功"
// @Failure 400 {object} util.Response "权重不合法或参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /weighted-surveys [post]
func (c *WeightedSurveyController) CreateWeightedSurvey(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.WeightedSurveyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	detail, err := c.Service.Create(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, detail)
}

// GetWeightedSurvey godoc
// @Summary 获取加权问卷详情
// @Tags 加权问卷
// @Produce json
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response{data=service.SurveyDetail} "成功"
// @Failure 400 {object} util.Response "问卷已过期"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /weighted-surveys/{id} [get]
func (c *WeightedSurveyController) GetWeightedSurvey(ctx *gin.Context) {
	id, ok := surveyID(ctx)
	if !ok {
		return
	}

	detail, err := c.Service.GetDetail(ctx.Request.Context(), id, util.OptionalUserID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// GetWeightedResponses godoc
// @Summary 加权问卷作答明细
// @Description 按提交时间倒序，包含选项分值、维度权重与所属项目
// @Tags 加权问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response{data=[]service.WeightedResponseView} "成功"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /weighted-surveys/{id}/responses [get]
func (c *WeightedSurveyController) GetWeightedResponses(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := surveyID(ctx)
	if !ok {
		return
	}

	rows, err := c.Service.GetResponses(ctx.Request.Context(), id, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// GetWeightedScores godoc
// @Summary 加权问卷得分
// @Description 按当前权重实时计算每份答卷的项目得分及项目平均分
// @Tags 加权问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response{data=service.WeightedScores} "成功"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /weighted-surveys/{id}/scores [get]
func (c *WeightedSurveyController) GetWeightedScores(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := surveyID(ctx)
	if !ok {
		return
	}

	scores, err := c.Service.GetScores(ctx.Request.Context(), id, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}
