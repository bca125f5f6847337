package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SurveyController 处理普通问卷的创建、查询、状态与结果
type SurveyController struct {
	Service *service.SurveyService
}

func NewSurveyController(s *service.SurveyService) *SurveyController {
	return &SurveyController{Service: s}
}

// surveyID parses the :id path parameter, writing a 400 when it is malformed.
func surveyID(ctx *gin.Context) (uint, bool) {
	id, err := util.ParseUintParam(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "问卷ID无效")
		return 0, false
	}
	return id, true
}

// CreateSurvey godoc
// @Summary 创建问卷
// @Description 创建由评分、单选、文本题组成的普通问卷，初始状态为 DRAFT
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.SurveyReq true "问卷内容"
// @Success 201 {object} util.Response{data=service.SurveyDetail} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /surveys [post]
func (c *SurveyController) CreateSurvey(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SurveyReq
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

// GetSurvey godoc
// @Summary 获取问卷详情
// @Description 创建者可查看任意状态；其他人仅可查看已发布且未过期的问卷
// @Tags 问卷
// @Produce json
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response{data=service.SurveyDetail} "成功"
// @Failure 400 {object} util.Response "问卷已过期"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /surveys/{id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	id, ok := surveyID(ctx)
	if !ok {
		return
	}

	detail, err := c.Service.Get(ctx.Request.Context(), id, util.OptionalUserID(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// ListMySurveys godoc
// @Summary 我的问卷列表
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Survey} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /surveys [get]
func (c *SurveyController) ListMySurveys(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	surveys, err := c.Service.List(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, surveys)
}

// ListPublicSurveys godoc
// @Summary 公开问卷列表
// @Description 已发布、公开且未过期的问卷
// @Tags 问卷
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Survey} "成功"
// @Router /surveys/public [get]
func (c *SurveyController) ListPublicSurveys(ctx *gin.Context) {
	surveys, err := c.Service.ListPublic(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, surveys)
}

// UpdateStatus godoc
// @Summary 修改问卷状态
// @Description status 取值 DRAFT、PUBLISHED、CLOSED，兼容 active
// @Tags 问卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Param request body service.StatusReq true "目标状态"
// @Success 200 {object} util.Response{data=model.Survey} "成功"
// @Failure 400 {object} util.Response "状态无效"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /surveys/{id}/status [patch]
func (c *SurveyController) UpdateStatus(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := surveyID(ctx)
	if !ok {
		return
	}

	var req service.StatusReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.Service.UpdateStatus(ctx.Request.Context(), id, user.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, survey)
}

// DeleteSurvey godoc
// @Summary 删除问卷
// @Description 同时删除题目、选项、答卷与作答记录
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /surveys/{id} [delete]
func (c *SurveyController) DeleteSurvey(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := surveyID(ctx)
	if !ok {
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), id, user.UserID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// GetResults godoc
// @Summary 问卷统计结果
// @Description 评分题平均分、单选题选项计数、文本题答案
// @Tags 问卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问卷ID"
// @Success 200 {object} util.Response{data=service.SurveyResults} "成功"
// @Failure 404 {object} util.Response "问卷不存在"
// @Router /surveys/{id}/results [get]
func (c *SurveyController) GetResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := surveyID(ctx)
	if !ok {
		return
	}

	results, err := c.Service.Results(ctx.Request.Context(), id, user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, results)
}
