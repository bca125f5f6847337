package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ResponseController 处理答卷提交
type ResponseController struct {
	Service *service.ResponseService
}

func NewResponseController(s *service.ResponseService) *ResponseController {
	return &ResponseController{Service: s}
}

// SubmitResponses godoc
// @Summary 提交答卷
// @Description 匿名问卷可不登录；实名问卷每个用户只能提交一次
// @Tags 答卷
// @Accept json
// @Produce json
// @Param id path int true "问卷ID"
// @Param request body service.SubmitReq true "答案列表"
// @Success 201 {object} util.Response{data=service.SubmitResult} "提交成功"
// @Failure 400 {object} util.Response "未发布、已过期、已达上限或参数错误"
// @Failure 404 {object} util.Response "问卷、题目或选项不存在"
// @Failure 409 {object} util.Response "重复提交"
// @Router /surveys/{id}/responses [post]
func (c *ResponseController) SubmitResponses(ctx *gin.Context) {
	id, ok := surveyID(ctx)
	if !ok {
		return
	}

	var req service.SubmitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), id, util.OptionalUserID(ctx), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
