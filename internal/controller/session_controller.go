package controller

import (
	"dark_patterns_game/internal/game"
	"dark_patterns_game/internal/service"
	"dark_patterns_game/internal/util"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// StartSessionRequest registers the participant and opens the walkthrough.
// swagger:model StartSessionRequest
type StartSessionRequest struct {
	Name string `json:"name"`
}

// SubmitStepRequest is one step's form. Form fields depend on the step.
// swagger:model SubmitStepRequest
type SubmitStepRequest struct {
	Step *int            `json:"step"`
	Form json.RawMessage `json:"form" swaggertype:"object"`
}

// sessionID 取自令牌，路由参数已由 SessionAuth 校验
func sessionID(ctx *gin.Context) string {
	if claims := util.GetSessionFromContext(ctx); claims != nil {
		return claims.SessionID
	}
	return ctx.Param("id")
}

func (c *SessionController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrValidation), errors.Is(err, game.ErrInvalidForm):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx, "Session not found")
	case errors.Is(err, game.ErrInvalidTransition), errors.Is(err, game.ErrStepMismatch):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// Start godoc
// @Summary 开始游戏
// @Description 注册参与者并创建游戏会话，返回会话令牌
// @Tags 游戏
// @Accept  json
// @Produce  json
// @Param   body body StartSessionRequest true "参与者名称"
// @Success 201 {object} service.StartResult
// @Failure 400 {object} util.ErrorResponse "名称为空"
// @Failure 500 {object} util.ErrorResponse "服务器内部错误"
// @Router /sessions [post]
func (c *SessionController) Start(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	res, err := c.SessionService.Start(ctx.Request.Context(), req.Name)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"sessionId": res.SessionID,
		"userId":    res.UserID,
		"token":     res.Token,
		"step":      res.View,
	})
}

// Get godoc
// @Summary 当前步骤
// @Description 返回会话当前步骤及其展示状态
// @Tags 游戏
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "会话ID"
// @Success 200 {object} util.DataResponse{data=game.StepView}
// @Failure 401 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	view, err := c.SessionService.Get(ctx.Request.Context(), sessionID(ctx))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// SubmitStep godoc
// @Summary 提交步骤表单
// @Description 提交当前步骤；部分步骤会要求多次尝试，最后一步完成后保存成绩
// @Tags 游戏
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "会话ID"
// @Param   body body SubmitStepRequest true "步骤表单"
// @Success 200 {object} util.DataResponse{data=service.StepResult}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Failure 409 {object} util.ErrorResponse "步骤或状态不匹配"
// @Router /sessions/{id}/steps [post]
func (c *SessionController) SubmitStep(ctx *gin.Context) {
	var req SubmitStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Step == nil {
		util.BadRequest(ctx, "step is required")
		return
	}

	res, err := c.SessionService.Submit(ctx.Request.Context(), sessionID(ctx), *req.Step, req.Form)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Restart godoc
// @Summary 放弃会话
// @Description 丢弃会话的全部进度，重新开始需要新建会话
// @Tags 游戏
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "会话ID"
// @Success 200 {object} object
// @Failure 404 {object} util.ErrorResponse
// @Router /sessions/{id} [delete]
func (c *SessionController) Restart(ctx *gin.Context) {
	if err := c.SessionService.Restart(ctx.Request.Context(), sessionID(ctx)); err != nil {
		c.handleError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"message": "Session discarded"})
}
