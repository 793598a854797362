package controller

import (
	"dark_patterns_game/internal/service"
	"dark_patterns_game/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ScoreController struct {
	ScoreService *service.ScoreService
}

func NewScoreController(scoreService *service.ScoreService) *ScoreController {
	return &ScoreController{ScoreService: scoreService}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name string `json:"name"`
}

// SubmitScoreRequest carries the elapsed seconds of a finished walkthrough.
// swagger:model SubmitScoreRequest
type SubmitScoreRequest struct {
	UserID string `json:"userId"`
	Score  *int   `json:"score"`
}

// Register godoc
// @Summary 注册参与者
// @Description 用显示名称注册一名参与者
// @Tags 成绩
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "参与者名称"
// @Success 201 {object} object "创建成功"
// @Failure 400 {object} util.ErrorResponse "名称为空"
// @Failure 500 {object} util.ErrorResponse "服务器内部错误"
// @Router /register [post]
func (c *ScoreController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid request body")
		return
	}

	user, err := c.ScoreService.CreateUser(ctx.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			util.BadRequest(ctx, "Name is required")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"userId":  user.ID,
		"message": "User registered successfully",
	})
}

// SubmitScore godoc
// @Summary 提交成绩
// @Description 保存参与者的完成时间（秒），重复提交会覆盖
// @Tags 成绩
// @Accept  json
// @Produce  json
// @Param   body body SubmitScoreRequest true "成绩"
// @Success 200 {object} object "保存成功"
// @Failure 400 {object} util.ErrorResponse "参数缺失"
// @Failure 404 {object} util.ErrorResponse "用户不存在"
// @Failure 500 {object} util.ErrorResponse "服务器内部错误"
// @Router /score [post]
func (c *ScoreController) SubmitScore(ctx *gin.Context) {
	var req SubmitScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "userId and score are required")
		return
	}

	stored, err := c.ScoreService.SubmitScore(ctx.Request.Context(), req.UserID, req.Score)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrValidation):
			util.BadRequest(ctx, "userId and score are required")
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, "User not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.OK(ctx, gin.H{
		"score":   stored,
		"message": "Score saved successfully",
	})
}

// ListScores godoc
// @Summary 排行榜
// @Description 所有成绩、统计数据以及尚未完成的参与者
// @Tags 成绩
// @Produce  json
// @Success 200 {object} util.DataResponse{data=model.ScoreBoard}
// @Failure 500 {object} util.ErrorResponse "服务器内部错误"
// @Router /scores [get]
func (c *ScoreController) ListScores(ctx *gin.Context) {
	board, err := c.ScoreService.ListScoresWithStatistics(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, board)
}
