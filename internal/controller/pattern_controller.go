package controller

import (
	"dark_patterns_game/internal/game"
	"dark_patterns_game/internal/util"

	"github.com/gin-gonic/gin"
)

type PatternController struct{}

func NewPatternController() *PatternController {
	return &PatternController{}
}

// ListPatterns godoc
// @Summary 黑暗模式目录
// @Description 十个步骤对应的黑暗模式及其说明
// @Tags 游戏
// @Produce  json
// @Success 200 {object} util.DataResponse{data=[]game.PatternInfo}
// @Router /patterns [get]
func (c *PatternController) ListPatterns(ctx *gin.Context) {
	util.Success(ctx, game.Catalogue())
}
