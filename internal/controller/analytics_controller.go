package controller

import (
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// GetAnalytics godoc
// @Summary 全站测验统计
// @Description 测验总数、参与人数、平均分，各测验得分统计，作答最多/最少的题目
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.QuizAnalytics}
// @Router /analytics/ [get]
func (c *AnalyticsController) GetAnalytics(ctx *gin.Context) {
	analytics, err := c.AnalyticsService.Overview(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}
