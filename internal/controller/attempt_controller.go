package controller

import (
	"errors"
	"net/http"

	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// swagger:model SubmitAnswer
type SubmitAnswer struct {
	QuestionID uint `json:"question_id" binding:"required"`
	ChoiceID   uint `json:"choice_id" binding:"required"`
}

// swagger:model TakeQuizRequest
type TakeQuizRequest struct {
	Answers []SubmitAnswer `json:"answers" binding:"max=100,dive"`
}

// TakeQuiz godoc
// @Summary 提交测验
// @Description 判分并记录一次新的尝试；不属于该测验的题目标记为 skipped，不计分
// @Tags 作答
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验 ID"
// @Param body body TakeQuizRequest true "作答列表"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/{id}/take/ [post]
func (c *AttemptController) TakeQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req TakeQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err)
		return
	}

	answers := make([]service.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, service.AnswerInput{QuestionID: a.QuestionID, ChoiceID: a.ChoiceID})
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	result, err := c.AttemptService.Submit(ctx.Request.Context(), quizID, claims.UserID, answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.Error(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, util.ErrTooManyAnswers):
			util.FieldErrors(ctx, map[string]string{"answers": "max=100"})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GetResults godoc
// @Summary 最近一次测验结果
// @Tags 作答
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验 ID"
// @Success 200 {object} util.Response{data=service.QuizResult}
// @Failure 404 {object} util.Response "测验不存在或尚未作答"
// @Router /quizzes/{id}/results/ [get]
func (c *AttemptController) GetResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Param("id"))
	result, err := c.AttemptService.LatestResult(ctx.Request.Context(), quizID, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) || errors.Is(err, util.ErrAttemptNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GetHistory godoc
// @Summary 作答历史
// @Description 当前用户的全部尝试，最新的在前
// @Tags 作答
// @Produce json
// @Security ApiKeyAuth
// @Param quiz query int false "仅查看某个测验"
// @Success 200 {object} util.Response{data=[]service.AttemptSummary}
// @Router /attempts/ [get]
func (c *AttemptController) GetHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID := util.MustParseUint(ctx.Query("quiz"))
	history, err := c.AttemptService.History(ctx.Request.Context(), claims.UserID, quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, history)
}
