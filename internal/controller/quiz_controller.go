package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model CreateChoiceRequest
type CreateChoiceRequest struct {
	Text      string `json:"text" binding:"required,max=255"`
	IsCorrect bool   `json:"is_correct"`
}

// swagger:model CreateQuestionRequest
type CreateQuestionRequest struct {
	Text    string                `json:"text" binding:"required,max=255"`
	Choices []CreateChoiceRequest `json:"choices" binding:"required,min=2,dive"`
}

// swagger:model CreateQuizRequest
type CreateQuizRequest struct {
	Title           string                  `json:"title" binding:"required,max=255"`
	Category        uint                    `json:"category" binding:"required"`
	DifficultyLevel string                  `json:"difficulty_level" binding:"omitempty,oneof=Easy Medium Hard"`
	PassingScore    *uint                   `json:"passing_score" binding:"omitempty,max=100"`
	Questions       []CreateQuestionRequest `json:"questions" binding:"max=100,dive"`
}

// QuizListQuery 测验列表查询参数
type QuizListQuery struct {
	Title           string `form:"title" json:"title"`
	Category        uint   `form:"category" json:"category"`
	DifficultyLevel string `form:"difficulty_level" json:"difficulty_level" binding:"omitempty,oneof=Easy Medium Hard"`
	DateCreated     string `form:"date_created" json:"date_created" binding:"omitempty,datetime=2006-01-02"`
	Search          string `form:"search" json:"search"`
	Ordering        string `form:"ordering" json:"ordering" binding:"omitempty,oneof=created_at -created_at title -title"`
	Page            string `form:"page" json:"page"`
	Limit           string `form:"limit" json:"limit"`
}

// GetQuizzes godoc
// @Summary 测验列表
// @Description 支持按标题、分类、难度、创建日期筛选，支持搜索与排序，分页返回
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param title query string false "标题包含（不区分大小写）"
// @Param category query int false "分类 ID"
// @Param difficulty_level query string false "难度" Enums(Easy, Medium, Hard)
// @Param date_created query string false "创建日期 YYYY-MM-DD"
// @Param search query string false "搜索关键词"
// @Param ordering query string false "排序" Enums(created_at, -created_at, title, -title)
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]service.QuizView}}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /quizzes/ [get]
func (c *QuizController) GetQuizzes(ctx *gin.Context) {
	var query QuizListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		util.ValidationError(ctx, err)
		return
	}

	filter := repository.QuizFilter{
		Title:      query.Title,
		CategoryID: query.Category,
		Difficulty: query.DifficultyLevel,
		Search:     query.Search,
		Ordering:   query.Ordering,
	}
	if query.DateCreated != "" {
		day, err := time.ParseInLocation(util.DateFormat, query.DateCreated, time.Local)
		if err != nil {
			util.FieldErrors(ctx, map[string]string{"date_created": "datetime=" + util.DateFormat})
			return
		}
		filter.CreatedOn = &day
	}

	page, limit := util.ParsePagination(query.Page, query.Limit)
	quizzes, total, err := c.QuizService.List(ctx.Request.Context(), filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  quizzes,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetQuiz godoc
// @Summary 测验详情
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验 ID"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Failure 404 {object} util.Response
// @Router /quizzes/{id}/ [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.NotFound(ctx)
		return
	}

	quiz, err := c.QuizService.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, quiz)
}

// CreateQuiz godoc
// @Summary 创建测验
// @Description 一次性创建测验、题目与选项；每道题至少两个选项且恰好一个正确答案
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateQuizRequest true "测验内容"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /quizzes/create/ [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err)
		return
	}

	input := service.CreateQuizInput{
		Title:        req.Title,
		CategoryID:   req.Category,
		Difficulty:   model.Difficulty(req.DifficultyLevel),
		PassingScore: req.PassingScore,
		Questions:    make([]service.QuestionInput, 0, len(req.Questions)),
	}
	for _, q := range req.Questions {
		question := service.QuestionInput{Text: q.Text}
		for _, ch := range q.Choices {
			question.Choices = append(question.Choices, service.ChoiceInput{Text: ch.Text, IsCorrect: ch.IsCorrect})
		}
		input.Questions = append(input.Questions, question)
	}

	quiz, err := c.QuizService.Create(ctx.Request.Context(), claims.UserID, input)
	if err != nil {
		var qerr *service.QuestionError
		switch {
		case errors.As(err, &qerr):
			util.FieldErrors(ctx, map[string]string{
				fmt.Sprintf("questions[%d].choices", qerr.Index): qerr.Err.Error(),
			})
		case errors.Is(err, util.ErrTooManyQuestions):
			util.FieldErrors(ctx, map[string]string{"questions": fmt.Sprintf("max=%d", model.MaxQuestionsPerQuiz)})
		case errors.Is(err, util.ErrCategoryNotFound):
			util.FieldErrors(ctx, map[string]string{"category": err.Error()})
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Description 仅创建者或管理员可删除，题目、选项、作答与尝试记录一并删除
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验 ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/{id}/ [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if err := c.QuizService.Delete(ctx.Request.Context(), id, claims); err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.Error(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
