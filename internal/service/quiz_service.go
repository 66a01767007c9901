package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/logger"
	"quiz_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	CategoryRepo *repository.CategoryRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, categoryRepo *repository.CategoryRepository) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		CategoryRepo: categoryRepo,
	}
}

type ChoiceInput struct {
	Text      string
	IsCorrect bool
}

type QuestionInput struct {
	Text    string
	Choices []ChoiceInput
}

// CreateQuizInput 嵌套创建测验的输入，创建者由调用方身份决定
type CreateQuizInput struct {
	Title        string
	CategoryID   uint
	Difficulty   model.Difficulty
	PassingScore *uint
	Questions    []QuestionInput
}

// QuestionError 指出哪一道题目未通过校验
type QuestionError struct {
	Index int
	Err   error
}

func (e *QuestionError) Error() string {
	return fmt.Sprintf("question %d: %v", e.Index, e.Err)
}

func (e *QuestionError) Unwrap() error {
	return e.Err
}

// PublicChoice 对答题者展示的选项，不含 is_correct
type PublicChoice struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type PublicQuestion struct {
	ID      uint           `json:"id"`
	Text    string         `json:"text"`
	Choices []PublicChoice `json:"choices"`
}

// QuizView 测验列表/详情的对外结构
type QuizView struct {
	ID              uint             `json:"id"`
	Title           string           `json:"title"`
	Category        uint             `json:"category"`
	CategoryName    string           `json:"category_name,omitempty"`
	Creator         uint             `json:"creator"`
	DifficultyLevel model.Difficulty `json:"difficulty_level"`
	PassingScore    uint             `json:"passing_score"`
	CreatedAt       time.Time        `json:"created_at"`
	Questions       []PublicQuestion `json:"questions"`
}

func newQuizView(quiz *model.Quiz) QuizView {
	view := QuizView{
		ID:              quiz.ID,
		Title:           quiz.Title,
		Category:        quiz.CategoryID,
		Creator:         quiz.CreatorID,
		DifficultyLevel: quiz.Difficulty,
		PassingScore:    quiz.PassingScore,
		CreatedAt:       quiz.CreatedAt,
	}
	if quiz.Category != nil {
		view.CategoryName = quiz.Category.Name
	}
	// 没有题目时保持 nil，序列化为 null
	for _, q := range quiz.Questions {
		pq := PublicQuestion{ID: q.ID, Text: q.Text, Choices: make([]PublicChoice, 0, len(q.Choices))}
		for _, c := range q.Choices {
			pq.Choices = append(pq.Choices, PublicChoice{ID: c.ID, Text: c.Text})
		}
		view.Questions = append(view.Questions, pq)
	}
	return view
}

func validateQuestions(questions []QuestionInput) error {
	if len(questions) > model.MaxQuestionsPerQuiz {
		return util.ErrTooManyQuestions
	}
	for i, q := range questions {
		if len(q.Choices) < 2 {
			return &QuestionError{Index: i, Err: util.ErrInvalidChoices}
		}
		correct := 0
		for _, c := range q.Choices {
			if c.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return &QuestionError{Index: i, Err: util.ErrInvalidChoices}
		}
	}
	return nil
}

// Create 校验后在一个事务中创建测验、题目和选项
func (s *QuizService) Create(ctx context.Context, creatorID uint, input CreateQuizInput) (quiz *model.Quiz, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuizService.Create")
	defer func() { tracing.EndSpan(span, err) }()

	if err = validateQuestions(input.Questions); err != nil {
		return nil, err
	}

	if _, err = s.CategoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	passingScore := uint(model.DefaultPassingScore)
	if input.PassingScore != nil {
		passingScore = *input.PassingScore
	}

	quiz = &model.Quiz{
		Title:        strings.TrimSpace(input.Title),
		CategoryID:   input.CategoryID,
		CreatorID:    creatorID,
		Difficulty:   difficulty,
		PassingScore: passingScore,
		Questions:    make([]model.Question, 0, len(input.Questions)),
	}
	for _, q := range input.Questions {
		question := model.Question{Text: q.Text, Choices: make([]model.Choice, 0, len(q.Choices))}
		for _, c := range q.Choices {
			question.Choices = append(question.Choices, model.Choice{Text: c.Text, IsCorrect: c.IsCorrect})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err = s.QuizRepo.CreateWithQuestions(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	span.SetAttributes(attribute.Int("quiz.id", int(quiz.ID)), attribute.Int("quiz.questions", len(quiz.Questions)))

	logger.Log.Info("测验已创建",
		zap.Uint("quizId", quiz.ID),
		zap.Uint("creatorId", creatorID),
		zap.Int("questions", len(quiz.Questions)),
	)
	return quiz, nil
}

func (s *QuizService) Get(ctx context.Context, id uint) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	view := newQuizView(quiz)
	return &view, nil
}

func (s *QuizService) List(ctx context.Context, filter repository.QuizFilter, page, limit int) ([]QuizView, int64, error) {
	quizzes, total, err := s.QuizRepo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]QuizView, 0, len(quizzes))
	for i := range quizzes {
		views = append(views, newQuizView(&quizzes[i]))
	}
	return views, total, nil
}

// Delete 仅创建者或管理员可删除
func (s *QuizService) Delete(ctx context.Context, id uint, caller *util.Claims) error {
	quiz, err := s.QuizRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}

	if caller.Role != model.RoleAdmin && quiz.CreatorID != caller.UserID {
		return util.ErrPermissionDenied
	}

	if err := s.QuizRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete quiz %d: %w", id, err)
	}
	logger.Log.Info("测验已删除", zap.Uint("quizId", id), zap.Uint("by", caller.UserID))
	return nil
}
