package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/logger"
	"quiz_backend/pkg/monitoring"
	"quiz_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	AnswerCorrect   = "correct"
	AnswerIncorrect = "incorrect"
	AnswerSkipped   = "skipped"

	SkipQuestionNotFound  = "question_not_found"
	SkipDuplicateQuestion = "duplicate_question"
)

type AttemptService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
}

func NewAttemptService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository) *AttemptService {
	return &AttemptService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
	}
}

type AnswerInput struct {
	QuestionID uint `json:"question_id"`
	ChoiceID   uint `json:"choice_id"`
}

// AnswerResult 单条作答的判定结果
type AnswerResult struct {
	QuestionID uint   `json:"question_id"`
	ChoiceID   uint   `json:"choice_id"`
	Status     string `json:"status"`
	IsCorrect  bool   `json:"is_correct"`
	Reason     string `json:"reason,omitempty"`
}

type SubmissionResult struct {
	AttemptID uint           `json:"attempt_id"`
	Score     uint           `json:"score"`
	Answers   []AnswerResult `json:"answers"`
	Skipped   int            `json:"skipped"`
}

type QuizResult struct {
	Score    uint `json:"score"`
	IsPassed bool `json:"is_passed"`
}

type AttemptSummary struct {
	ID        uint      `json:"id"`
	Quiz      uint      `json:"quiz"`
	QuizTitle string    `json:"quiz_title"`
	Score     uint      `json:"score"`
	IsPassed  bool      `json:"is_passed"`
	Timestamp time.Time `json:"timestamp"`
}

// Submit 对一次提交判分并持久化为新的尝试记录。
// 题目只在当前测验范围内查找，找不到的作答标记为 skipped，不写入 UserAnswer 也不计分。
// 同一题重复作答时只计第一次，其余同样标记为 skipped。
func (s *AttemptService) Submit(ctx context.Context, quizID, userID uint, answers []AnswerInput) (result *SubmissionResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "AttemptService.Submit")
	defer func() { tracing.EndSpan(span, err) }()

	if len(answers) > model.MaxQuestionsPerQuiz {
		return nil, util.ErrTooManyAnswers
	}

	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	questions := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questions[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	result = &SubmissionResult{Answers: make([]AnswerResult, 0, len(answers))}
	records := make([]model.UserAnswer, 0, len(answers))
	answered := make(map[uint]bool, len(answers))
	var score uint

	for _, a := range answers {
		item := AnswerResult{QuestionID: a.QuestionID, ChoiceID: a.ChoiceID}

		question, ok := questions[a.QuestionID]
		if !ok {
			item.Status = AnswerSkipped
			item.Reason = SkipQuestionNotFound
			result.Skipped++
			result.Answers = append(result.Answers, item)
			continue
		}

		if answered[question.ID] {
			item.Status = AnswerSkipped
			item.Reason = SkipDuplicateQuestion
			result.Skipped++
			result.Answers = append(result.Answers, item)
			continue
		}
		answered[question.ID] = true

		record := model.UserAnswer{UserID: userID, QuestionID: question.ID}
		if choice := question.FindChoice(a.ChoiceID); choice != nil {
			choiceID := choice.ID
			record.ChoiceID = &choiceID
			record.Answer = choice.Text
			record.IsCorrect = choice.IsCorrect
		}

		if record.IsCorrect {
			score++
			item.Status = AnswerCorrect
		} else {
			item.Status = AnswerIncorrect
		}
		item.IsCorrect = record.IsCorrect
		records = append(records, record)
		result.Answers = append(result.Answers, item)
	}

	attempt := &model.QuizAttempt{UserID: userID, QuizID: quiz.ID}
	if err = s.AttemptRepo.Record(ctx, attempt, records, score); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	result.AttemptID = attempt.ID
	result.Score = attempt.Score

	passed := attempt.Passed(quiz.PassingScore)
	monitoring.RecordSubmission(result.Score, passed, result.Skipped)
	span.SetAttributes(
		attribute.Int("quiz.id", int(quiz.ID)),
		attribute.Int("attempt.score", int(result.Score)),
		attribute.Int("attempt.skipped", result.Skipped),
	)

	logger.Log.Info("测验提交完成",
		zap.Uint("quizId", quiz.ID),
		zap.Uint("userId", userID),
		zap.Uint("attemptId", attempt.ID),
		zap.Uint("score", result.Score),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// LatestResult 返回用户在该测验上最近一次尝试的得分与是否通过
func (s *AttemptService) LatestResult(ctx context.Context, quizID, userID uint) (*QuizResult, error) {
	exists, err := s.QuizRepo.Exists(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrQuizNotFound
	}

	attempt, err := s.AttemptRepo.FindLatest(ctx, quizID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}

	return &QuizResult{
		Score:    attempt.Score,
		IsPassed: attempt.Passed(attempt.Quiz.PassingScore),
	}, nil
}

// History 用户的全部尝试，最新的在前；quizID 为 0 时不按测验过滤
func (s *AttemptService) History(ctx context.Context, userID, quizID uint) ([]AttemptSummary, error) {
	attempts, err := s.AttemptRepo.ListByUser(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	summaries := make([]AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		summary := AttemptSummary{
			ID:        a.ID,
			Quiz:      a.QuizID,
			Score:     a.Score,
			Timestamp: a.Timestamp,
		}
		if a.Quiz != nil {
			summary.QuizTitle = a.Quiz.Title
			summary.IsPassed = a.Passed(a.Quiz.PassingScore)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
