package service

import (
	"context"
	"testing"
	"time"

	"quiz_backend/internal/config"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db  *gorm.DB
	rdb *redis.Client
	mr  *miniredis.Miniredis
	cfg *config.Config

	users      *repository.UserRepository
	categories *repository.CategoryRepository
	quizzes    *repository.QuizRepository
	attempts   *repository.AttemptRepository

	auth      *AuthService
	user      *UserService
	quiz      *QuizService
	attempt   *AttemptService
	analytics *AnalyticsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"}, logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{}
	cfg.JWT.Secret = "service-test-secret-0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour
	cfg.JWT.RefreshExpireTime = 24 * time.Hour

	env := &testEnv{
		db:         db,
		rdb:        rdb,
		mr:         mr,
		cfg:        cfg,
		users:      repository.NewUserRepository(db),
		categories: repository.NewCategoryRepository(db),
		quizzes:    repository.NewQuizRepository(db),
		attempts:   repository.NewAttemptRepository(db),
	}
	env.auth = NewAuthService(env.users, repository.NewTokenRepository(rdb), cfg)
	env.user = NewUserService(env.users, env.quizzes, env.attempts)
	env.quiz = NewQuizService(env.quizzes, env.categories)
	env.attempt = NewAttemptService(env.quizzes, env.attempts)
	env.analytics = NewAnalyticsService(repository.NewAnalyticsRepository(db))
	return env
}

func (e *testEnv) register(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Username: email, Email: email, Password: "password123"}
	if err := e.auth.Register(context.Background(), user); err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func (e *testEnv) category(t *testing.T) *model.Category {
	t.Helper()
	category := &model.Category{Name: "General"}
	if err := e.categories.Create(context.Background(), category); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

// newQuiz 创建 n 道题，每题两个选项，第一个正确
func (e *testEnv) newQuiz(t *testing.T, creator *model.User, n int, passingScore uint) *model.Quiz {
	t.Helper()
	input := CreateQuizInput{
		Title:        "Quiz",
		CategoryID:   e.category(t).ID,
		PassingScore: &passingScore,
	}
	for i := 0; i < n; i++ {
		input.Questions = append(input.Questions, QuestionInput{
			Text:    "question",
			Choices: []ChoiceInput{{Text: "right", IsCorrect: true}, {Text: "wrong"}},
		})
	}
	quiz, err := e.quiz.Create(context.Background(), creator.ID, input)
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

func correctAnswers(quiz *model.Quiz) []AnswerInput {
	answers := make([]AnswerInput, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers = append(answers, AnswerInput{QuestionID: q.ID, ChoiceID: q.CorrectChoice().ID})
	}
	return answers
}

func (e *testEnv) count(t *testing.T, query *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := query.Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func (e *testEnv) countQuestions(t *testing.T, quizID uint) int64 {
	return e.count(t, e.db.Model(&model.Question{}).Where("quiz_id = ?", quizID))
}

func (e *testEnv) countChoices(t *testing.T, quizID uint) int64 {
	return e.count(t, e.db.Model(&model.Choice{}).
		Joins("JOIN questions ON questions.id = choices.question_id").
		Where("questions.quiz_id = ?", quizID))
}

func (e *testEnv) countLinkedAnswers(t *testing.T, attemptID uint) int64 {
	return e.count(t, e.db.Table("quiz_attempt_answers").Where("quiz_attempt_id = ?", attemptID))
}

func (e *testEnv) countAttempts(t *testing.T, userID, quizID uint) int64 {
	return e.count(t, e.db.Model(&model.QuizAttempt{}).Where("user_id = ? AND quiz_id = ?", userID, quizID))
}
