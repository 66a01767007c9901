package repository

import (
	"context"
	"testing"

	"quiz_backend/internal/config"
	"quiz_backend/internal/model"
	"quiz_backend/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"}, logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func mustUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Username: email, Email: email, Password: "x", Role: model.RoleUser, IsActive: true}
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	if err := NewCategoryRepository(db).Create(context.Background(), category); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

// mustQuiz 创建一个测验，每道题两个选项，第一个为正确答案
func mustQuiz(t *testing.T, db *gorm.DB, title string, creator *model.User, category *model.Category, questions int) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		Title:        title,
		CategoryID:   category.ID,
		CreatorID:    creator.ID,
		Difficulty:   model.DifficultyMedium,
		PassingScore: model.DefaultPassingScore,
	}
	for i := 0; i < questions; i++ {
		quiz.Questions = append(quiz.Questions, model.Question{
			Text: "q",
			Choices: []model.Choice{
				{Text: "right", IsCorrect: true},
				{Text: "wrong"},
			},
		})
	}
	if err := NewQuizRepository(db).CreateWithQuestions(context.Background(), quiz); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

func countRows(t *testing.T, query *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := query.Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func countQuestions(t *testing.T, db *gorm.DB, quizID uint) int64 {
	return countRows(t, db.Model(&model.Question{}).Where("quiz_id = ?", quizID))
}

func countChoices(t *testing.T, db *gorm.DB, quizID uint) int64 {
	return countRows(t, db.Model(&model.Choice{}).
		Joins("JOIN questions ON questions.id = choices.question_id").
		Where("questions.quiz_id = ?", quizID))
}

func countLinkedAnswers(t *testing.T, db *gorm.DB, attemptID uint) int64 {
	return countRows(t, db.Table(attemptAnswersTable).Where("quiz_attempt_id = ?", attemptID))
}

func countAttempts(t *testing.T, db *gorm.DB, userID, quizID uint) int64 {
	return countRows(t, db.Model(&model.QuizAttempt{}).Where("user_id = ? AND quiz_id = ?", userID, quizID))
}
