package repository

import (
	"context"

	"quiz_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

var latestFirst = []clause.OrderByColumn{
	{Column: clause.Column{Name: "timestamp"}, Desc: true},
	{Column: clause.Column{Name: "id"}, Desc: true},
}

func orderLatestFirst(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.OrderBy{Columns: latestFirst})
}

// Record 持久化一次提交：先以 0 分创建尝试记录，逐条写入作答并关联，最后回写总分
func (r *AttemptRepository) Record(ctx context.Context, attempt *model.QuizAttempt, answers []model.UserAnswer, score uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempt.Score = 0
		if err := tx.Omit(clause.Associations).Create(attempt).Error; err != nil {
			return err
		}

		for i := range answers {
			answer := &answers[i]
			if err := tx.Create(answer).Error; err != nil {
				return err
			}
			if err := tx.Model(attempt).Association("Answers").Append(answer); err != nil {
				return err
			}
		}

		attempt.Score = score
		return tx.Model(attempt).Update("score", score).Error
	})
}

// FindLatest 用户在某测验上的最近一次尝试
func (r *AttemptRepository) FindLatest(ctx context.Context, quizID, userID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := orderLatestFirst(r.DB.WithContext(ctx)).
		Preload("Quiz").
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Take(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindLatestWithAnswers 同 FindLatest，并加载作答记录
func (r *AttemptRepository) FindLatestWithAnswers(ctx context.Context, quizID, userID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := orderLatestFirst(r.DB.WithContext(ctx)).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("user_answers.id ASC")
		}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Take(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) ListByUser(ctx context.Context, userID uint, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	query := orderLatestFirst(r.DB.WithContext(ctx)).
		Preload("Quiz").
		Where("user_id = ?", userID)
	if quizID != 0 {
		query = query.Where("quiz_id = ?", quizID)
	}
	err := query.Find(&attempts).Error
	return attempts, err
}
