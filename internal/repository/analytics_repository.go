package repository

import (
	"context"
	"database/sql"

	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

// AnalyticsRepository 只读聚合查询，作用于全部尝试/作答记录
type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) CountQuizzes(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Quiz{}).Count(&count).Error
	return count, err
}

// CountQuizTakers 至少提交过一次测验的不同用户数
func (r *AnalyticsRepository) CountQuizTakers(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).Distinct("user_id").Count(&count).Error
	return count, err
}

// AverageScore 全部尝试的平均分，没有尝试记录时返回 nil
func (r *AnalyticsRepository) AverageScore(ctx context.Context) (*float64, error) {
	var avg sql.NullFloat64
	err := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Select("AVG(score)").
		Row().
		Scan(&avg)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// ScoresByQuiz 按测验分组的平均/最高/最低分
func (r *AnalyticsRepository) ScoresByQuiz(ctx context.Context) ([]model.QuizPerformance, error) {
	rows := make([]model.QuizPerformance, 0)
	err := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Select("quiz_id AS quiz, AVG(score) AS average_score, MAX(score) AS highest_score, MIN(score) AS lowest_score").
		Group("quiz_id").
		Order("quiz_id ASC").
		Scan(&rows).Error
	return rows, err
}

// MostAnsweredQuestion 作答次数最多的题目，次数相同取 id 最小者
func (r *AnalyticsRepository) MostAnsweredQuestion(ctx context.Context) (*model.QuestionAnswerCount, error) {
	return r.answerCountExtreme(ctx, "answer_count DESC, question_id ASC")
}

// LeastAnsweredQuestion 作答次数最少的题目（仅统计有作答记录的题目），次数相同取 id 最小者
func (r *AnalyticsRepository) LeastAnsweredQuestion(ctx context.Context) (*model.QuestionAnswerCount, error) {
	return r.answerCountExtreme(ctx, "answer_count ASC, question_id ASC")
}

func (r *AnalyticsRepository) answerCountExtreme(ctx context.Context, order string) (*model.QuestionAnswerCount, error) {
	var rows []model.QuestionAnswerCount
	err := r.DB.WithContext(ctx).Model(&model.UserAnswer{}).
		Select("question_id AS question, COUNT(*) AS answer_count").
		Group("question_id").
		Order(order).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
