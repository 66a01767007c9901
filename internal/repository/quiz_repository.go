package repository

import (
	"context"
	"strings"
	"time"

	"quiz_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// QuizFilter 测验列表筛选条件
type QuizFilter struct {
	Title      string
	CategoryID uint
	Difficulty string
	CreatedOn  *time.Time
	Search     string
	Ordering   string
}

var quizOrderings = map[string]clause.OrderByColumn{
	"created_at":  {Column: clause.Column{Name: "created_at"}},
	"-created_at": {Column: clause.Column{Name: "created_at"}, Desc: true},
	"title":       {Column: clause.Column{Name: "title"}},
	"-title":      {Column: clause.Column{Name: "title"}, Desc: true},
}

func preloadQuestions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.id ASC")
		})
}

// CreateWithQuestions 在一个事务中创建测验及其全部题目和选项
func (r *QuizRepository) CreateWithQuestions(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(quiz).Error; err != nil {
			return err
		}

		for i := range quiz.Questions {
			question := &quiz.Questions[i]
			question.QuizID = quiz.ID
			if err := tx.Omit(clause.Associations).Create(question).Error; err != nil {
				return err
			}

			for j := range question.Choices {
				choice := &question.Choices[j]
				choice.QuestionID = question.ID
				if err := tx.Create(choice).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// FindByID 加载测验及题目、选项
func (r *QuizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := preloadQuestions(r.DB.WithContext(ctx)).
		Preload("Category").
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Quiz{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) List(ctx context.Context, filter QuizFilter, page, limit int) ([]model.Quiz, int64, error) {
	var quizzes []model.Quiz
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Quiz{})

	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(filter.Title))+"%")
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(filter.Search))+"%")
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty_level = ?", filter.Difficulty)
	}
	if filter.CreatedOn != nil {
		start := *filter.CreatedOn
		query = query.Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 0, 1))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := quizOrderings[filter.Ordering]
	if !ok {
		order = quizOrderings["-created_at"]
	}

	offset := (page - 1) * limit
	err := preloadQuestions(query).
		Order(order).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&quizzes).Error
	return quizzes, total, err
}

func (r *QuizRepository) ListByCreator(ctx context.Context, creatorID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := preloadQuestions(r.DB.WithContext(ctx)).
		Preload("Category").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// Delete 级联删除测验、题目、选项、作答和尝试记录
func (r *QuizRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteQuizzes(tx, []uint{id})
	})
}
