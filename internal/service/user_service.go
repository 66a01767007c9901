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

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 管理端用户管理与个人主页
type UserService struct {
	UserRepo    *repository.UserRepository
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
}

func NewUserService(userRepo *repository.UserRepository, quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
	}
}

// UserUpdate 仅非 nil 字段会被修改
type UserUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
	Role      *model.UserRole
	IsActive  *bool
}

// ProfileQuiz 个人主页中用户创建的测验，附带本人最近一次作答
type ProfileQuiz struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Category    string           `json:"category"`
	CreatedAt   time.Time        `json:"created_at"`
	Questions   []model.Question `json:"questions"`
	UserScore   *uint            `json:"user_score"`
	UserAnswers map[uint]*uint   `json:"user_answers"`
}

type Profile struct {
	ID             uint          `json:"id"`
	Username       string        `json:"username"`
	Email          string        `json:"email"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	QuizzesCreated []ProfileQuiz `json:"quizzes_created"`
}

func (s *UserService) List(ctx context.Context, page, limit int, filter repository.UserFilter) ([]model.User, int64, error) {
	return s.UserRepo.List(ctx, page, limit, filter)
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	taken, err := s.UserRepo.EmailTaken(ctx, user.Email, 0)
	if err != nil {
		return err
	}
	if taken {
		return util.ErrEmailRegistered
	}

	hashed, err := hashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	return s.UserRepo.Create(ctx, user)
}

func (s *UserService) Update(ctx context.Context, id uint, update UserUpdate) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		taken, err := s.UserRepo.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrEmailRegistered
		}
		user.Email = email
	}
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.Password != nil {
		hashed, err := hashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return user, nil
}

// Delete 删除用户及其创建的测验和作答记录
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.UserRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	logger.Log.Info("用户已删除", zap.Uint("userId", id))
	return nil
}

func (s *UserService) Profile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.QuizRepo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		QuizzesCreated: make([]ProfileQuiz, 0, len(quizzes)),
	}

	for _, quiz := range quizzes {
		item := ProfileQuiz{
			ID:          quiz.ID,
			Title:       quiz.Title,
			CreatedAt:   quiz.CreatedAt,
			Questions:   quiz.Questions,
			UserAnswers: map[uint]*uint{},
		}
		if quiz.Category != nil {
			item.Category = quiz.Category.Name
		}

		attempt, err := s.AttemptRepo.FindLatestWithAnswers(ctx, quiz.ID, userID)
		switch {
		case err == nil:
			score := attempt.Score
			item.UserScore = &score
			for _, answer := range attempt.Answers {
				item.UserAnswers[answer.QuestionID] = answer.ChoiceID
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}

		profile.QuizzesCreated = append(profile.QuizzesCreated, item)
	}

	return profile, nil
}
