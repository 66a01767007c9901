package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrAttemptNotFound    = errors.New("quiz attempt not found")
	ErrInvalidChoices     = errors.New("each question must have exactly one correct choice")
	ErrTooManyQuestions   = errors.New("too many questions")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

var ErrTooManyAnswers = errors.New("too many answers")
