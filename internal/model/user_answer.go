package model

import (
	"time"
)

// UserAnswer is written once at submission time and never updated.
type UserAnswer struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user"`
	QuestionID uint      `gorm:"index;not null" json:"question"`
	ChoiceID   *uint     `gorm:"index" json:"choice"`
	Answer     string    `gorm:"size:255" json:"answer"`
	IsCorrect  bool      `gorm:"default:false" json:"is_correct"`
	CreatedAt  time.Time `json:"created_at"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
