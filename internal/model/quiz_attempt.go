package model

import (
	"time"
)

// QuizAttempt is one scored submission of a quiz by a user.
type QuizAttempt struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint         `gorm:"index;not null" json:"user"`
	QuizID    uint         `gorm:"index;not null" json:"quiz"`
	Quiz      *Quiz        `json:"-"`
	Score     uint         `gorm:"not null;default:0" json:"score"`
	Timestamp time.Time    `gorm:"autoCreateTime;index" json:"timestamp"`
	Answers   []UserAnswer `gorm:"many2many:quiz_attempt_answers;constraint:OnDelete:CASCADE" json:"-"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// Passed reports whether the attempt clears passingScore. A zero score never passes.
func (a *QuizAttempt) Passed(passingScore uint) bool {
	return a.Score >= passingScore && a.Score != 0
}
