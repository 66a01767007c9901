package model

import (
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

const DefaultPassingScore = 4

// MaxQuestionsPerQuiz keeps an attempt score inside 0..100.
const MaxQuestionsPerQuiz = 100

// swagger:model Quiz
type Quiz struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	CategoryID   uint       `gorm:"index;not null" json:"category"`
	Category     *Category  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatorID    uint       `gorm:"index;not null" json:"creator"`
	Creator      *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Difficulty   Difficulty `gorm:"column:difficulty_level;size:10;default:'Medium'" json:"difficulty_level"`
	PassingScore uint       `gorm:"not null" json:"passing_score"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Questions    []Question `gorm:"constraint:OnDelete:CASCADE" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
