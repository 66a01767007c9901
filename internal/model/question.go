package model

// swagger:model Question
type Question struct {
	ID      uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID  uint     `gorm:"index;not null" json:"quiz"`
	Text    string   `gorm:"size:255;not null" json:"text"`
	Choices []Choice `gorm:"constraint:OnDelete:CASCADE" json:"choices"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectChoice returns the choice flagged correct, or nil when the question has none.
func (q *Question) CorrectChoice() *Choice {
	for i := range q.Choices {
		if q.Choices[i].IsCorrect {
			return &q.Choices[i]
		}
	}
	return nil
}

// FindChoice returns the choice with the given id if it belongs to this question.
func (q *Question) FindChoice(id uint) *Choice {
	for i := range q.Choices {
		if q.Choices[i].ID == id {
			return &q.Choices[i]
		}
	}
	return nil
}
