package model

// swagger:model Choice
type Choice struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint   `gorm:"index;not null" json:"question"`
	Text       string `gorm:"size:255;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"is_correct"`
}

func (Choice) TableName() string {
	return "choices"
}
