package model

// swagger:model Category
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
