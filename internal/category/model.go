package category

type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description,omitempty" gorm:"size:255"`
}

func (Category) TableName() string {
	return "categories"
}
