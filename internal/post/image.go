package post

import (
	"time"
)

type PostImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	URL       string    `json:"url" gorm:"not null"`
	Caption   string    `json:"caption,omitempty"`
	Credit    string    `json:"credit,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PostImage) TableName() string {
	return "post_images"
}
