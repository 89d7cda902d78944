package post

import (
	"time"

	"github.com/Grupo5-Biologia-Marina/server/internal/category"
	"github.com/Grupo5-Biologia-Marina/server/internal/user"
)

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index;not null"`
	User      user.User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Credits   string    `json:"credits,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Images     []PostImage         `json:"images" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Categories []category.Category `json:"categories" gorm:"many2many:post_categories;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}
