package like

import (
	"time"
)

// Un like por (usuario, post): el índice único evita duplicados incluso
// con dos toggles concurrentes.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_post"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_likes_user_post"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
