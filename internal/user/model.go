package user

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Firstname string    `json:"firstname,omitempty" gorm:"size:50"`
	Lastname  string    `json:"lastname,omitempty" gorm:"size:50"`
	Email     string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	Role      string    `json:"role" gorm:"size:10;not null;default:user"`
}

func (User) TableName() string {
	return "users"
}
