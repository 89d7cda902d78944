package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Grupo5-Biologia-Marina/server/internal/database"
)

func ExistsByEmail(email string) bool {
	var count int64
	database.DB.Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func ExistsByUsername(username string) bool {
	var count int64
	database.DB.Model(&User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

// RoleOf devuelve el rol de un usuario a partir de su ID.
func RoleOf(userID string) (string, error) {
	var role string
	err := database.DB.Model(&User{}).Select("role").Where("id = ?", userID).Take(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil // usuario inexistente, sin rol
		}
		return "", err
	}
	return role, nil
}
