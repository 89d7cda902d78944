package main

import (
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Grupo5-Biologia-Marina/server/internal/category"
	"github.com/Grupo5-Biologia-Marina/server/internal/database"
	"github.com/Grupo5-Biologia-Marina/server/internal/logs"
	"github.com/Grupo5-Biologia-Marina/server/internal/user"
)

var baseCategories = []category.Category{
	{Name: "🐠 Vida Marina", Description: "Descubre las criaturas fascinantes que habitan los océanos, desde corales y medusas hasta tiburones y ballenas."},
	{Name: "🌊 Ecosistemas Oceánicos", Description: "Explora los ecosistemas marinos: arrecifes, abismos, costas y sus delicados equilibrios naturales."},
	{Name: "🔬 Ciencia y Exploración", Description: "Acompaña a los científicos en sus investigaciones y descubre cómo se estudia la vida en las profundidades."},
	{Name: "⚠️ Problemas y Amenazas", Description: "Conoce los peligros que enfrentan los mares: contaminación, cambio climático y sobrepesca."},
	{Name: "🌍 Regiones y Océanos del Mundo", Description: "Explora los océanos del planeta: Atlántico, Pacífico, Índico, Ártico y Antártico."},
}

// seed crea el usuario admin y las categorías base. Es idempotente:
// se puede ejecutar en cada arranque.
func seed() error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "adminpassword"
	}

	var count int64
	if err := database.DB.Model(&user.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := user.User{
			ID:        uuid.New().String(),
			CreatedAt: time.Now(),
			Username:  "admin",
			Firstname: "Admin",
			Lastname:  "User",
			Email:     adminEmail,
			Password:  string(hashed),
			Role:      user.RoleAdmin,
		}
		if err := database.DB.Create(&admin).Error; err != nil {
			return err
		}
		logs.LogJSON("INFO", "Admin user seeded", map[string]interface{}{"email": adminEmail})
	}

	for _, cat := range baseCategories {
		if err := database.DB.Where("name = ?", cat.Name).FirstOrCreate(&cat).Error; err != nil {
			return err
		}
	}

	return nil
}
