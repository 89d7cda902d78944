package category

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Grupo5-Biologia-Marina/server/internal/api"
	"github.com/Grupo5-Biologia-Marina/server/internal/database"
	"github.com/Grupo5-Biologia-Marina/server/internal/logs"
)

// GetCategories GET /api/categories (pública)
func GetCategories(c *gin.Context) {
	var categories []Category
	if err := database.DB.Order("id").Find(&categories).Error; err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while fetching categories", err.Error())
		return
	}

	api.OK(c, http.StatusOK, "Categories fetched successfully", categories)
}

// CreateCategory POST /api/categories (solo admin)
func CreateCategory(c *gin.Context) {
	route := c.FullPath()

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BindJSON(&input); err != nil {
		api.Fail(c, http.StatusBadRequest, "Petición inválida")
		return
	}

	if input.Name == "" {
		api.FailErr(c, http.StatusBadRequest, "Validation error", "El nombre de la categoría es obligatorio")
		return
	}

	var count int64
	database.DB.Model(&Category{}).Where("name = ?", input.Name).Count(&count)
	if count > 0 {
		api.Fail(c, http.StatusConflict, "La categoría ya existe")
		return
	}

	cat := Category{Name: input.Name, Description: input.Description}
	if err := database.DB.Create(&cat).Error; err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while creating category", err.Error())
		logs.LogJSON("ERROR", "Category insert error", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	api.OK(c, http.StatusCreated, "Category created successfully", cat)
}

// UpdateCategory PUT /api/categories/:id (solo admin)
func UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Category not found")
		return
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BindJSON(&input); err != nil {
		api.Fail(c, http.StatusBadRequest, "Petición inválida")
		return
	}

	var cat Category
	if err := database.DB.First(&cat, id).Error; err != nil {
		api.Fail(c, http.StatusNotFound, "Category not found")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&cat).Updates(updates).Error; err != nil {
			api.FailErr(c, http.StatusInternalServerError, "Server error while updating category", err.Error())
			return
		}
	}

	api.OK(c, http.StatusOK, "Category updated successfully", cat)
}

// DeleteCategory DELETE /api/categories/:id (solo admin)
func DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Category not found")
		return
	}

	var cat Category
	if err := database.DB.First(&cat, id).Error; err != nil {
		api.Fail(c, http.StatusNotFound, "Category not found")
		return
	}

	// Las asociaciones en post_categories no deben sobrevivir a la categoría.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_categories WHERE category_id = ?", cat.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&cat).Error
	})
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while deleting category", err.Error())
		return
	}

	api.OK(c, http.StatusOK, "Category deleted successfully", nil)
}
