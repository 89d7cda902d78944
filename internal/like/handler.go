package like

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Grupo5-Biologia-Marina/server/internal/api"
	"github.com/Grupo5-Biologia-Marina/server/internal/database"
	"github.com/Grupo5-Biologia-Marina/server/internal/logs"
)

func postExists(postID int) (bool, error) {
	var count int64
	err := database.DB.Table("posts").Where("id = ?", postID).Count(&count).Error
	return count > 0, err
}

// ToggleLike POST /api/posts/:id/like
// Si el like existe se borra, si no existe se crea.
func ToggleLike(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	exists, err := postExists(postID)
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while toggling like", err.Error())
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}
	if !exists {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	var existing Like
	err = database.DB.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error

	switch {
	case err == nil:
		if err := database.DB.Delete(&existing).Error; err != nil {
			api.FailErr(c, http.StatusInternalServerError, "Server error while toggling like", err.Error())
			return
		}
		api.OK(c, http.StatusOK, "Like removed", gin.H{"liked": false})

	case errors.Is(err, gorm.ErrRecordNotFound):
		newLike := Like{UserID: userID, PostID: uint(postID)}
		if err := database.DB.Create(&newLike).Error; err != nil {
			api.FailErr(c, http.StatusInternalServerError, "Server error while toggling like", err.Error())
			return
		}
		api.OK(c, http.StatusOK, "Like added", gin.H{"liked": true})

	default:
		api.FailErr(c, http.StatusInternalServerError, "Server error while toggling like", err.Error())
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
	}
}

// GetLikeInfo GET /api/posts/:id/likes (pública, identidad opcional)
func GetLikeInfo(c *gin.Context) {
	userID := c.GetString("user_id")

	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	exists, err := postExists(postID)
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while fetching like info", err.Error())
		return
	}
	if !exists {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	var likesCount int64
	database.DB.Model(&Like{}).Where("post_id = ?", postID).Count(&likesCount)

	isLikedByUser := false
	if userID != "" {
		var existing Like
		err := database.DB.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		isLikedByUser = err == nil
	}

	api.OK(c, http.StatusOK, "Like info fetched successfully", gin.H{
		"likesCount":    likesCount,
		"isLikedByUser": isLikedByUser,
	})
}
