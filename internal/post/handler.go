package post

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Grupo5-Biologia-Marina/server/internal/api"
	"github.com/Grupo5-Biologia-Marina/server/internal/database"
	"github.com/Grupo5-Biologia-Marina/server/internal/logs"
)

// withLikes añade el contador de likes (y si el usuario actual dio like)
// a la respuesta de un post.
type withLikes struct {
	Post
	LikeCount int64 `json:"like_count"`
	IsLiked   bool  `json:"is_liked"`
}

func likesFor(p Post, userID string) withLikes {
	var count int64
	database.DB.Table("likes").Where("post_id = ?", p.ID).Count(&count)

	isLiked := false
	if userID != "" {
		var n int64
		database.DB.Table("likes").Where("post_id = ? AND user_id = ?", p.ID, userID).Count(&n)
		isLiked = n > 0
	}

	return withLikes{Post: p, LikeCount: count, IsLiked: isLiked}
}

// OwnerID resuelve el dueño del post :id, para el guard de rutas.
func OwnerID(c *gin.Context) (string, error) {
	id := c.Param("id")
	var ownerID string
	err := database.DB.Table("posts").Select("user_id").Where("id = ?", id).Take(&ownerID).Error
	return ownerID, err
}

// CreatePost POST /api/posts
func CreatePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var input CreateInput
	if err := c.BindJSON(&input); err != nil {
		api.Fail(c, http.StatusBadRequest, "Petición inválida")
		return
	}

	if errs := validateCreate(input); len(errs) > 0 {
		api.FailErr(c, http.StatusBadRequest, "Validation error", strings.Join(errs, ", "))
		return
	}

	postID, err := createAggregate(userID, input)
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while creating post", err.Error())
		logs.LogJSON("ERROR", "Post create error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	created, err := fetchAggregate(postID)
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while fetching post", err.Error())
		return
	}

	logs.LogJSON("INFO", "Post created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": postID,
	})

	api.OK(c, http.StatusCreated, "Post created successfully", likesFor(*created, userID))
}

// GetPosts GET /api/posts (pública, identidad opcional para is_liked)
func GetPosts(c *gin.Context) {
	userID := c.GetString("user_id")

	var posts []Post
	err := database.DB.
		Preload("User").
		Preload("Categories").
		Preload("Images").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while fetching posts", err.Error())
		return
	}

	result := make([]withLikes, 0, len(posts))
	for _, p := range posts {
		result = append(result, likesFor(p, userID))
	}

	api.OK(c, http.StatusOK, "Posts fetched successfully", result)
}

// GetPostByID GET /api/posts/:id (pública)
func GetPostByID(c *gin.Context) {
	userID := c.GetString("user_id")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	p, err := fetchAggregate(uint(id))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	api.OK(c, http.StatusOK, "Post fetched successfully", likesFor(*p, userID))
}

// GetUserPosts GET /api/posts/user/:userId (requiere autenticación)
func GetUserPosts(c *gin.Context) {
	ownerID := c.Param("userId")

	var posts []Post
	err := database.DB.
		Preload("User").
		Preload("Categories").
		Preload("Images").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while fetching posts", err.Error())
		return
	}

	callerID := c.GetString("user_id")
	result := make([]withLikes, 0, len(posts))
	for _, p := range posts {
		result = append(result, likesFor(p, callerID))
	}

	api.OK(c, http.StatusOK, "Posts fetched successfully", result)
}

// UpdatePost PATCH /api/posts/:id (admin o dueño)
func UpdatePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	var p Post
	if err := database.DB.First(&p, id).Error; err != nil {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	var input UpdateInput
	if err := c.BindJSON(&input); err != nil {
		api.Fail(c, http.StatusBadRequest, "Petición inválida")
		return
	}

	var errs []string
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		errs = append(errs, "El título es obligatorio")
	}
	if input.Content != nil && strings.TrimSpace(*input.Content) == "" {
		errs = append(errs, "El contenido es obligatorio")
	}
	if len(errs) > 0 {
		api.FailErr(c, http.StatusBadRequest, "Validation error", strings.Join(errs, ", "))
		return
	}

	if err := updateAggregate(&p, input); err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while updating post", err.Error())
		logs.LogJSON("ERROR", "Post update error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": p.ID,
		})
		return
	}

	updated, err := fetchAggregate(p.ID)
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while fetching post", err.Error())
		return
	}

	api.OK(c, http.StatusOK, "Post updated successfully", likesFor(*updated, userID))
}

// DeletePost DELETE /api/posts/:id (admin o dueño)
func DeletePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	var p Post
	if err := database.DB.First(&p, id).Error; err != nil {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	// Las imágenes y asociaciones del post no deben sobrevivirle.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", p.ID).Delete(&PostImage{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_categories WHERE post_id = ?", p.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM likes WHERE post_id = ?", p.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while deleting post", err.Error())
		logs.LogJSON("ERROR", "Post delete error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": p.ID,
		})
		return
	}

	api.OK(c, http.StatusOK, "Post deleted successfully", nil)
}
