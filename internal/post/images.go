package post

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/Grupo5-Biologia-Marina/server/internal/api"
	"github.com/Grupo5-Biologia-Marina/server/internal/database"
	"github.com/Grupo5-Biologia-Marina/server/internal/logs"
	"github.com/Grupo5-Biologia-Marina/server/internal/storage"
)

var validImageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".webp": true,
}

// AddImage POST /api/posts/:id/images (admin o dueño)
//
// Dos variantes: multipart con el fichero en el campo "image", o JSON
// {url, caption, credit} para importar una imagen remota y re-alojarla
// en nuestro propio almacenamiento.
func AddImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	var count int64
	if err := database.DB.Table("posts").Where("id = ?", id).Count(&count).Error; err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while fetching post", err.Error())
		return
	}
	if count == 0 {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	if !storage.Enabled() {
		api.Fail(c, http.StatusServiceUnavailable, "El almacenamiento de imágenes no está configurado")
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		uploadImage(c, uint(id))
		return
	}
	importImage(c, uint(id))
}

func uploadImage(c *gin.Context, postID uint) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "No se envió ninguna imagen")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !validImageExtensions[ext] {
		api.Fail(c, http.StatusBadRequest, "Extensión de fichero inválida")
		return
	}

	filename := fmt.Sprintf("img_%s%s", uuid.New().String(), ext)
	folder := fmt.Sprintf("posts/%d", postID)

	url, err := storage.UploadToS3(file, filename, header.Header.Get("Content-Type"), folder)
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Upload failed", err.Error())
		logs.LogJSON("ERROR", "Image upload error", map[string]interface{}{
			"error":  err.Error(),
			"postID": postID,
		})
		return
	}

	saveImage(c, postID, url, c.PostForm("caption"), c.PostForm("credit"))
}

func importImage(c *gin.Context, postID uint) {
	var input ImageInput
	if err := c.BindJSON(&input); err != nil {
		api.Fail(c, http.StatusBadRequest, "Petición inválida")
		return
	}
	if strings.TrimSpace(input.URL) == "" {
		api.Fail(c, http.StatusBadRequest, "La url de la imagen es obligatoria")
		return
	}

	client := resty.New()
	resp, err := client.R().Get(input.URL)
	if err != nil || resp.IsError() {
		api.Fail(c, http.StatusBadRequest, "No se pudo descargar la imagen remota")
		return
	}

	contentType := resp.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		api.Fail(c, http.StatusBadRequest, "La url remota no apunta a una imagen")
		return
	}

	filename := fmt.Sprintf("img_%s", uuid.New().String())
	folder := fmt.Sprintf("posts/%d", postID)

	url, err := storage.UploadToS3(bytes.NewReader(resp.Body()), filename, contentType, folder)
	if err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Upload failed", err.Error())
		logs.LogJSON("ERROR", "Image import error", map[string]interface{}{
			"error":  err.Error(),
			"postID": postID,
			"source": input.URL,
		})
		return
	}

	saveImage(c, postID, url, input.Caption, input.Credit)
}

// DeleteImage DELETE /api/posts/:id/images/:imageId (admin o dueño)
func DeleteImage(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Post not found")
		return
	}
	imageID, err := strconv.Atoi(c.Param("imageId"))
	if err != nil {
		api.Fail(c, http.StatusNotFound, "Image not found")
		return
	}

	var image PostImage
	if err := database.DB.Where("id = ? AND post_id = ?", imageID, postID).First(&image).Error; err != nil {
		api.Fail(c, http.StatusNotFound, "Image not found")
		return
	}

	if err := database.DB.Delete(&image).Error; err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while deleting image", err.Error())
		return
	}

	// El objeto en S3 se borra después de la fila: si falla queda huérfano
	// en el bucket, pero el API ya no lo sirve.
	if storage.Enabled() {
		if key, ok := storage.KeyFromURL(image.URL); ok {
			if err := storage.DeleteFromS3(key); err != nil {
				logs.LogJSON("WARN", "S3 object delete error", map[string]interface{}{
					"error":  err.Error(),
					"postID": postID,
					"key":    key,
				})
			}
		}
	}

	api.OK(c, http.StatusOK, "Image deleted successfully", nil)
}

func saveImage(c *gin.Context, postID uint, url, caption, credit string) {
	image := PostImage{
		PostID:  postID,
		URL:     url,
		Caption: caption,
		Credit:  credit,
	}
	if err := database.DB.Create(&image).Error; err != nil {
		api.FailErr(c, http.StatusInternalServerError, "Server error while saving image", err.Error())
		return
	}

	api.OK(c, http.StatusCreated, "Image added successfully", image)
}
