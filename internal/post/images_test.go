package post

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func deleteImageContext(t *testing.T, postID, imageID string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: postID}, {Key: "imageId", Value: imageID}}
	return w, c
}

func TestDeleteImage(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "post_images"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "url", "caption", "credit", "created_at", "updated_at"}).
			AddRow(3, 7, "https://example.com/img.jpg", "", "", time.Now(), time.Now()))
	mock.ExpectExec(`DELETE FROM "post_images"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w, c := deleteImageContext(t, "7", "3")
	DeleteImage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Image deleted successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// La imagen tiene que pertenecer al post de la ruta.
func TestDeleteImageWrongPost(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "post_images"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "url", "caption", "credit", "created_at", "updated_at"}))

	w, c := deleteImageContext(t, "8", "3")
	DeleteImage(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
