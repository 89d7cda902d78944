package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func runGuard(t *testing.T, p Policy, identity map[string]string, params gin.Params) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = params
	for k, v := range identity {
		c.Set(k, v)
	}

	Guard(p)(c)
	return w, c
}

func TestGuardMissingIdentity(t *testing.T) {
	w, c := runGuard(t, Policy{Roles: []string{"admin"}}, nil, nil)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuardRoleOnly(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantAbort  bool
		wantStatus int
	}{
		{name: "Admin allowed", role: "admin", wantAbort: false},
		{name: "User denied", role: "user", wantAbort: true, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runGuard(t, Policy{Roles: []string{"admin"}}, map[string]string{
				"user_id":   "u1",
				"user_role": tt.role,
			}, nil)

			assert.Equal(t, tt.wantAbort, c.IsAborted())
			if tt.wantAbort {
				assert.Equal(t, tt.wantStatus, w.Code)
			}
		})
	}
}

func TestGuardOwnerParam(t *testing.T) {
	policy := Policy{Roles: []string{"admin"}, OwnerParam: "id"}

	t.Run("Owner allowed", func(t *testing.T) {
		_, c := runGuard(t, policy, map[string]string{
			"user_id":   "u1",
			"user_role": "user",
		}, gin.Params{{Key: "id", Value: "u1"}})

		assert.False(t, c.IsAborted())
	})

	t.Run("Stranger denied", func(t *testing.T) {
		w, c := runGuard(t, policy, map[string]string{
			"user_id":   "u2",
			"user_role": "user",
		}, gin.Params{{Key: "id", Value: "u1"}})

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

// Con FreshRole el rol que cuenta es el actual, no el del token.
func TestGuardFreshRole(t *testing.T) {
	roleIs := func(role string) func(string) (string, error) {
		return func(string) (string, error) { return role, nil }
	}

	t.Run("Demoted admin denied", func(t *testing.T) {
		w, c := runGuard(t, Policy{Roles: []string{"admin"}, FreshRole: roleIs("user")}, map[string]string{
			"user_id":   "u1",
			"user_role": "admin",
		}, nil)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Promoted user allowed", func(t *testing.T) {
		_, c := runGuard(t, Policy{Roles: []string{"admin"}, FreshRole: roleIs("admin")}, map[string]string{
			"user_id":   "u1",
			"user_role": "user",
		}, nil)

		assert.False(t, c.IsAborted())
	})
}

func TestGuardOwnerLookup(t *testing.T) {
	ownerOf := func(owner string, err error) func(c *gin.Context) (string, error) {
		return func(c *gin.Context) (string, error) { return owner, err }
	}

	t.Run("Owner allowed", func(t *testing.T) {
		_, c := runGuard(t, Policy{Roles: []string{"admin"}, OwnerOf: ownerOf("u1", nil)}, map[string]string{
			"user_id":   "u1",
			"user_role": "user",
		}, nil)

		assert.False(t, c.IsAborted())
	})

	t.Run("Non-owner denied", func(t *testing.T) {
		w, c := runGuard(t, Policy{Roles: []string{"admin"}, OwnerOf: ownerOf("u1", nil)}, map[string]string{
			"user_id":   "u2",
			"user_role": "user",
		}, nil)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin skips lookup", func(t *testing.T) {
		_, c := runGuard(t, Policy{Roles: []string{"admin"}, OwnerOf: ownerOf("otro", nil)}, map[string]string{
			"user_id":   "u9",
			"user_role": "admin",
		}, nil)

		assert.False(t, c.IsAborted())
	})

	t.Run("Missing resource is 404", func(t *testing.T) {
		w, c := runGuard(t, Policy{Roles: []string{"admin"}, OwnerOf: ownerOf("", gorm.ErrRecordNotFound)}, map[string]string{
			"user_id":   "u1",
			"user_role": "user",
		}, nil)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
