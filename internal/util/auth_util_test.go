package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskboard-api/internal/middleware"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestGetUserID(t *testing.T) {
	t.Run("성공", func(t *testing.T) {
		c, _ := newContext()
		id := uuid.New()
		c.Set(middleware.ContextUserID, id)

		got, ok := GetUserID(c)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("실패: 없음", func(t *testing.T) {
		c, w := newContext()
		_, ok := GetUserID(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("실패: 잘못된 타입", func(t *testing.T) {
		c, w := newContext()
		c.Set(middleware.ContextUserID, "not-a-uuid")
		_, ok := GetUserID(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetTokenInfo(t *testing.T) {
	c, _ := newContext()
	exp := time.Now().Add(time.Hour)
	c.Set(middleware.ContextTokenID, "jti-1")
	c.Set(middleware.ContextTokenExpiresAt, exp)

	info, ok := GetTokenInfo(c)
	assert.True(t, ok)
	assert.Equal(t, "jti-1", info.ID)
	assert.Equal(t, exp, info.ExpiresAt)

	c2, w := newContext()
	_, ok = GetTokenInfo(c2)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
