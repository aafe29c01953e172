package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"성공: 설정된 origin 허용", []string{"https://app.example"}, "https://app.example", http.StatusOK, "https://app.example"},
		{"실패: 설정되지 않은 origin 거부", []string{"https://app.example"}, "https://evil.example", http.StatusForbidden, ""},
		{"성공: 와일드카드는 모든 origin 허용", []string{"*"}, "https://any.example", http.StatusOK, "https://any.example"},
		{"성공: 빈 목록은 모든 origin 허용", []string{}, "https://any.example", http.StatusOK, "https://any.example"},
		{"성공: nil 목록은 모든 origin 허용", nil, "https://any.example", http.StatusOK, "https://any.example"},
		{"성공: 빈 문자열만 있는 목록", []string{"", ""}, "https://any.example", http.StatusOK, "https://any.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			assert.NotPanics(t, func() { router.Use(CORS(tt.origins)) })
			router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
