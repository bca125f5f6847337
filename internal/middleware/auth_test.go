package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"survey_backend/internal/config"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		id := util.OptionalUserID(c)
		if id == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": *id})
	})
	return r
}

func do(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	r := newRouter(AuthMiddleware(cfg))

	valid, err := util.GenerateJWT(7, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	forged, _ := util.GenerateJWT(7, "other-secret", time.Hour)
	expired, _ := util.GenerateJWT(7, testSecret, -time.Hour)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"valid token", valid, http.StatusOK},
		{"wrong secret", forged, http.StatusUnauthorized},
		{"expired", expired, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(r, tt.token); w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestTryAuthMiddlewareAllowsAnonymous(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	r := newRouter(TryAuthMiddleware(cfg))

	if w := do(r, ""); w.Code != http.StatusOK || w.Body.String() != `{"user":null}` {
		t.Fatalf("anonymous: %d %s", w.Code, w.Body.String())
	}
	if w := do(r, "garbage"); w.Code != http.StatusOK || w.Body.String() != `{"user":null}` {
		t.Fatalf("bad token: %d %s", w.Code, w.Body.String())
	}

	token, _ := util.GenerateJWT(42, testSecret, time.Hour)
	if w := do(r, token); w.Body.String() != `{"user":42}` {
		t.Fatalf("authenticated: %s", w.Body.String())
	}
}
