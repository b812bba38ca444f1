package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eadminhq/eadmin_backend/middlewares"
	"github.com/eadminhq/eadmin_backend/utils"
	"github.com/gin-gonic/gin"
)

func identityEcho() (*gin.Engine, *int, *string) {
	gin.SetMode(gin.TestMode)
	var gotId int
	var gotRole string
	r := gin.New()
	r.Use(middlewares.AuthMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		gotId, _ = utils.GetUserIdFromContext(c.Request.Context())
		gotRole, _ = utils.GetUserRoleFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r, &gotId, &gotRole
}

func TestAuthMiddlewareCookieToken(t *testing.T) {
	r, gotId, gotRole := identityEcho()

	token, err := utils.JwtGenerate(7, "Admin")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if *gotId != 7 || *gotRole != "Admin" {
		t.Fatalf("identity = (%d, %s)", *gotId, *gotRole)
	}
}

func TestAuthMiddlewareBearerFallback(t *testing.T) {
	r, gotId, _ := identityEcho()

	token, err := utils.JwtGenerate(12, "Instructor")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if *gotId != 12 {
		t.Fatalf("id = %d", *gotId)
	}
}

func TestAuthMiddlewareMissingTokenPassesThrough(t *testing.T) {
	r, gotId, _ := identityEcho()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if *gotId != 0 {
		t.Fatalf("anonymous request resolved id %d", *gotId)
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	r, _, _ := identityEcho()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}
