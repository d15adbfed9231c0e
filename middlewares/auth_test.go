package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kiosk/utils"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/staff/ping", StaffAuth(testSecret, "staff"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "staffId": c.GetUint("staffId")})
	})
	return r
}

func get(r *gin.Engine, authHeader string) int {
	req := httptest.NewRequest(http.MethodGet, "/staff/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestStaffAuthAcceptsValidToken(t *testing.T) {
	r := authRouter()
	token, err := utils.GenerateToken(7, "staff", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if code := get(r, "Bearer "+token); code != http.StatusOK {
		t.Fatalf("valid token: %d", code)
	}
}

func TestStaffAuthRejectsMissingOrMalformed(t *testing.T) {
	r := authRouter()
	if code := get(r, ""); code != http.StatusUnauthorized {
		t.Fatalf("no header: %d", code)
	}
	if code := get(r, "Token abc"); code != http.StatusUnauthorized {
		t.Fatalf("wrong scheme: %d", code)
	}
	if code := get(r, "Bearer not-a-jwt"); code != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", code)
	}
}

func TestStaffAuthRejectsWrongSecret(t *testing.T) {
	r := authRouter()
	token, _ := utils.GenerateToken(7, "staff", "other-secret", time.Hour)
	if code := get(r, "Bearer "+token); code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: %d", code)
	}
}

func TestStaffAuthRejectsExpiredToken(t *testing.T) {
	r := authRouter()
	token, _ := utils.GenerateToken(7, "staff", testSecret, -time.Minute)
	if code := get(r, "Bearer "+token); code != http.StatusUnauthorized {
		t.Fatalf("expired token: %d", code)
	}
}

func TestStaffAuthEnforcesRole(t *testing.T) {
	r := authRouter()
	token, _ := utils.GenerateToken(7, "rider", testSecret, time.Hour)
	if code := get(r, "Bearer "+token); code != http.StatusForbidden {
		t.Fatalf("wrong role: %d", code)
	}
}
