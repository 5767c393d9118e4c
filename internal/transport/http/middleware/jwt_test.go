package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gotodo/internal/pkg/jwtutil"
)

const testSecret = "test-secret"

func newGatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthJWT(testSecret), func(c *gin.Context) {
		userID, _ := CurrentUserID(c)
		username, _ := CurrentUsername(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWTMissingHeader(t *testing.T) {
	rec := doRequest(t, newGatedRouter(), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"Unauthorized"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthJWTWrongScheme(t *testing.T) {
	rec := doRequest(t, newGatedRouter(), "Basic dXNlcjpwYXNz")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"Unauthorized"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthJWTBadToken(t *testing.T) {
	rec := doRequest(t, newGatedRouter(), "Bearer garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"Invalid token"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthJWTExpiredToken(t *testing.T) {
	token, err := jwtutil.GenerateToken(testSecret, -time.Minute, 7, "alice1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	rec := doRequest(t, newGatedRouter(), "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"Invalid token"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthJWTValidTokenInjectsIdentity(t *testing.T) {
	token, err := jwtutil.GenerateToken(testSecret, time.Minute, 7, "alice1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	rec := doRequest(t, newGatedRouter(), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if body := rec.Body.String(); body != `{"user_id":7,"username":"alice1"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
