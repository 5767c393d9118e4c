package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gotodo/internal/app"
	"gotodo/internal/model"
	"gotodo/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type memUserStore struct {
	users  map[string]*model.User
	nextID uint
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*model.User{}, nextID: 1}
}

func (s *memUserStore) Create(user *model.User) error {
	if _, ok := s.users[user.Username]; ok {
		return errors.New("duplicate username")
	}
	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.users[user.Username] = &copied
	return nil
}

func (s *memUserStore) GetByUsername(username string) (*model.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) ExistsByUsername(username string) (bool, error) {
	_, ok := s.users[username]
	return ok, nil
}

func (s *memUserStore) UpdatePassword(username, passwordHash string) error {
	user, ok := s.users[username]
	if !ok {
		return errors.New("user not found")
	}
	user.PasswordHash = passwordHash
	return nil
}

func newAuthRouter(store app.UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authService := app.NewAuthService(store, testSecret, time.Minute, 4)
	authHandler := NewAuthHandler(authService)

	router := gin.New()
	group := router.Group("/authentication")
	group.POST("/register", authHandler.Register)
	group.POST("/login", authHandler.Login)
	group.POST("/change-password", middleware.AuthJWT(testSecret), authHandler.ChangePassword)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRegisterEndpoint(t *testing.T) {
	router := newAuthRouter(newMemUserStore())

	rec := postJSON(t, router, "/authentication/register", "", gin.H{
		"username": "alice1", "password": "secret1", "name": "Alice",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["username"] != "alice1" || body["message"] != "user successfully created" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	router := newAuthRouter(newMemUserStore())

	rec := postJSON(t, router, "/authentication/register", "", gin.H{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	errs, ok := body["errors"].([]interface{})
	if !ok || len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %v", body)
	}
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	router := newAuthRouter(newMemUserStore())
	payload := gin.H{"username": "alice1", "password": "secret1", "name": "Alice"}

	if rec := postJSON(t, router, "/authentication/register", "", payload); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}
	rec := postJSON(t, router, "/authentication/register", "", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "username already exists, please choose another one." {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestLoginEndpoint(t *testing.T) {
	router := newAuthRouter(newMemUserStore())
	register := gin.H{"username": "alice1", "password": "secret1", "name": "Alice"}
	if rec := postJSON(t, router, "/authentication/register", "", register); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	rec := postJSON(t, router, "/authentication/login", "", gin.H{"username": "alice1", "password": "secret1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	token, _ := body["token"].(string)
	if token == "" || body["username"] != "alice1" {
		t.Fatalf("unexpected body: %v", body)
	}

	// Unknown user and wrong password produce the identical body.
	unknown := postJSON(t, router, "/authentication/login", "", gin.H{"username": "nobody1", "password": "secret1"})
	wrong := postJSON(t, router, "/authentication/login", "", gin.H{"username": "alice1", "password": "nope123"})
	if unknown.Code != http.StatusBadRequest || wrong.Code != http.StatusBadRequest {
		t.Fatalf("status = %d / %d, want 400 / 400", unknown.Code, wrong.Code)
	}
	if unknown.Body.String() != wrong.Body.String() {
		t.Fatalf("login failures must be indistinguishable: %s vs %s", unknown.Body.String(), wrong.Body.String())
	}
}

func TestChangePasswordEndpoint(t *testing.T) {
	router := newAuthRouter(newMemUserStore())
	if rec := postJSON(t, router, "/authentication/register", "", gin.H{
		"username": "alice1", "password": "secret1", "name": "Alice",
	}); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	login := postJSON(t, router, "/authentication/login", "", gin.H{"username": "alice1", "password": "secret1"})
	token := decodeBody(t, login)["token"].(string)

	// No token at all.
	rec := postJSON(t, router, "/authentication/change-password", "", gin.H{
		"username": "alice1", "password": "secret1", "newPassword": "newsecret1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	// Target is someone else.
	rec = postJSON(t, router, "/authentication/change-password", token, gin.H{
		"username": "bobby1", "password": "secret1", "newPassword": "newsecret1",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "You can only change your own password" {
		t.Fatalf("unexpected body: %v", body)
	}

	// Weak replacement.
	rec = postJSON(t, router, "/authentication/change-password", token, gin.H{
		"username": "alice1", "password": "secret1", "newPassword": "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	// Success, then the old password stops working.
	rec = postJSON(t, router, "/authentication/change-password", token, gin.H{
		"username": "alice1", "password": "secret1", "newPassword": "newsecret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["success"] != true || body["message"] != "Password successfully updated" {
		t.Fatalf("unexpected body: %v", body)
	}

	if rec := postJSON(t, router, "/authentication/login", "", gin.H{"username": "alice1", "password": "secret1"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("old password login status = %d, want 400", rec.Code)
	}
	if rec := postJSON(t, router, "/authentication/login", "", gin.H{"username": "alice1", "password": "newsecret1"}); rec.Code != http.StatusOK {
		t.Fatalf("new password login status = %d, want 200", rec.Code)
	}
}
