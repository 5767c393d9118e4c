package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gotodo/internal/app"
	"gotodo/internal/transport/http/middleware"
	"gotodo/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	var errs []response.FieldError
	if len(strings.TrimSpace(req.Username)) < 6 {
		errs = append(errs, response.FieldError{Msg: "Username must be at least 6 characters", Path: "username"})
	}
	if len(strings.TrimSpace(req.Password)) < 6 {
		errs = append(errs, response.FieldError{Msg: "Password must be at least 6 characters", Path: "password"})
	}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, response.FieldError{Msg: "Name is required", Path: "name"})
	}
	if len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	username, err := h.authService.Register(app.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUsernameExists):
			response.Error(c, http.StatusBadRequest, "username already exists, please choose another one.")
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "invalid request payload")
		default:
			response.Error(c, http.StatusInternalServerError, "register failed")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "user successfully created",
		"username": username,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "username and password are required")
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusBadRequest, "Invalid username or password")
		default:
			response.Error(c, http.StatusInternalServerError, "login failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    result.Token,
		"username": result.Username,
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	authUsername, ok := middleware.CurrentUsername(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	err := h.authService.ChangePassword(authUsername, req.Username, req.Password, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "username, password, and newPassword cannot be empty")
		case errors.Is(err, app.ErrForbidden):
			response.Error(c, http.StatusForbidden, "You can only change your own password")
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusBadRequest, "User does not exist")
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusBadRequest, "Current password is incorrect")
		case errors.Is(err, app.ErrWeakPassword):
			response.Error(c, http.StatusBadRequest, "newPassword must be at least 6 characters long")
		default:
			response.Error(c, http.StatusInternalServerError, "change password failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password successfully updated",
	})
}
