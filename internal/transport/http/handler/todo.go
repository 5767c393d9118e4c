package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gotodo/internal/app"
	"gotodo/internal/model"
	"gotodo/internal/transport/http/middleware"
	"gotodo/internal/transport/http/response"
)

type TodoHandler struct {
	todoService *app.TodoService
}

type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    *int   `json:"priority"`
}

type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *int    `json:"priority"`
	IsCompleted *bool   `json:"is_completed"`
}

func NewTodoHandler(todoService *app.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	todo, err := h.todoService.Create(c.Request.Context(), userID, app.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		h.writeTodoError(c, err, "Title is required")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"todo":    todo,
	})
}

func (h *TodoHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var errs []response.FieldError
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		errs = append(errs, response.FieldError{Msg: "Page must be a positive integer", Path: "page"})
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		errs = append(errs, response.FieldError{Msg: "Limit must be a positive integer", Path: "limit"})
	}
	if len(errs) > 0 {
		response.ValidationErrors(c, errs)
		return
	}

	todos, err := h.todoService.List(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list todos failed")
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

func (h *TodoHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.GetByID(userID, todoID)
	if err != nil && !errors.Is(err, app.ErrTodoNotFound) {
		response.Error(c, http.StatusInternalServerError, "get todo failed")
		return
	}
	if todo == nil {
		response.Error(c, http.StatusNotFound, "Todo not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"todo":    todo,
	})
}

func (h *TodoHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	todo, err := h.todoService.Update(c.Request.Context(), userID, todoID, app.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		h.writeTodoError(c, err, "Title cannot be empty")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"todo":    todo,
	})
}

func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	if err := h.todoService.Delete(c.Request.Context(), userID, todoID); err != nil {
		if errors.Is(err, app.ErrTodoNotFound) {
			response.Error(c, http.StatusNotFound, "Todo not found or already deleted")
			return
		}
		response.Error(c, http.StatusInternalServerError, "delete todo failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Todo deleted successfully",
	})
}

// parseTodoID reads the :id route param. On failure it writes the validation
// body itself and reports false.
func parseTodoID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.ValidationErrors(c, []response.FieldError{
			{Msg: "Todo ID must be a positive integer", Path: "id"},
		})
		return 0, false
	}
	return uint(id), true
}

// writeTodoError maps todo service failures to wire bodies. titleMsg differs
// between create ("Title is required") and update ("Title cannot be empty").
func (h *TodoHandler) writeTodoError(c *gin.Context, err error, titleMsg string) {
	switch {
	case errors.Is(err, app.ErrTitleRequired):
		response.ValidationErrors(c, []response.FieldError{{Msg: titleMsg, Path: "title"}})
	case errors.Is(err, app.ErrInvalidDueDate):
		response.ValidationErrors(c, []response.FieldError{
			{Msg: "Due date must be in dd/mm/yyyy format and a valid date", Path: "due_date"},
		})
	case errors.Is(err, app.ErrInvalidPriority):
		response.ValidationErrors(c, []response.FieldError{
			{Msg: "Priority must be a non-negative integer and less than 10", Path: "priority"},
		})
	case errors.Is(err, app.ErrTodoNotFound):
		response.Error(c, http.StatusNotFound, "Todo not found")
	default:
		response.Error(c, http.StatusInternalServerError, "todo operation failed")
	}
}
