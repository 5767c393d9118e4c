package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gotodo/internal/model"
	"gotodo/internal/transport/http/middleware"
	"gotodo/internal/transport/http/response"
)

// ActivityLister reads back the audit trail the worker persists.
type ActivityLister interface {
	ListByUser(userID uint, limit int) ([]model.Activity, error)
}

type ActivityHandler struct {
	activity ActivityLister
}

func NewActivityHandler(activity ActivityLister) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List returns the caller's most recent audit entries, newest first.
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.ValidationErrors(c, []response.FieldError{
				{Msg: "Limit must be a positive integer", Path: "limit"},
			})
			return
		}
		limit = parsed
	}

	entries, err := h.activity.ListByUser(userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list activity failed")
		return
	}
	if entries == nil {
		entries = []model.Activity{}
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries})
}
