package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError is one entry of the `errors` array the boundary returns for
// field-shape failures.
type FieldError struct {
	Msg  string `json:"msg"`
	Path string `json:"path"`
}

// Error writes the uniform single-failure body `{"error": message}`.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"error": message})
}

// ValidationErrors writes a 400 with the `{"errors": [...]}` body.
func ValidationErrors(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}
