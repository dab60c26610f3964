package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
)

// ErrorBody is the wire shape every error response uses. The fixed
// `{error:true, message:...}` contract is kept for compatibility with the
// existing frontend clients.
type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// JSON echoes the operation result directly, without an envelope.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error converts any error into the legacy error contract.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, ErrorBody{Error: true, Message: appErr.Message})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
