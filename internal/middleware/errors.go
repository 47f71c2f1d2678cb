package middleware

import (
	"net/http"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/authz"
	"github.com/anhbui5302/AnhBlogWebAPI/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AbortWithError writes err as an error body and stops the chain. Anything
// that is not an *authz.Error is logged and reported as a 500.
func AbortWithError(c *gin.Context, err error) {
	e, ok := authz.AsError(err)
	if !ok {
		logger.Error("request failed", map[string]any{
			"request_id": RequestIDFrom(c),
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
		})
		e = &authz.Error{
			Status:      http.StatusInternalServerError,
			Description: "The server encountered an internal error and was unable to complete your request.",
		}
	} else {
		logger.Info("request rejected", map[string]any{
			"request_id":  RequestIDFrom(c),
			"path":        c.Request.URL.Path,
			"status":      e.Status,
			"description": e.Description,
		})
	}

	c.AbortWithStatusJSON(e.Status, ErrorBody{
		Code:        e.Status,
		Name:        e.Name(),
		Description: e.Description,
	})
}

// NotFound and MethodNotAllowed replace gin's plain-text fallbacks.
func NotFound(c *gin.Context) {
	AbortWithError(c, &authz.Error{
		Status:      http.StatusNotFound,
		Description: "The requested URL was not found on the server.",
	})
}

func MethodNotAllowed(c *gin.Context) {
	AbortWithError(c, &authz.Error{
		Status:      http.StatusMethodNotAllowed,
		Description: "The method is not allowed for the requested URL.",
	})
}
