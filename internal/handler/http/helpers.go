package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/handler/http/dto"
	"github.com/gvanmetre/BiteBook/internal/handler/http/middleware"
	"github.com/gvanmetre/BiteBook/internal/usecase"
)

// ErrorHandler centralizes JSON error responses.
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Success: false, Error: message})
}

// SuccessHandler centralizes success responses.
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondError maps a usecase error onto a JSON status code. Unknown errors
// become a generic 500; the detail stays in the logs only.
func RespondError(c *gin.Context, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: "validation failed", Fields: vErr.Fields})
	case errors.Is(err, entity.ErrNotFound):
		ErrorHandler(c, http.StatusNotFound, "not found")
	case errors.Is(err, entity.ErrUnauthenticated):
		ErrorHandler(c, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, entity.ErrUnauthorized):
		ErrorHandler(c, http.StatusForbidden, "not allowed")
	case errors.Is(err, usecase.ErrUsernameTaken),
		errors.Is(err, usecase.ErrEmailTaken):
		ErrorHandler(c, http.StatusConflict, err.Error())
	default:
		ErrorHandler(c, http.StatusInternalServerError, "something went wrong")
	}
}

// RenderPage renders an HTML template with the signed-in user added to the
// template data.
func RenderPage(c *gin.Context, statusCode int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = middleware.CurrentUser(c)
	}
	c.HTML(statusCode, name, data)
}

// RenderPageError renders the page again with error messages, keeping the
// submitted form values the caller put into data.
func RenderPageError(c *gin.Context, name string, data gin.H, err error) {
	var vErr *entity.ValidationError
	if data == nil {
		data = gin.H{}
	}
	switch {
	case errors.As(err, &vErr):
		data["Errors"] = vErr.Fields
		RenderPage(c, http.StatusBadRequest, name, data)
	case errors.Is(err, entity.ErrNotFound):
		data["Errors"] = []string{"not found"}
		RenderPage(c, http.StatusNotFound, name, data)
	case errors.Is(err, entity.ErrUnauthorized):
		data["Errors"] = []string{"not allowed"}
		RenderPage(c, http.StatusForbidden, name, data)
	default:
		data["Errors"] = []string{err.Error()}
		RenderPage(c, http.StatusBadRequest, name, data)
	}
}
