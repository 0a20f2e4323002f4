package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/handler/http/middleware"
	"github.com/gvanmetre/BiteBook/internal/usecase"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

// AdminHandler serves the user-management pages.
type AdminHandler struct {
	adminUC usecase.IAdminUseCase
	storage contract.IFileStorage
	logger  usecasecontract.IAppLogger
}

func NewAdminHandler(adminUC usecase.IAdminUseCase, storage contract.IFileStorage, logger usecasecontract.IAppLogger) *AdminHandler {
	return &AdminHandler{
		adminUC: adminUC,
		storage: storage,
		logger:  logger,
	}
}

// Users renders the account list.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.adminUC.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Errorf("failed to list users: %v", err)
		RenderPageError(c, "error.tmpl", nil, err)
		return
	}
	RenderPage(c, http.StatusOK, "admin.tmpl", gin.H{"Users": users})
}

// ShowEditUser renders one account with its recipes and comments.
func (h *AdminHandler) ShowEditUser(c *gin.Context) {
	user, recipes, comments, err := h.adminUC.GetUserDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		RenderPageError(c, "error.tmpl", nil, err)
		return
	}
	cards := usecase.CardsFromRecipes(recipes)
	RenderPage(c, http.StatusOK, "admin_edit.tmpl", gin.H{
		"Account":  user,
		"Cards":    cards,
		"Comments": comments,
	})
}

// UpdateUser applies the admin edit form.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("id")
	input := usecase.AdminUserUpdateInput{
		Username:     c.PostForm("username"),
		Email:        c.PostForm("email"),
		Admin:        c.PostForm("admin") == "on" || c.PostForm("admin") == "true",
		RemoveAvatar: c.PostForm("removeAvatar") == "on" || c.PostForm("removeAvatar") == "true",
	}
	if raw := strings.TrimSpace(c.PostForm("suspendDays")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			RenderPageError(c, "error.tmpl", nil, entity.NewValidationError("suspend days must be a whole number"))
			return
		}
		input.SuspendDays = days
	}
	if fileHeader, err := c.FormFile("avatar"); err == nil && fileHeader != nil {
		path, err := h.storage.Save(c.Request.Context(), fileHeader)
		if err != nil {
			RenderPageError(c, "error.tmpl", nil, err)
			return
		}
		input.AvatarPath = path
	}

	if _, err := h.adminUC.UpdateUser(c.Request.Context(), userID, input); err != nil {
		RenderPageError(c, "error.tmpl", nil, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

// DeleteUser removes an account and its recipes.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.adminUC.DeleteUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrSelfDelete) {
			RenderPageError(c, "error.tmpl", nil, entity.NewValidationError(err.Error()))
			return
		}
		RenderPageError(c, "error.tmpl", nil, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}
