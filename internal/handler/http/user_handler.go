package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/handler/http/middleware"
	"github.com/gvanmetre/BiteBook/internal/usecase"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

// UserHandler serves public profiles and the self-service profile editor.
type UserHandler struct {
	userUC   usecase.IUserUseCase
	recipeUC usecase.IRecipeUseCase
	storage  contract.IFileStorage
	logger   usecasecontract.IAppLogger
}

func NewUserHandler(userUC usecase.IUserUseCase, recipeUC usecase.IRecipeUseCase, storage contract.IFileStorage, logger usecasecontract.IAppLogger) *UserHandler {
	return &UserHandler{
		userUC:   userUC,
		recipeUC: recipeUC,
		storage:  storage,
		logger:   logger,
	}
}

// Profile renders a user's public profile: their card plus their public
// recipes. Viewing your own profile shows private recipes too.
func (h *UserHandler) Profile(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	profileID := c.Param("id")
	profile, err := h.userUC.GetUserByID(c.Request.Context(), profileID)
	if err != nil {
		RenderPageError(c, "error.tmpl", nil, err)
		return
	}

	var recipes []*entity.Recipe
	if viewer.ID == profileID || viewer.Admin {
		recipes, err = h.recipeUC.ListRecipes(c.Request.Context(), usecase.ScopeMine, profile)
	} else {
		recipes, err = h.recipeUC.PublicRecipesOf(c.Request.Context(), profileID)
	}
	if err != nil {
		h.logger.Errorf("failed to load profile recipes for %s: %v", profileID, err)
		RenderPageError(c, "error.tmpl", nil, err)
		return
	}

	cards := usecase.CardsFromRecipes(recipes)
	usecase.SortCards(cards, usecase.SortMostRecent)
	RenderPage(c, http.StatusOK, "profile.tmpl", gin.H{
		"Profile": profile,
		"Cards":   cards,
		"IsSelf":  viewer.ID == profileID,
	})
}

// ShowEditProfile renders the profile editor, self only.
func (h *UserHandler) ShowEditProfile(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	if viewer.ID != c.Param("id") {
		RenderPageError(c, "error.tmpl", nil, entity.ErrUnauthorized)
		return
	}
	RenderPage(c, http.StatusOK, "profile_edit.tmpl", gin.H{"Profile": viewer})
}

// UpdateProfile applies the profile form, self only.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	profileID := c.Param("id")
	if viewer.ID != profileID {
		RenderPageError(c, "error.tmpl", nil, entity.ErrUnauthorized)
		return
	}

	input := usecase.ProfileUpdateInput{
		Email:           c.PostForm("email"),
		CurrentPassword: c.PostForm("currentPassword"),
		NewPassword:     c.PostForm("newPassword"),
		Bio:             c.PostForm("bio"),
	}
	if fileHeader, err := c.FormFile("avatar"); err == nil && fileHeader != nil {
		path, err := h.storage.Save(c.Request.Context(), fileHeader)
		if err != nil {
			if !entity.IsValidation(err) {
				h.logger.Errorf("failed to store avatar for %s: %v", profileID, err)
			}
			RenderPageError(c, "profile_edit.tmpl", gin.H{"Profile": viewer}, err)
			return
		}
		input.AvatarPath = path
	}

	if _, err := h.userUC.UpdateProfile(c.Request.Context(), profileID, input); err != nil {
		RenderPageError(c, "profile_edit.tmpl", gin.H{"Profile": viewer}, err)
		return
	}
	c.Redirect(http.StatusFound, "/user/"+profileID)
}
