package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/handler/http/dto"
	"github.com/gvanmetre/BiteBook/internal/handler/http/middleware"
	"github.com/gvanmetre/BiteBook/internal/infrastructure/metrics"
	"github.com/gvanmetre/BiteBook/internal/usecase"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

// RecipeHandler serves recipe pages, the card fragments and the recipe
// mutations.
type RecipeHandler struct {
	recipeUC usecase.IRecipeUseCase
	storage  contract.IFileStorage
	logger   usecasecontract.IAppLogger
}

func NewRecipeHandler(recipeUC usecase.IRecipeUseCase, storage contract.IFileStorage, logger usecasecontract.IAppLogger) *RecipeHandler {
	return &RecipeHandler{
		recipeUC: recipeUC,
		storage:  storage,
		logger:   logger,
	}
}

// listPage renders a sorted card listing for one scope.
func (h *RecipeHandler) listPage(c *gin.Context, scope usecase.RecipeScope, template, title string) {
	user := middleware.CurrentUser(c)
	recipes, err := h.recipeUC.ListRecipes(c.Request.Context(), scope, user)
	if err != nil {
		h.logger.Errorf("failed to list recipes: %v", err)
		RenderPageError(c, template, gin.H{"Title": title}, err)
		return
	}
	mode := usecase.ParseSortMode(c.Query("sort"))
	cards := usecase.CardsFromRecipes(recipes)
	usecase.SortCards(cards, mode)
	RenderPage(c, http.StatusOK, template, gin.H{
		"Title":    title,
		"Cards":    cards,
		"SortMode": string(mode),
	})
}

// Find lists all public recipes.
func (h *RecipeHandler) Find(c *gin.Context) {
	h.listPage(c, usecase.ScopePublic, "find.tmpl", "Find Recipes")
}

// MyRecipes lists the user's own and shared recipes.
func (h *RecipeHandler) MyRecipes(c *gin.Context) {
	h.listPage(c, usecase.ScopeMine, "recipes.tmpl", "My Recipes")
}

// Liked lists recipes the user has liked.
func (h *RecipeHandler) Liked(c *gin.Context) {
	h.listPage(c, usecase.ScopeLiked, "liked.tmpl", "Liked Recipes")
}

// filterFragment applies the query criteria to a scope and returns the
// rendered card fragment.
func (h *RecipeHandler) filterFragment(c *gin.Context, scope usecase.RecipeScope) {
	user := middleware.CurrentUser(c)
	criteria := usecase.ParseFilterCriteria(c.Request.URL.Query())
	recipes, err := h.recipeUC.FilterListing(c.Request.Context(), scope, user, criteria)
	if err != nil {
		h.logger.Errorf("failed to filter recipes: %v", err)
		RespondError(c, err)
		return
	}
	mode := usecase.ParseSortMode(c.Query("sort"))
	cards := usecase.CardsFromRecipes(recipes)
	usecase.SortCards(cards, mode)
	c.HTML(http.StatusOK, "recipe_cards.tmpl", gin.H{"Cards": cards})
}

func (h *RecipeHandler) FilterFind(c *gin.Context)  { h.filterFragment(c, usecase.ScopePublic) }
func (h *RecipeHandler) FilterMine(c *gin.Context)  { h.filterFragment(c, usecase.ScopeMine) }
func (h *RecipeHandler) FilterLiked(c *gin.Context) { h.filterFragment(c, usecase.ScopeLiked) }

// AllIngredients returns the distinct public ingredient names for the
// filter dropdown.
func (h *RecipeHandler) AllIngredients(c *gin.Context) {
	values, err := h.recipeUC.AllPublicIngredients(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, values)
}

// AllTypes returns the distinct public recipe types.
func (h *RecipeHandler) AllTypes(c *gin.Context) {
	values, err := h.recipeUC.AllPublicTypes(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, values)
}

// ShowAdd renders the empty recipe form.
func (h *RecipeHandler) ShowAdd(c *gin.Context) {
	RenderPage(c, http.StatusOK, "recipe_form.tmpl", gin.H{"Title": "Add Recipe"})
}

// Create handles the add-recipe form post, including the optional image.
func (h *RecipeHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	input, err := h.parseRecipeForm(c)
	if err != nil {
		RenderPageError(c, "recipe_form.tmpl", gin.H{"Title": "Add Recipe", "Form": formValues(c)}, err)
		return
	}
	recipe, err := h.recipeUC.CreateRecipe(c.Request.Context(), user, input)
	if err != nil {
		RenderPageError(c, "recipe_form.tmpl", gin.H{"Title": "Add Recipe", "Form": formValues(c)}, err)
		return
	}
	metrics.RecordRecipeCreated()
	c.Redirect(http.StatusFound, "/recipes/"+recipe.ID)
}

// Detail renders one recipe. Private recipes 404 for everyone but the owner
// and admins; the usecase enforces that.
func (h *RecipeHandler) Detail(c *gin.Context) {
	user := middleware.CurrentUser(c)
	recipe, err := h.recipeUC.GetRecipe(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		RenderPageError(c, "error.tmpl", nil, err)
		return
	}
	RenderPage(c, http.StatusOK, "recipe_detail.tmpl", gin.H{
		"Recipe":  recipe,
		"Liked":   recipe.LikedBy(user.ID),
		"CanEdit": recipe.CreatorID == user.ID || user.Admin,
	})
}

// ShowEdit renders the recipe form pre-filled.
func (h *RecipeHandler) ShowEdit(c *gin.Context) {
	user := middleware.CurrentUser(c)
	recipe, err := h.recipeUC.GetRecipe(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		RenderPageError(c, "error.tmpl", nil, err)
		return
	}
	if recipe.CreatorID != user.ID && !user.Admin {
		RenderPageError(c, "error.tmpl", nil, entity.ErrUnauthorized)
		return
	}
	RenderPage(c, http.StatusOK, "recipe_form.tmpl", gin.H{"Title": "Edit Recipe", "Recipe": recipe})
}

// Update handles the edit form post.
func (h *RecipeHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	recipeID := c.Param("id")
	input, err := h.parseRecipeForm(c)
	if err != nil {
		RenderPageError(c, "recipe_form.tmpl", gin.H{"Title": "Edit Recipe", "Form": formValues(c)}, err)
		return
	}
	recipe, err := h.recipeUC.UpdateRecipe(c.Request.Context(), recipeID, user, input)
	if err != nil {
		RenderPageError(c, "recipe_form.tmpl", gin.H{"Title": "Edit Recipe", "Form": formValues(c)}, err)
		return
	}
	c.Redirect(http.StatusFound, "/recipes/"+recipe.ID)
}

// Delete removes a recipe and returns to the user's list.
func (h *RecipeHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.recipeUC.DeleteRecipe(c.Request.Context(), c.Param("id"), user); err != nil {
		RenderPageError(c, "error.tmpl", nil, err)
		return
	}
	c.Redirect(http.StatusFound, "/recipes")
}

// Share adds the recipe to another user's shared list.
func (h *RecipeHandler) Share(c *gin.Context) {
	var req dto.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "username is required")
		return
	}
	if err := h.recipeUC.ShareRecipe(c.Request.Context(), c.Param("id"), req.Username); err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.MessageResponse{Success: true, Message: "recipe shared"})
}

// formValues echoes the posted form back into the re-rendered page.
func formValues(c *gin.Context) map[string][]string {
	if c.Request.PostForm == nil {
		_ = c.Request.ParseMultipartForm(32 << 20)
	}
	return c.Request.PostForm
}

// parseRecipeForm converts the multipart recipe form into a RecipeInput.
// Required numeric fields that fail to parse are collected into one
// ValidationError; optional micros fall back to unset.
func (h *RecipeHandler) parseRecipeForm(c *gin.Context) (usecase.RecipeInput, error) {
	var fields []string

	requiredFloat := func(key, label string) float64 {
		raw := strings.TrimSpace(c.PostForm(key))
		if raw == "" {
			fields = append(fields, label+" is required")
			return 0
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			fields = append(fields, label+" must be a non-negative number")
			return 0
		}
		return v
	}
	optionalFloat := func(key string) *float64 {
		raw := strings.TrimSpace(c.PostForm(key))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return nil
		}
		return &v
	}

	input := usecase.RecipeInput{
		Name:         c.PostForm("name"),
		Type:         c.PostForm("type"),
		Instructions: c.PostForm("instructions"),
		ServingSize:  c.PostForm("servingSize"),
		Public:       c.PostForm("public") == "on" || c.PostForm("public") == "true",
	}
	input.Servings = optionalFloat("servings")
	input.Calories = requiredFloat("calories", "calories")
	input.Carbs = requiredFloat("carbs", "carbs")
	input.Fat = requiredFloat("fat", "fat")
	input.Protein = requiredFloat("protein", "protein")
	input.Fiber = optionalFloat("fiber")
	input.Sugar = optionalFloat("sugar")
	input.SaturatedFat = optionalFloat("saturatedFat")
	input.TransFat = optionalFloat("transFat")
	input.Sodium = optionalFloat("sodium")
	input.Potassium = optionalFloat("potassium")
	input.Cholesterol = optionalFloat("cholesterol")
	input.Calcium = optionalFloat("calcium")
	input.Iron = optionalFloat("iron")

	names := c.PostFormArray("ingredientName")
	amounts := c.PostFormArray("ingredientAmount")
	units := c.PostFormArray("ingredientUnit")
	for i, name := range names {
		ing := entity.Ingredient{Name: name}
		if i < len(amounts) {
			amount, err := strconv.ParseFloat(strings.TrimSpace(amounts[i]), 64)
			if err != nil {
				fields = append(fields, fmt.Sprintf("ingredient #%d amount must be a number", i+1))
			} else {
				ing.Amount = amount
			}
		}
		if i < len(units) {
			ing.Unit = units[i]
		}
		input.Ingredients = append(input.Ingredients, ing)
	}

	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		path, err := h.storage.Save(c.Request.Context(), fileHeader)
		if err != nil {
			var vErr *entity.ValidationError
			if errors.As(err, &vErr) {
				fields = append(fields, vErr.Fields...)
			} else {
				return input, fmt.Errorf("failed to store image: %w", err)
			}
		} else {
			input.ImagePath = path
		}
	}

	if len(fields) > 0 {
		return input, entity.NewValidationError(fields...)
	}
	return input, nil
}
