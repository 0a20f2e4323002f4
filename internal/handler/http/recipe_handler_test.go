package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gvanmetre/BiteBook/internal/handler/http/middleware"
	"github.com/gvanmetre/BiteBook/internal/handler/http/mocks"
)

func setupRecipeRouter(userUC *mocks.MockUserUsecase, recipeUC *mocks.MockRecipeUsecase) *gin.Engine {
	r := newTestEngine()
	h := NewRecipeHandler(recipeUC, nil, noopLogger{})
	requireVerifiedPage := middleware.RequireVerifiedPage(userUC)
	requireVerifiedAPI := middleware.RequireVerifiedAPI(userUC)

	r.GET("/find", requireVerifiedPage, h.Find)
	r.GET("/find/filter", requireVerifiedAPI, h.FilterFind)
	r.GET("/find/all-ingredients", requireVerifiedAPI, h.AllIngredients)
	r.GET("/find/all-types", requireVerifiedAPI, h.AllTypes)
	r.GET("/recipes/:id", requireVerifiedPage, h.Detail)
	r.POST("/recipes/share/:id", requireVerifiedAPI, h.Share)
	return r
}

func TestFindRequiresVerifiedSession(t *testing.T) {
	r := setupRecipeRouter(mocks.NewMockUserUsecase(), mocks.NewMockRecipeUsecase())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/find", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestFindUnverifiedBouncedToVerify(t *testing.T) {
	userUC := mocks.NewMockUserUsecase()
	userUC.MockUser.IsVerified = false
	r := setupRecipeRouter(userUC, mocks.NewMockRecipeUsecase())

	w := getWithSession(r, "/find")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/verify", w.Header().Get("Location"))
}

func TestFindRendersCards(t *testing.T) {
	r := setupRecipeRouter(mocks.NewMockUserUsecase(), mocks.NewMockRecipeUsecase())

	w := getWithSession(r, "/find")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chili")
	assert.Contains(t, w.Body.String(), "by alice")
}

func TestFilterFragmentReturnsMatchingCards(t *testing.T) {
	r := setupRecipeRouter(mocks.NewMockUserUsecase(), mocks.NewMockRecipeUsecase())

	w := getWithSession(r, "/find/filter?name=chili")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chili")

	w = getWithSession(r, "/find/filter?name=nomatch")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No recipes found")
}

func TestRecipeDetailRendersPage(t *testing.T) {
	r := setupRecipeRouter(mocks.NewMockUserUsecase(), mocks.NewMockRecipeUsecase())

	w := getWithSession(r, "/recipes/recipe-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chili")
	assert.Contains(t, w.Body.String(), "Ground Beef")
}

func TestRecipeDetailPrivateNotAllowed(t *testing.T) {
	recipeUC := mocks.NewMockRecipeUsecase()
	recipeUC.GetUnauthorized = true
	r := setupRecipeRouter(mocks.NewMockUserUsecase(), recipeUC)

	w := getWithSession(r, "/recipes/recipe-1")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not allowed")
}

func TestAllIngredientsJSON(t *testing.T) {
	r := setupRecipeRouter(mocks.NewMockUserUsecase(), mocks.NewMockRecipeUsecase())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/find/all-ingredients", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ground Beef")
}

func TestShareRecipe(t *testing.T) {
	r := setupRecipeRouter(mocks.NewMockUserUsecase(), mocks.NewMockRecipeUsecase())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/recipes/share/recipe-1", strings.NewReader(`{"username":"bob"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer session-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recipe shared")
}

func TestShareRecipeUnknownUsername(t *testing.T) {
	recipeUC := mocks.NewMockRecipeUsecase()
	recipeUC.ShouldFailShare = true
	r := setupRecipeRouter(mocks.NewMockUserUsecase(), recipeUC)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/recipes/share/recipe-1", strings.NewReader(`{"username":"nobody"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer session-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShareRecipeMissingUsername(t *testing.T) {
	r := setupRecipeRouter(mocks.NewMockUserUsecase(), mocks.NewMockRecipeUsecase())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/recipes/share/recipe-1", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer session-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username is required")
}
