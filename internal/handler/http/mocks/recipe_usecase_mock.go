package mocks

import (
	"context"
	"fmt"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/usecase"
)

// MockRecipeUsecase is a hand-written mock for IRecipeUseCase.
type MockRecipeUsecase struct {
	ShouldFailCreate   bool
	ShouldFailGet      bool
	GetUnauthorized    bool
	ShouldFailList     bool
	ShouldFailUpdate   bool
	ShouldFailDelete   bool
	ShouldFailShare    bool
	ShouldFailTagLists bool

	MockRecipe  entity.Recipe
	MockRecipes []*entity.Recipe
	MockTags    []string
}

var _ usecase.IRecipeUseCase = (*MockRecipeUsecase)(nil)

func NewMockRecipeUsecase() *MockRecipeUsecase {
	recipe := entity.Recipe{
		ID:          "recipe-1",
		Name:        "Chili",
		Type:        "dinner",
		CreatorID:   "user-1",
		CreatorName: "alice",
		Image:       "/images/default.png",
		Ingredients: []entity.Ingredient{{Name: "Ground Beef", Amount: 500, Unit: "g"}},
		Public:      true,
	}
	return &MockRecipeUsecase{
		MockRecipe:  recipe,
		MockRecipes: []*entity.Recipe{&recipe},
		MockTags:    []string{"Ground Beef", "Kidney Beans"},
	}
}

func (m *MockRecipeUsecase) CreateRecipe(ctx context.Context, creator *entity.User, in usecase.RecipeInput) (*entity.Recipe, error) {
	if m.ShouldFailCreate {
		return nil, entity.NewValidationError("name is required")
	}
	return &m.MockRecipe, nil
}

func (m *MockRecipeUsecase) GetRecipe(ctx context.Context, recipeID string, viewer *entity.User) (*entity.Recipe, error) {
	if m.GetUnauthorized {
		return nil, entity.ErrUnauthorized
	}
	if m.ShouldFailGet {
		return nil, fmt.Errorf("recipe: %w", entity.ErrNotFound)
	}
	return &m.MockRecipe, nil
}

func (m *MockRecipeUsecase) ListRecipes(ctx context.Context, scope usecase.RecipeScope, user *entity.User) ([]*entity.Recipe, error) {
	if m.ShouldFailList {
		return nil, fmt.Errorf("list failed")
	}
	return m.MockRecipes, nil
}

func (m *MockRecipeUsecase) PublicRecipesOf(ctx context.Context, creatorID string) ([]*entity.Recipe, error) {
	if m.ShouldFailList {
		return nil, fmt.Errorf("list failed")
	}
	return m.MockRecipes, nil
}

func (m *MockRecipeUsecase) FilterListing(ctx context.Context, scope usecase.RecipeScope, user *entity.User, criteria usecase.FilterCriteria) ([]*entity.Recipe, error) {
	if m.ShouldFailList {
		return nil, fmt.Errorf("list failed")
	}
	return usecase.FilterRecipes(m.MockRecipes, criteria), nil
}

func (m *MockRecipeUsecase) UpdateRecipe(ctx context.Context, recipeID string, actor *entity.User, in usecase.RecipeInput) (*entity.Recipe, error) {
	if m.ShouldFailUpdate {
		return nil, entity.ErrUnauthorized
	}
	return &m.MockRecipe, nil
}

func (m *MockRecipeUsecase) DeleteRecipe(ctx context.Context, recipeID string, actor *entity.User) error {
	if m.ShouldFailDelete {
		return entity.ErrUnauthorized
	}
	return nil
}

func (m *MockRecipeUsecase) ShareRecipe(ctx context.Context, recipeID, username string) error {
	if m.ShouldFailShare {
		return fmt.Errorf("user: %w", entity.ErrNotFound)
	}
	return nil
}

func (m *MockRecipeUsecase) AllPublicIngredients(ctx context.Context) ([]string, error) {
	if m.ShouldFailTagLists {
		return nil, fmt.Errorf("tags failed")
	}
	return m.MockTags, nil
}

func (m *MockRecipeUsecase) AllPublicTypes(ctx context.Context) ([]string, error) {
	if m.ShouldFailTagLists {
		return nil, fmt.Errorf("tags failed")
	}
	return []string{"dinner"}, nil
}
