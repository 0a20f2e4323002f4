package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

const (
	// DefaultRecipeImage is used when a recipe is created without an upload.
	DefaultRecipeImage = "/images/default.png"

	ingredientTagCacheKey = "tags:ingredients"
	typeTagCacheKey       = "tags:types"
)

// RecipeUsecase implements IRecipeUseCase.
type RecipeUsecase struct {
	recipeRepo contract.IRecipeRepository
	userRepo   contract.IUserRepository
	uuidGen    contract.IUUIDGenerator
	logger     usecasecontract.IAppLogger
	tagCache   contract.ITagCache
}

var _ IRecipeUseCase = (*RecipeUsecase)(nil)

// NewRecipeUsecase creates a new RecipeUsecase instance.
func NewRecipeUsecase(recipeRepo contract.IRecipeRepository, userRepo contract.IUserRepository, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *RecipeUsecase {
	return &RecipeUsecase{
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
		uuidGen:    uuidGen,
		logger:     logger,
	}
}

// SetTagCache wires an optional cache for the distinct tag lists.
func (u *RecipeUsecase) SetTagCache(cache contract.ITagCache) {
	u.tagCache = cache
}

func validateRecipeInput(in *RecipeInput) error {
	var fields []string
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, "name is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		fields = append(fields, "type is required")
	}
	if len(in.Ingredients) == 0 {
		fields = append(fields, "at least one ingredient is required")
	}
	for i, ing := range in.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			fields = append(fields, fmt.Sprintf("ingredient #%d is missing a name", i+1))
		}
		if ing.Amount <= 0 {
			fields = append(fields, fmt.Sprintf("ingredient #%d amount must be a positive number", i+1))
		}
	}
	if in.Servings == nil || *in.Servings <= 0 {
		fields = append(fields, "servings must be a positive number")
	}
	if strings.TrimSpace(in.ServingSize) == "" {
		fields = append(fields, "serving size is required")
	}
	if len(fields) > 0 {
		return entity.NewValidationError(fields...)
	}
	return nil
}

func applyRecipeInput(r *entity.Recipe, in RecipeInput) {
	r.Name = strings.TrimSpace(in.Name)
	r.Type = strings.TrimSpace(in.Type)
	r.Ingredients = entity.NormalizeIngredients(in.Ingredients)
	r.Instructions = in.Instructions
	r.Servings = in.Servings
	r.ServingSize = strings.TrimSpace(in.ServingSize)
	r.Calories = in.Calories
	r.Carbs = in.Carbs
	r.Fat = in.Fat
	r.Protein = in.Protein
	r.Fiber = in.Fiber
	r.Sugar = in.Sugar
	r.SaturatedFat = in.SaturatedFat
	r.TransFat = in.TransFat
	r.Sodium = in.Sodium
	r.Potassium = in.Potassium
	r.Cholesterol = in.Cholesterol
	r.Calcium = in.Calcium
	r.Iron = in.Iron
	r.Public = in.Public
	if in.ImagePath != "" {
		r.Image = in.ImagePath
	}
}

// CreateRecipe validates the input, normalizes ingredient names and stores
// the new recipe. Ownership is recorded on the recipe only; the creator's
// recipe list is always derived from it.
func (u *RecipeUsecase) CreateRecipe(ctx context.Context, creator *entity.User, in RecipeInput) (*entity.Recipe, error) {
	if err := validateRecipeInput(&in); err != nil {
		return nil, err
	}
	recipe := &entity.Recipe{
		ID:        u.uuidGen.NewUUID(),
		CreatorID: creator.ID,
		Image:     DefaultRecipeImage,
		Likes:     []string{},
		Comments:  []entity.Comment{},
	}
	applyRecipeInput(recipe, in)
	if err := u.recipeRepo.CreateRecipe(ctx, recipe); err != nil {
		u.logger.Errorf("failed to create recipe: %v", err)
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	recipe.CreatorName = creator.Username
	u.invalidateTagCache(ctx)
	return recipe, nil
}

// GetRecipe retrieves one recipe. Private recipes are visible to their owner
// and to admins only. Comments are returned oldest first.
func (u *RecipeUsecase) GetRecipe(ctx context.Context, recipeID string, viewer *entity.User) (*entity.Recipe, error) {
	recipe, err := u.recipeRepo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !recipe.Public {
		if viewer == nil || (recipe.CreatorID != viewer.ID && !viewer.Admin) {
			return nil, entity.ErrUnauthorized
		}
	}
	sort.SliceStable(recipe.Comments, func(i, j int) bool {
		return recipe.Comments[i].CreatedAt.Before(recipe.Comments[j].CreatedAt)
	})
	return recipe, nil
}

// ListRecipes returns the base recipe set for a scope, newest first.
func (u *RecipeUsecase) ListRecipes(ctx context.Context, scope RecipeScope, user *entity.User) ([]*entity.Recipe, error) {
	switch scope {
	case ScopePublic:
		return u.recipeRepo.ListPublic(ctx)
	case ScopeLiked:
		return u.recipeRepo.ListLikedBy(ctx, user.ID)
	case ScopeMine:
		own, err := u.recipeRepo.ListByCreator(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if len(user.SharedRecipeIDs) == 0 {
			return own, nil
		}
		shared, err := u.recipeRepo.ListByIDs(ctx, user.SharedRecipeIDs)
		if err != nil {
			return nil, err
		}
		return mergeByCreatedAt(own, shared), nil
	default:
		return nil, fmt.Errorf("unknown recipe scope %d", scope)
	}
}

// PublicRecipesOf returns another user's public recipes for their profile
// page.
func (u *RecipeUsecase) PublicRecipesOf(ctx context.Context, creatorID string) ([]*entity.Recipe, error) {
	return u.recipeRepo.ListPublicByCreator(ctx, creatorID)
}

// mergeByCreatedAt combines two recipe lists, dropping duplicates and
// keeping newest-first order.
func mergeByCreatedAt(a, b []*entity.Recipe) []*entity.Recipe {
	seen := make(map[string]bool, len(a)+len(b))
	merged := make([]*entity.Recipe, 0, len(a)+len(b))
	for _, r := range append(a, b...) {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		merged = append(merged, r)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

// FilterListing fetches the scope's base set and applies the in-process
// predicate chain. Store retrieval order (newest first) is preserved.
func (u *RecipeUsecase) FilterListing(ctx context.Context, scope RecipeScope, user *entity.User, criteria FilterCriteria) ([]*entity.Recipe, error) {
	recipes, err := u.ListRecipes(ctx, scope, user)
	if err != nil {
		return nil, err
	}
	return FilterRecipes(recipes, criteria), nil
}

// UpdateRecipe applies an edit after an owner-or-admin check. Ingredient
// names are re-normalized on every save.
func (u *RecipeUsecase) UpdateRecipe(ctx context.Context, recipeID string, actor *entity.User, in RecipeInput) (*entity.Recipe, error) {
	recipe, err := u.recipeRepo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.CreatorID != actor.ID && !actor.Admin {
		return nil, entity.ErrUnauthorized
	}
	if err := validateRecipeInput(&in); err != nil {
		return nil, err
	}
	applyRecipeInput(recipe, in)
	if err := u.recipeRepo.UpdateRecipe(ctx, recipe); err != nil {
		u.logger.Errorf("failed to update recipe %s: %v", recipeID, err)
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	u.invalidateTagCache(ctx)
	return recipe, nil
}

// DeleteRecipe removes the recipe and drops any shared references to it.
func (u *RecipeUsecase) DeleteRecipe(ctx context.Context, recipeID string, actor *entity.User) error {
	recipe, err := u.recipeRepo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.CreatorID != actor.ID && !actor.Admin {
		return entity.ErrUnauthorized
	}
	if err := u.recipeRepo.DeleteRecipe(ctx, recipeID); err != nil {
		u.logger.Errorf("failed to delete recipe %s: %v", recipeID, err)
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if err := u.userRepo.RemoveSharedRecipeFromAll(ctx, recipeID); err != nil {
		u.logger.Warnf("failed to remove shared references for recipe %s: %v", recipeID, err)
	}
	u.invalidateTagCache(ctx)
	return nil
}

// ShareRecipe adds the recipe to the named user's shared set. Sharing twice
// leaves a single reference.
func (u *RecipeUsecase) ShareRecipe(ctx context.Context, recipeID, username string) error {
	if _, err := u.recipeRepo.GetRecipeByID(ctx, recipeID); err != nil {
		return err
	}
	target, err := u.userRepo.GetUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return err
	}
	return u.userRepo.AddSharedRecipe(ctx, target.ID, recipeID)
}

// AllPublicIngredients returns the distinct ingredient names across public
// recipes, via the tag cache when one is wired.
func (u *RecipeUsecase) AllPublicIngredients(ctx context.Context) ([]string, error) {
	return u.cachedTagList(ctx, ingredientTagCacheKey, u.recipeRepo.DistinctPublicIngredients)
}

// AllPublicTypes returns the distinct recipe types across public recipes.
func (u *RecipeUsecase) AllPublicTypes(ctx context.Context) ([]string, error) {
	return u.cachedTagList(ctx, typeTagCacheKey, u.recipeRepo.DistinctPublicTypes)
}

func (u *RecipeUsecase) cachedTagList(ctx context.Context, key string, fetch func(context.Context) ([]string, error)) ([]string, error) {
	if u.tagCache != nil {
		if values, ok, err := u.tagCache.GetList(ctx, key); err == nil && ok {
			return values, nil
		}
	}
	values, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if u.tagCache != nil {
		if err := u.tagCache.SetList(ctx, key, values); err != nil {
			u.logger.Warnf("failed to cache tag list %s: %v", key, err)
		}
	}
	return values, nil
}

func (u *RecipeUsecase) invalidateTagCache(ctx context.Context) {
	if u.tagCache == nil {
		return
	}
	if err := u.tagCache.Invalidate(ctx, ingredientTagCacheKey, typeTagCacheKey); err != nil {
		u.logger.Warnf("failed to invalidate tag cache: %v", err)
	}
}
