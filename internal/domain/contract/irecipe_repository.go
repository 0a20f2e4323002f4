package contract

import (
	"context"
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
)

// AuthoredComment is a comment joined with its parent recipe, used by the
// admin user-detail view.
type AuthoredComment struct {
	CommentID  string    `bson:"comment_id"`
	Text       string    `bson:"text"`
	RecipeID   string    `bson:"recipe_id"`
	RecipeName string    `bson:"recipe_name"`
	CreatedAt  time.Time `bson:"created_at"`
}

type IRecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *entity.Recipe) error
	// GetRecipeByID retrieves a recipe with its creator name resolved.
	GetRecipeByID(ctx context.Context, recipeID string) (*entity.Recipe, error)
	// ListPublic returns public recipes, newest first, creator names resolved.
	ListPublic(ctx context.Context) ([]*entity.Recipe, error)
	// ListByCreator returns recipes owned by the user, newest first.
	ListByCreator(ctx context.Context, creatorID string) ([]*entity.Recipe, error)
	// ListPublicByCreator returns the user's public recipes, newest first.
	ListPublicByCreator(ctx context.Context, creatorID string) ([]*entity.Recipe, error)
	// ListByIDs returns the recipes with the given IDs, newest first.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Recipe, error)
	// ListLikedBy returns recipes whose like set contains the user, newest first.
	ListLikedBy(ctx context.Context, userID string) ([]*entity.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *entity.Recipe) error
	DeleteRecipe(ctx context.Context, recipeID string) error
	// DeleteByCreator removes all recipes owned by the user and returns their IDs.
	DeleteByCreator(ctx context.Context, creatorID string) ([]string, error)

	// AddLike adds the user to the recipe's like set. Returns false when the
	// user was already present. The update is atomic on the store side.
	AddLike(ctx context.Context, recipeID, userID string) (bool, error)
	// RemoveLike removes the user from the like set; false when absent.
	RemoveLike(ctx context.Context, recipeID, userID string) (bool, error)
	// CountLikes returns the current size of the recipe's like set.
	CountLikes(ctx context.Context, recipeID string) (int, error)

	AddComment(ctx context.Context, recipeID string, comment *entity.Comment) error
	UpdateCommentText(ctx context.Context, recipeID, commentID, text string) error
	RemoveComment(ctx context.Context, recipeID, commentID string) error
	// AddCommentLike / RemoveCommentLike mirror the recipe like set operations
	// scoped to one embedded comment.
	AddCommentLike(ctx context.Context, recipeID, commentID, userID string) (bool, error)
	RemoveCommentLike(ctx context.Context, recipeID, commentID, userID string) (bool, error)
	CountCommentLikes(ctx context.Context, recipeID, commentID string) (int, error)
	// CommentsByAuthor returns every comment the user wrote across all
	// recipes, newest first.
	CommentsByAuthor(ctx context.Context, userID string) ([]*AuthoredComment, error)

	// DistinctPublicIngredients returns the distinct ingredient names across
	// public recipes.
	DistinctPublicIngredients(ctx context.Context) ([]string, error)
	// DistinctPublicTypes returns the distinct type values across public recipes.
	DistinctPublicTypes(ctx context.Context) ([]string, error)
}
