package contract

import (
	"context"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateUser updates an existing user and returns the updated user.
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	// UpdateUserPassword updates user's password by ID with the provided hashed password.
	UpdateUserPassword(ctx context.Context, id string, hashedPassword string) error
	// DeleteUser removes a user by ID.
	DeleteUser(ctx context.Context, id string) error
	// ListUsers returns all users sorted by username ascending.
	ListUsers(ctx context.Context) ([]*entity.User, error)
	// AddSharedRecipe adds a recipe to the user's shared set; duplicates are no-ops.
	AddSharedRecipe(ctx context.Context, userID, recipeID string) error
	// RemoveSharedRecipeFromAll removes the recipe from every user's shared set.
	RemoveSharedRecipeFromAll(ctx context.Context, recipeID string) error
}
