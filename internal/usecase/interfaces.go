package usecase

import (
	"context"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
)

// SessionClaims is the identity a parsed session token carries.
type SessionClaims struct {
	UserID string
	Admin  bool
}

// JWTService issues and validates the signed session tokens that back the
// cookie/bearer session.
type JWTService interface {
	GenerateSessionToken(userID string, admin bool) (string, error)
	ParseSessionToken(token string) (*SessionClaims, error)
}

// RecipeScope selects which base recipe set a listing or filter runs over.
type RecipeScope int

const (
	// ScopePublic is every recipe with the public flag set.
	ScopePublic RecipeScope = iota
	// ScopeMine is the acting user's own recipes plus recipes shared to them.
	ScopeMine
	// ScopeLiked is every recipe whose like set contains the acting user.
	ScopeLiked
)

// RecipeInput carries the validated form fields for a recipe create/update.
type RecipeInput struct {
	Name         string
	Type         string
	Ingredients  []entity.Ingredient
	Instructions string
	Servings     *float64
	ServingSize  string

	Calories float64
	Carbs    float64
	Fat      float64
	Protein  float64

	Fiber        *float64
	Sugar        *float64
	SaturatedFat *float64
	TransFat     *float64
	Sodium       *float64
	Potassium    *float64
	Cholesterol  *float64
	Calcium      *float64
	Iron         *float64

	Public bool
	// ImagePath is the stored upload path; empty means keep the current
	// image (update) or use the default (create).
	ImagePath string
}

// ProfileUpdateInput carries a user's own profile edit.
type ProfileUpdateInput struct {
	Email           string
	CurrentPassword string
	NewPassword     string
	AvatarPath      string
	Bio             string
}

// AdminUserUpdateInput carries the admin user-edit form.
type AdminUserUpdateInput struct {
	Username     string
	Email        string
	Admin        bool
	SuspendDays  int
	RemoveAvatar bool
	AvatarPath   string
}

type IUserUseCase interface {
	Register(ctx context.Context, username, email, password, passwordConfirm string) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
	Authenticate(ctx context.Context, sessionToken string) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (*entity.User, error)
}

type IRecipeUseCase interface {
	CreateRecipe(ctx context.Context, creator *entity.User, in RecipeInput) (*entity.Recipe, error)
	GetRecipe(ctx context.Context, recipeID string, viewer *entity.User) (*entity.Recipe, error)
	ListRecipes(ctx context.Context, scope RecipeScope, user *entity.User) ([]*entity.Recipe, error)
	PublicRecipesOf(ctx context.Context, creatorID string) ([]*entity.Recipe, error)
	FilterListing(ctx context.Context, scope RecipeScope, user *entity.User, criteria FilterCriteria) ([]*entity.Recipe, error)
	UpdateRecipe(ctx context.Context, recipeID string, actor *entity.User, in RecipeInput) (*entity.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID string, actor *entity.User) error
	ShareRecipe(ctx context.Context, recipeID, username string) error
	AllPublicIngredients(ctx context.Context) ([]string, error)
	AllPublicTypes(ctx context.Context) ([]string, error)
}

type IEngagementUseCase interface {
	ToggleRecipeLike(ctx context.Context, recipeID, userID string) (liked bool, likeCount int, err error)
	AddComment(ctx context.Context, recipeID string, author *entity.User, text string) (*entity.Comment, error)
	EditComment(ctx context.Context, recipeID, commentID string, actor *entity.User, text string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, recipeID, commentID string, actor *entity.User) error
	ToggleCommentLike(ctx context.Context, recipeID, commentID, userID string) (liked bool, likeCount int, err error)
}

type IAdminUseCase interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)
	GetUserDetail(ctx context.Context, userID string) (*entity.User, []*entity.Recipe, []*contract.AuthoredComment, error)
	UpdateUser(ctx context.Context, userID string, in AdminUserUpdateInput) (*entity.User, error)
	DeleteUser(ctx context.Context, actor *entity.User, userID string) error
}

type IEmailVerificationUC interface {
	RequestVerificationEmail(ctx context.Context, user *entity.User) error
	VerifyEmailToken(ctx context.Context, verifier, plainToken string) (*entity.User, error)
}
