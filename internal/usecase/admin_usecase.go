package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

// ErrSelfDelete guards admins against removing their own account.
var ErrSelfDelete = errors.New("admins cannot delete their own account")

// AdminUsecase implements the user-management operations.
type AdminUsecase struct {
	userRepo   contract.IUserRepository
	recipeRepo contract.IRecipeRepository
	tokenRepo  contract.ITokenRepository
	validator  usecasecontract.IValidator
	logger     usecasecontract.IAppLogger
	tagCache   contract.ITagCache
}

var _ IAdminUseCase = (*AdminUsecase)(nil)

// NewAdminUsecase creates a new AdminUsecase instance.
func NewAdminUsecase(
	userRepo contract.IUserRepository,
	recipeRepo contract.IRecipeRepository,
	tokenRepo contract.ITokenRepository,
	validator usecasecontract.IValidator,
	logger usecasecontract.IAppLogger,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
		tokenRepo:  tokenRepo,
		validator:  validator,
		logger:     logger,
	}
}

// SetTagCache wires the tag cache so cascading deletes can invalidate it.
func (u *AdminUsecase) SetTagCache(cache contract.ITagCache) {
	u.tagCache = cache
}

// ListUsers returns every account, username ascending.
func (u *AdminUsecase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return u.userRepo.ListUsers(ctx)
}

// GetUserDetail returns one user together with their recipes and every
// comment they authored across the site.
func (u *AdminUsecase) GetUserDetail(ctx context.Context, userID string) (*entity.User, []*entity.Recipe, []*contract.AuthoredComment, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	recipes, err := u.recipeRepo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	comments, err := u.recipeRepo.CommentsByAuthor(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	return user, recipes, comments, nil
}

// UpdateUser applies the admin edit form. A positive SuspendDays starts a
// suspension from now; a negative value lifts an active one; zero leaves the
// suspension untouched.
func (u *AdminUsecase) UpdateUser(ctx context.Context, userID string, in AdminUserUpdateInput) (*entity.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		username := strings.ToLower(strings.TrimSpace(in.Username))
		if username != user.Username {
			if len(username) < 3 || len(username) > 30 {
				return nil, entity.NewValidationError("username must be between 3 and 30 characters")
			}
			if _, err := u.userRepo.GetUserByUsername(ctx, username); err == nil {
				return nil, ErrUsernameTaken
			} else if !errors.Is(err, entity.ErrNotFound) {
				return nil, err
			}
			user.Username = username
		}
	}
	if in.Email != "" {
		email := strings.ToLower(strings.TrimSpace(in.Email))
		if email != user.Email {
			if err := u.validator.ValidateEmail(email); err != nil {
				return nil, entity.NewValidationError(err.Error())
			}
			if _, err := u.userRepo.GetUserByEmail(ctx, email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, entity.ErrNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}

	user.Admin = in.Admin

	switch {
	case in.SuspendDays > 0:
		until := timeNow().Add(time.Duration(in.SuspendDays) * 24 * time.Hour)
		user.SuspendedUntil = &until
	case in.SuspendDays < 0:
		user.SuspendedUntil = nil
	}

	if in.RemoveAvatar {
		user.AvatarURL = DefaultAvatarImage
	} else if in.AvatarPath != "" {
		user.AvatarURL = in.AvatarPath
	}

	updated, err := u.userRepo.UpdateUser(ctx, user)
	if err != nil {
		u.logger.Errorf("failed to update user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

// DeleteUser removes an account and everything hanging off it: owned
// recipes, shared references to those recipes, and outstanding tokens.
func (u *AdminUsecase) DeleteUser(ctx context.Context, actor *entity.User, userID string) error {
	if actor.ID == userID {
		return ErrSelfDelete
	}
	if _, err := u.userRepo.GetUserByID(ctx, userID); err != nil {
		return err
	}

	deletedIDs, err := u.recipeRepo.DeleteByCreator(ctx, userID)
	if err != nil {
		u.logger.Errorf("failed to delete recipes of user %s: %v", userID, err)
		return fmt.Errorf("failed to delete user recipes: %w", err)
	}
	for _, recipeID := range deletedIDs {
		if err := u.userRepo.RemoveSharedRecipeFromAll(ctx, recipeID); err != nil {
			u.logger.Warnf("failed to remove shared references for recipe %s: %v", recipeID, err)
		}
	}
	if err := u.tokenRepo.RevokeAllTokensForUser(ctx, userID, entity.TokenTypeEmailVerification); err != nil {
		u.logger.Warnf("failed to revoke tokens for user %s: %v", userID, err)
	}
	if err := u.userRepo.DeleteUser(ctx, userID); err != nil {
		u.logger.Errorf("failed to delete user %s: %v", userID, err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if u.tagCache != nil && len(deletedIDs) > 0 {
		if err := u.tagCache.Invalidate(ctx, ingredientTagCacheKey, typeTagCacheKey); err != nil {
			u.logger.Warnf("failed to invalidate tag cache: %v", err)
		}
	}
	u.logger.Infof("admin %s deleted user %s and %d recipes", actor.ID, userID, len(deletedIDs))
	return nil
}
