package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

// MaxCommentLength is the upper bound on comment text, applied after
// trimming. Create and edit share it.
const MaxCommentLength = 500

// EngagementUsecase implements likes and comments on recipes.
type EngagementUsecase struct {
	recipeRepo contract.IRecipeRepository
	uuidGen    contract.IUUIDGenerator
	logger     usecasecontract.IAppLogger
}

var _ IEngagementUseCase = (*EngagementUsecase)(nil)

// NewEngagementUsecase creates a new EngagementUsecase instance.
func NewEngagementUsecase(recipeRepo contract.IRecipeRepository, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *EngagementUsecase {
	return &EngagementUsecase{
		recipeRepo: recipeRepo,
		uuidGen:    uuidGen,
		logger:     logger,
	}
}

// ToggleRecipeLike flips the user's membership in the recipe's like set and
// returns the resulting state plus the set size. Both set updates are atomic
// on the store side, so concurrent toggles settle on a consistent set.
func (u *EngagementUsecase) ToggleRecipeLike(ctx context.Context, recipeID, userID string) (bool, int, error) {
	added, err := u.recipeRepo.AddLike(ctx, recipeID, userID)
	if err != nil {
		return false, 0, err
	}
	liked := true
	if !added {
		// Already present, so this toggle is an unlike.
		if _, err := u.recipeRepo.RemoveLike(ctx, recipeID, userID); err != nil {
			return false, 0, err
		}
		liked = false
	}
	count, err := u.recipeRepo.CountLikes(ctx, recipeID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func validateCommentText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", entity.NewValidationError("comment text is required")
	}
	if len([]rune(trimmed)) > MaxCommentLength {
		return "", entity.NewValidationError(fmt.Sprintf("comment must be at most %d characters", MaxCommentLength))
	}
	return trimmed, nil
}

// AddComment appends a comment to the recipe. Author display fields are
// denormalized onto the comment at write time.
func (u *EngagementUsecase) AddComment(ctx context.Context, recipeID string, author *entity.User, text string) (*entity.Comment, error) {
	trimmed, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}
	if _, err := u.recipeRepo.GetRecipeByID(ctx, recipeID); err != nil {
		return nil, err
	}
	comment := &entity.Comment{
		ID:        u.uuidGen.NewUUID(),
		UserID:    author.ID,
		Username:  author.Username,
		AvatarURL: author.AvatarURL,
		Text:      trimmed,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}
	if err := u.recipeRepo.AddComment(ctx, recipeID, comment); err != nil {
		u.logger.Errorf("failed to add comment to recipe %s: %v", recipeID, err)
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return comment, nil
}

// EditComment replaces a comment's text. Only the comment author or an admin
// may edit, and the replacement passes the same validation as a new comment.
func (u *EngagementUsecase) EditComment(ctx context.Context, recipeID, commentID string, actor *entity.User, text string) (*entity.Comment, error) {
	trimmed, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}
	comment, err := u.findComment(ctx, recipeID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actor.ID && !actor.Admin {
		return nil, entity.ErrUnauthorized
	}
	if err := u.recipeRepo.UpdateCommentText(ctx, recipeID, commentID, trimmed); err != nil {
		u.logger.Errorf("failed to edit comment %s on recipe %s: %v", commentID, recipeID, err)
		return nil, fmt.Errorf("failed to edit comment: %w", err)
	}
	comment.Text = trimmed
	return comment, nil
}

// DeleteComment removes a comment, author-or-admin only.
func (u *EngagementUsecase) DeleteComment(ctx context.Context, recipeID, commentID string, actor *entity.User) error {
	comment, err := u.findComment(ctx, recipeID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && !actor.Admin {
		return entity.ErrUnauthorized
	}
	if err := u.recipeRepo.RemoveComment(ctx, recipeID, commentID); err != nil {
		u.logger.Errorf("failed to delete comment %s on recipe %s: %v", commentID, recipeID, err)
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// ToggleCommentLike flips the user's membership in one comment's like set.
func (u *EngagementUsecase) ToggleCommentLike(ctx context.Context, recipeID, commentID, userID string) (bool, int, error) {
	if _, err := u.findComment(ctx, recipeID, commentID); err != nil {
		return false, 0, err
	}
	added, err := u.recipeRepo.AddCommentLike(ctx, recipeID, commentID, userID)
	if err != nil {
		return false, 0, err
	}
	liked := true
	if !added {
		if _, err := u.recipeRepo.RemoveCommentLike(ctx, recipeID, commentID, userID); err != nil {
			return false, 0, err
		}
		liked = false
	}
	count, err := u.recipeRepo.CountCommentLikes(ctx, recipeID, commentID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (u *EngagementUsecase) findComment(ctx context.Context, recipeID, commentID string) (*entity.Comment, error) {
	recipe, err := u.recipeRepo.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	comment := recipe.CommentByID(commentID)
	if comment == nil {
		return nil, fmt.Errorf("comment %s: %w", commentID, entity.ErrNotFound)
	}
	return comment, nil
}
