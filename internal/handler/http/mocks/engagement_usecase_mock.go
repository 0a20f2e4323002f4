package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/usecase"
)

// MockEngagementUsecase is a hand-written mock for IEngagementUseCase.
type MockEngagementUsecase struct {
	ShouldFailToggleLike bool
	ShouldFailComment    bool
	NotCommentAuthor     bool

	MockLiked     bool
	MockLikeCount int
	MockComment   entity.Comment
}

var _ usecase.IEngagementUseCase = (*MockEngagementUsecase)(nil)

func NewMockEngagementUsecase() *MockEngagementUsecase {
	return &MockEngagementUsecase{
		MockLiked:     true,
		MockLikeCount: 3,
		MockComment: entity.Comment{
			ID:        "comment-1",
			UserID:    "user-1",
			Username:  "alice",
			Text:      "tasty!",
			Likes:     []string{},
			CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func (m *MockEngagementUsecase) ToggleRecipeLike(ctx context.Context, recipeID, userID string) (bool, int, error) {
	if m.ShouldFailToggleLike {
		return false, 0, fmt.Errorf("recipe: %w", entity.ErrNotFound)
	}
	return m.MockLiked, m.MockLikeCount, nil
}

func (m *MockEngagementUsecase) AddComment(ctx context.Context, recipeID string, author *entity.User, text string) (*entity.Comment, error) {
	if m.ShouldFailComment {
		return nil, entity.NewValidationError("comment text is required")
	}
	return &m.MockComment, nil
}

func (m *MockEngagementUsecase) EditComment(ctx context.Context, recipeID, commentID string, actor *entity.User, text string) (*entity.Comment, error) {
	if m.NotCommentAuthor {
		return nil, entity.ErrUnauthorized
	}
	if m.ShouldFailComment {
		return nil, entity.NewValidationError("comment text is required")
	}
	return &m.MockComment, nil
}

func (m *MockEngagementUsecase) DeleteComment(ctx context.Context, recipeID, commentID string, actor *entity.User) error {
	if m.NotCommentAuthor {
		return entity.ErrUnauthorized
	}
	return nil
}

func (m *MockEngagementUsecase) ToggleCommentLike(ctx context.Context, recipeID, commentID, userID string) (bool, int, error) {
	if m.ShouldFailToggleLike {
		return false, 0, fmt.Errorf("comment: %w", entity.ErrNotFound)
	}
	return m.MockLiked, m.MockLikeCount, nil
}
