package mocks

import (
	"context"
	"fmt"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/usecase"
)

// MockUserUsecase is a hand-written mock for IUserUseCase. Flip the
// ShouldFail switches to drive the error paths.
type MockUserUsecase struct {
	ShouldFailRegister      bool
	ShouldFailLogin         bool
	LoginSuspended          bool
	ShouldFailAuthenticate  bool
	ShouldFailGetUser       bool
	ShouldFailUpdateProfile bool

	MockUser  entity.User
	MockToken string
}

var _ usecase.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:         "user-1",
			Username:   "alice",
			Email:      "alice@example.com",
			IsVerified: true,
			AvatarURL:  "/images/default.png",
		},
		MockToken: "session-token",
	}
}

func (m *MockUserUsecase) Register(ctx context.Context, username, email, password, passwordConfirm string) (*entity.User, error) {
	if m.ShouldFailRegister {
		return nil, entity.NewValidationError("username must be between 3 and 30 characters")
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	if m.LoginSuspended {
		return nil, "", usecase.ErrAccountSuspended
	}
	if m.ShouldFailLogin {
		return nil, "", usecase.ErrInvalidCredentials
	}
	return &m.MockUser, m.MockToken, nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, sessionToken string) (*entity.User, error) {
	if m.ShouldFailAuthenticate {
		return nil, entity.ErrUnauthenticated
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	if m.ShouldFailGetUser {
		return nil, fmt.Errorf("user: %w", entity.ErrNotFound)
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID string, in usecase.ProfileUpdateInput) (*entity.User, error) {
	if m.ShouldFailUpdateProfile {
		return nil, entity.NewValidationError("current password is incorrect")
	}
	return &m.MockUser, nil
}
