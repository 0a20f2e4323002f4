package mocks

import (
	"context"
	"fmt"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/usecase"
)

// MockVerificationUsecase is a hand-written mock for IEmailVerificationUC.
type MockVerificationUsecase struct {
	ShouldFailRequest bool
	AlreadyVerified   bool
	ShouldFailVerify  bool

	MockUser entity.User
}

var _ usecase.IEmailVerificationUC = (*MockVerificationUsecase)(nil)

func NewMockVerificationUsecase() *MockVerificationUsecase {
	return &MockVerificationUsecase{
		MockUser: entity.User{
			ID:         "user-1",
			Username:   "alice",
			Email:      "alice@example.com",
			IsVerified: true,
		},
	}
}

func (m *MockVerificationUsecase) RequestVerificationEmail(ctx context.Context, user *entity.User) error {
	if m.AlreadyVerified {
		return usecase.ErrAlreadyVerified
	}
	if m.ShouldFailRequest {
		return fmt.Errorf("smtp unreachable")
	}
	return nil
}

func (m *MockVerificationUsecase) VerifyEmailToken(ctx context.Context, verifier, plainToken string) (*entity.User, error) {
	if m.ShouldFailVerify {
		return nil, usecase.ErrInvalidVerificationToken
	}
	return &m.MockUser, nil
}
