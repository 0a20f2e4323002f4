package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/usecase"
	"github.com/stretchr/testify/assert"
)

type userFixture struct {
	uc     *usecase.UserUsecase
	users  *fakeUserRepo
	tokens *fakeTokenRepo
	mail   *fakeMailService
}

func newUserFixture(t *testing.T, sendActivationEmail bool) *userFixture {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	mail := &fakeMailService{}
	cfg := fakeConfig{sendActivationEmail: sendActivationEmail}

	verificationUC := usecase.NewEmailVerificationUsecase(
		tokens, users, fakeHasher{}, &fakeRandomGen{}, &fakeUUIDGen{}, mail, cfg, fakeLogger{},
	)
	uc := usecase.NewUserUsecase(
		users, fakeHasher{}, &fakeUUIDGen{}, fakeJWT{}, fakeValidator{}, cfg, fakeLogger{}, verificationUC,
	)
	return &userFixture{uc: uc, users: users, tokens: tokens, mail: mail}
}

func TestRegisterLowercasesAndHashes(t *testing.T) {
	fx := newUserFixture(t, false)

	user, err := fx.uc.Register(context.Background(), " Alice ", "ALICE@Example.Com", "Password1", "Password1")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "Password1", user.PasswordHash)
	assert.Equal(t, usecase.DefaultAvatarImage, user.AvatarURL)
	// Activation mail disabled, so the account is live immediately.
	assert.True(t, user.IsVerified)
	assert.Empty(t, fx.mail.sent)
}

func TestRegisterSendsVerificationWhenEnabled(t *testing.T) {
	fx := newUserFixture(t, true)

	user, err := fx.uc.Register(context.Background(), "alice", "alice@example.com", "Password1", "Password1")
	assert.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Len(t, fx.mail.sent, 1)
	assert.Contains(t, fx.mail.sent[0], "/verify-email?verifier=")
}

func TestRegisterValidation(t *testing.T) {
	fx := newUserFixture(t, false)
	ctx := context.Background()

	_, err := fx.uc.Register(ctx, "ab", "alice@example.com", "Password1", "Password1")
	assert.True(t, entity.IsValidation(err))

	_, err = fx.uc.Register(ctx, strings.Repeat("a", 31), "alice@example.com", "Password1", "Password1")
	assert.True(t, entity.IsValidation(err))

	_, err = fx.uc.Register(ctx, "alice", "not-an-email", "Password1", "Password1")
	assert.True(t, entity.IsValidation(err))

	_, err = fx.uc.Register(ctx, "alice", "alice@example.com", "short", "short")
	assert.True(t, entity.IsValidation(err))

	_, err = fx.uc.Register(ctx, "alice", "alice@example.com", "Password1", "Password2")
	assert.True(t, entity.IsValidation(err))
}

func TestRegisterUniqueness(t *testing.T) {
	fx := newUserFixture(t, false)
	ctx := context.Background()

	_, err := fx.uc.Register(ctx, "alice", "alice@example.com", "Password1", "Password1")
	assert.NoError(t, err)

	// Uniqueness is case-insensitive because input is lower-cased first.
	_, err = fx.uc.Register(ctx, "ALICE", "other@example.com", "Password1", "Password1")
	assert.ErrorIs(t, err, usecase.ErrUsernameTaken)

	_, err = fx.uc.Register(ctx, "bob", "Alice@Example.com", "Password1", "Password1")
	assert.ErrorIs(t, err, usecase.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	fx := newUserFixture(t, false)
	ctx := context.Background()

	registered, err := fx.uc.Register(ctx, "alice", "alice@example.com", "Password1", "Password1")
	assert.NoError(t, err)

	user, token, err := fx.uc.Login(ctx, "Alice", "Password1")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = fx.uc.Login(ctx, "alice", "WrongPassword1")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	_, _, err = fx.uc.Login(ctx, "nobody", "Password1")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestLoginUnverifiedSucceeds(t *testing.T) {
	fx := newUserFixture(t, true)
	ctx := context.Background()

	_, err := fx.uc.Register(ctx, "alice", "alice@example.com", "Password1", "Password1")
	assert.NoError(t, err)

	user, token, err := fx.uc.Login(ctx, "alice", "Password1")
	assert.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, token)
}

func TestLoginSuspended(t *testing.T) {
	fx := newUserFixture(t, false)
	ctx := context.Background()

	user, err := fx.uc.Register(ctx, "alice", "alice@example.com", "Password1", "Password1")
	assert.NoError(t, err)

	until := time.Now().Add(48 * time.Hour)
	user.SuspendedUntil = &until
	_, _, err = fx.uc.Login(ctx, "alice", "Password1")
	assert.ErrorIs(t, err, usecase.ErrAccountSuspended)

	// An elapsed suspension no longer blocks login.
	past := time.Now().Add(-time.Hour)
	user.SuspendedUntil = &past
	_, _, err = fx.uc.Login(ctx, "alice", "Password1")
	assert.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	fx := newUserFixture(t, false)
	ctx := context.Background()

	registered, err := fx.uc.Register(ctx, "alice", "alice@example.com", "Password1", "Password1")
	assert.NoError(t, err)
	_, token, err := fx.uc.Login(ctx, "alice", "Password1")
	assert.NoError(t, err)

	user, err := fx.uc.Authenticate(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = fx.uc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestUpdateProfilePasswordRequiresCurrent(t *testing.T) {
	fx := newUserFixture(t, false)
	ctx := context.Background()

	user, err := fx.uc.Register(ctx, "alice", "alice@example.com", "Password1", "Password1")
	assert.NoError(t, err)

	_, err = fx.uc.UpdateProfile(ctx, user.ID, usecase.ProfileUpdateInput{
		CurrentPassword: "WrongPassword1",
		NewPassword:     "NewPassword1",
	})
	assert.True(t, entity.IsValidation(err))

	_, err = fx.uc.UpdateProfile(ctx, user.ID, usecase.ProfileUpdateInput{
		CurrentPassword: "Password1",
		NewPassword:     "NewPassword1",
	})
	assert.NoError(t, err)

	_, _, err = fx.uc.Login(ctx, "alice", "NewPassword1")
	assert.NoError(t, err)
}

func TestUpdateProfileEmailChangeResetsVerification(t *testing.T) {
	fx := newUserFixture(t, true)
	ctx := context.Background()

	user, err := fx.uc.Register(ctx, "alice", "alice@example.com", "Password1", "Password1")
	assert.NoError(t, err)
	user.IsVerified = true
	fx.mail.sent = nil

	updated, err := fx.uc.UpdateProfile(ctx, user.ID, usecase.ProfileUpdateInput{Email: "New@Example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.False(t, updated.IsVerified)
	assert.Len(t, fx.mail.sent, 1)
}

func TestUpdateProfileBioAndAvatar(t *testing.T) {
	fx := newUserFixture(t, false)
	ctx := context.Background()

	user, err := fx.uc.Register(ctx, "alice", "alice@example.com", "Password1", "Password1")
	assert.NoError(t, err)

	updated, err := fx.uc.UpdateProfile(ctx, user.ID, usecase.ProfileUpdateInput{
		AvatarPath: "/images/42.png",
		Bio:        "  I cook things.  ",
	})
	assert.NoError(t, err)
	assert.Equal(t, "/images/42.png", updated.AvatarURL)
	assert.Equal(t, "I cook things.", updated.Bio)
}
