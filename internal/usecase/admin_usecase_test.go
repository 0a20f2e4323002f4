package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/usecase"
	"github.com/stretchr/testify/assert"
)

type adminFixture struct {
	uc      *usecase.AdminUsecase
	users   *fakeUserRepo
	recipes *fakeRecipeRepo
	tokens  *fakeTokenRepo
	admin   *entity.User
	target  *entity.User
	other   *entity.User
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	users := newFakeUserRepo()
	recipes := newFakeRecipeRepo(users)
	tokens := newFakeTokenRepo()

	admin := &entity.User{ID: "u-admin", Username: "root", Email: "root@example.com", Admin: true}
	target := &entity.User{ID: "u-target", Username: "alice", Email: "alice@example.com"}
	other := &entity.User{ID: "u-other", Username: "bob", Email: "bob@example.com"}
	for _, u := range []*entity.User{admin, target, other} {
		_ = users.CreateUser(context.Background(), u)
	}

	return &adminFixture{
		uc:      usecase.NewAdminUsecase(users, recipes, tokens, fakeValidator{}, fakeLogger{}),
		users:   users,
		recipes: recipes,
		tokens:  tokens,
		admin:   admin,
		target:  target,
		other:   other,
	}
}

func TestAdminUpdateUserSuspension(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	updated, err := fx.uc.UpdateUser(ctx, fx.target.ID, usecase.AdminUserUpdateInput{SuspendDays: 3})
	assert.NoError(t, err)
	assert.NotNil(t, updated.SuspendedUntil)
	assert.True(t, updated.SuspendedUntil.After(time.Now().Add(2*24*time.Hour)))
	assert.True(t, updated.IsSuspended(time.Now()))

	// Zero leaves the active suspension untouched.
	updated, err = fx.uc.UpdateUser(ctx, fx.target.ID, usecase.AdminUserUpdateInput{SuspendDays: 0})
	assert.NoError(t, err)
	assert.NotNil(t, updated.SuspendedUntil)

	// A negative value lifts it.
	updated, err = fx.uc.UpdateUser(ctx, fx.target.ID, usecase.AdminUserUpdateInput{SuspendDays: -1})
	assert.NoError(t, err)
	assert.Nil(t, updated.SuspendedUntil)
}

func TestAdminUpdateUserUniqueness(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	_, err := fx.uc.UpdateUser(ctx, fx.target.ID, usecase.AdminUserUpdateInput{Username: "Bob"})
	assert.ErrorIs(t, err, usecase.ErrUsernameTaken)

	_, err = fx.uc.UpdateUser(ctx, fx.target.ID, usecase.AdminUserUpdateInput{Email: "bob@example.com"})
	assert.ErrorIs(t, err, usecase.ErrEmailTaken)

	_, err = fx.uc.UpdateUser(ctx, fx.target.ID, usecase.AdminUserUpdateInput{Username: "ab"})
	assert.True(t, entity.IsValidation(err))

	updated, err := fx.uc.UpdateUser(ctx, fx.target.ID, usecase.AdminUserUpdateInput{Username: "Alicia", Email: "alicia@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "alicia", updated.Username)
	assert.Equal(t, "alicia@example.com", updated.Email)
}

func TestAdminUpdateUserAvatar(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	updated, err := fx.uc.UpdateUser(ctx, fx.target.ID, usecase.AdminUserUpdateInput{AvatarPath: "/images/7.png"})
	assert.NoError(t, err)
	assert.Equal(t, "/images/7.png", updated.AvatarURL)

	// RemoveAvatar wins over a simultaneous upload.
	updated, err = fx.uc.UpdateUser(ctx, fx.target.ID, usecase.AdminUserUpdateInput{RemoveAvatar: true, AvatarPath: "/images/8.png"})
	assert.NoError(t, err)
	assert.Equal(t, usecase.DefaultAvatarImage, updated.AvatarURL)
}

func TestAdminGetUserDetail(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	recipe := &entity.Recipe{ID: "r1", Name: "Chili", CreatorID: fx.target.ID, Public: true}
	_ = fx.recipes.CreateRecipe(ctx, recipe)
	_ = fx.recipes.AddComment(ctx, "r1", &entity.Comment{ID: "c1", UserID: fx.target.ID, Text: "my own note"})
	_ = fx.recipes.AddComment(ctx, "r1", &entity.Comment{ID: "c2", UserID: fx.other.ID, Text: "not hers"})

	user, recipes, comments, err := fx.uc.GetUserDetail(ctx, fx.target.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Len(t, recipes, 1)
	assert.Len(t, comments, 1)
	assert.Equal(t, "my own note", comments[0].Text)
	assert.Equal(t, "Chili", comments[0].RecipeName)
}

func TestAdminDeleteUserCascades(t *testing.T) {
	fx := newAdminFixture(t)
	ctx := context.Background()

	recipe := &entity.Recipe{ID: "r1", Name: "Chili", CreatorID: fx.target.ID, Public: true}
	_ = fx.recipes.CreateRecipe(ctx, recipe)
	_ = fx.users.AddSharedRecipe(ctx, fx.other.ID, "r1")
	_ = fx.tokens.CreateToken(ctx, &entity.Token{
		ID: "t1", UserID: fx.target.ID, TokenType: entity.TokenTypeEmailVerification,
	})

	assert.NoError(t, fx.uc.DeleteUser(ctx, fx.admin, fx.target.ID))

	_, err := fx.users.GetUserByID(ctx, fx.target.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = fx.recipes.GetRecipeByID(ctx, "r1")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Empty(t, fx.other.SharedRecipeIDs)
	assert.True(t, fx.tokens.tokens["t1"].Revoke)
}

func TestAdminDeleteUserSelf(t *testing.T) {
	fx := newAdminFixture(t)

	err := fx.uc.DeleteUser(context.Background(), fx.admin, fx.admin.ID)
	assert.ErrorIs(t, err, usecase.ErrSelfDelete)

	_, lookupErr := fx.users.GetUserByID(context.Background(), fx.admin.ID)
	assert.NoError(t, lookupErr)
}

func TestAdminDeleteUserUnknown(t *testing.T) {
	fx := newAdminFixture(t)

	err := fx.uc.DeleteUser(context.Background(), fx.admin, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
