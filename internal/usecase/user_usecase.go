package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

// DefaultAvatarImage is used for accounts without an uploaded avatar.
const DefaultAvatarImage = "/images/default.png"

var (
	// ErrInvalidCredentials is returned on a failed login. It deliberately
	// does not distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountSuspended blocks login while a suspension is active.
	ErrAccountSuspended = errors.New("account suspended")
	// ErrUsernameTaken and ErrEmailTaken report uniqueness conflicts.
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

// UserUsecase implements IUserUseCase.
type UserUsecase struct {
	userRepo       contract.IUserRepository
	hasher         contract.IHasher
	uuidGen        contract.IUUIDGenerator
	jwtService     JWTService
	validator      usecasecontract.IValidator
	config         usecasecontract.IConfigProvider
	logger         usecasecontract.IAppLogger
	verificationUC IEmailVerificationUC
}

var _ IUserUseCase = (*UserUsecase)(nil)

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	hasher contract.IHasher,
	uuidGen contract.IUUIDGenerator,
	jwtService JWTService,
	validator usecasecontract.IValidator,
	config usecasecontract.IConfigProvider,
	logger usecasecontract.IAppLogger,
	verificationUC IEmailVerificationUC,
) *UserUsecase {
	return &UserUsecase{
		userRepo:       userRepo,
		hasher:         hasher,
		uuidGen:        uuidGen,
		jwtService:     jwtService,
		validator:      validator,
		config:         config,
		logger:         logger,
		verificationUC: verificationUC,
	}
}

// Register creates an unverified account and, when activation mail is
// enabled, sends the verification link. Usernames and emails are stored
// lower-cased so uniqueness is case-insensitive.
func (u *UserUsecase) Register(ctx context.Context, username, email, password, passwordConfirm string) (*entity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	var fields []string
	if len(username) < 3 || len(username) > 30 {
		fields = append(fields, "username must be between 3 and 30 characters")
	}
	if err := u.validator.ValidateEmail(email); err != nil {
		fields = append(fields, err.Error())
	}
	if err := u.validator.ValidatePasswordStrength(password); err != nil {
		fields = append(fields, err.Error())
	}
	if password != passwordConfirm {
		fields = append(fields, "passwords do not match")
	}
	if len(fields) > 0 {
		return nil, entity.NewValidationError(fields...)
	}

	if err := u.checkUsernameFree(ctx, username); err != nil {
		return nil, err
	}
	if err := u.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := u.hasher.HashPassword(password)
	if err != nil {
		u.logger.Errorf("failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:              u.uuidGen.NewUUID(),
		Username:        username,
		Email:           email,
		PasswordHash:    hash,
		AvatarURL:       DefaultAvatarImage,
		IsVerified:      !u.config.GetSendActivationEmail(),
		SharedRecipeIDs: []string{},
	}
	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		u.logger.Errorf("failed to create user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if u.config.GetSendActivationEmail() {
		if err := u.verificationUC.RequestVerificationEmail(ctx, user); err != nil {
			// The account exists; the user can request a resend.
			u.logger.Errorf("failed to send verification email to %s: %v", email, err)
		}
	}
	return user, nil
}

func (u *UserUsecase) checkUsernameFree(ctx context.Context, username string) error {
	_, err := u.userRepo.GetUserByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return err
	}
	return nil
}

func (u *UserUsecase) checkEmailFree(ctx context.Context, email string) error {
	_, err := u.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return err
	}
	return nil
}

// Login verifies the credentials and returns the user with a signed session
// token. Suspended accounts cannot log in.
func (u *UserUsecase) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	user, err := u.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := u.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	// Unverified users may log in; page middleware routes them to the
	// verification screen until they confirm.
	if user.IsSuspended(timeNow()) {
		return nil, "", ErrAccountSuspended
	}
	token, err := u.jwtService.GenerateSessionToken(user.ID, user.Admin)
	if err != nil {
		u.logger.Errorf("failed to sign session token for %s: %v", user.ID, err)
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return user, token, nil
}

// Authenticate resolves a session token to its user. Any parse or lookup
// failure is reported as an authentication failure.
func (u *UserUsecase) Authenticate(ctx context.Context, sessionToken string) (*entity.User, error) {
	claims, err := u.jwtService.ParseSessionToken(sessionToken)
	if err != nil {
		return nil, entity.ErrUnauthenticated
	}
	user, err := u.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (u *UserUsecase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return u.userRepo.GetUserByID(ctx, id)
}

// UpdateProfile applies the user's own profile edit. A password change
// requires the current password; an email change resets verification and
// re-sends the link when activation mail is enabled.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID string, in ProfileUpdateInput) (*entity.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.NewPassword != "" {
		if err := u.hasher.ComparePasswordHash(in.CurrentPassword, user.PasswordHash); err != nil {
			return nil, entity.NewValidationError("current password is incorrect")
		}
		if err := u.validator.ValidatePasswordStrength(in.NewPassword); err != nil {
			return nil, entity.NewValidationError(err.Error())
		}
		hash, err := u.hasher.HashPassword(in.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	emailChanged := false
	if in.Email != "" {
		email := strings.ToLower(strings.TrimSpace(in.Email))
		if email != user.Email {
			if err := u.validator.ValidateEmail(email); err != nil {
				return nil, entity.NewValidationError(err.Error())
			}
			if err := u.checkEmailFree(ctx, email); err != nil {
				return nil, err
			}
			user.Email = email
			emailChanged = true
		}
	}
	if in.AvatarPath != "" {
		user.AvatarURL = in.AvatarPath
	}
	if in.Bio != "" {
		user.Bio = strings.TrimSpace(in.Bio)
	}
	if emailChanged && u.config.GetSendActivationEmail() {
		user.IsVerified = false
	}

	updated, err := u.userRepo.UpdateUser(ctx, user)
	if err != nil {
		u.logger.Errorf("failed to update user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if emailChanged && u.config.GetSendActivationEmail() {
		if err := u.verificationUC.RequestVerificationEmail(ctx, updated); err != nil {
			u.logger.Errorf("failed to send verification email to %s: %v", updated.Email, err)
		}
	}
	return updated, nil
}
