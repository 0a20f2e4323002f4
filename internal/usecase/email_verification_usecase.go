package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

var (
	// ErrAlreadyVerified is returned when a verified account requests a link.
	ErrAlreadyVerified = errors.New("email already verified")
	// ErrInvalidVerificationToken covers every unusable token case: unknown
	// verifier, revoked, expired or hash mismatch.
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
)

const (
	verifierBytes          = 16
	verificationTokenBytes = 32
)

// EmailVerificationUsecase issues and redeems one-time email verification
// links. Only a hash of the token is stored; the verifier is the lookup key.
type EmailVerificationUsecase struct {
	tokenRepo    contract.ITokenRepository
	userRepo     contract.IUserRepository
	hasher       contract.IHasher
	randomGen    contract.IRandomGenerator
	uuidGen      contract.IUUIDGenerator
	emailService contract.IEmailService
	config       usecasecontract.IConfigProvider
	logger       usecasecontract.IAppLogger
}

var _ IEmailVerificationUC = (*EmailVerificationUsecase)(nil)

// NewEmailVerificationUsecase creates a new EmailVerificationUsecase instance.
func NewEmailVerificationUsecase(
	tokenRepo contract.ITokenRepository,
	userRepo contract.IUserRepository,
	hasher contract.IHasher,
	randomGen contract.IRandomGenerator,
	uuidGen contract.IUUIDGenerator,
	emailService contract.IEmailService,
	config usecasecontract.IConfigProvider,
	logger usecasecontract.IAppLogger,
) *EmailVerificationUsecase {
	return &EmailVerificationUsecase{
		tokenRepo:    tokenRepo,
		userRepo:     userRepo,
		hasher:       hasher,
		randomGen:    randomGen,
		uuidGen:      uuidGen,
		emailService: emailService,
		config:       config,
		logger:       logger,
	}
}

// RequestVerificationEmail revokes any outstanding verification tokens for
// the user, mints a fresh one and mails the link.
func (u *EmailVerificationUsecase) RequestVerificationEmail(ctx context.Context, user *entity.User) error {
	if user.IsVerified {
		return ErrAlreadyVerified
	}
	if err := u.tokenRepo.RevokeAllTokensForUser(ctx, user.ID, entity.TokenTypeEmailVerification); err != nil {
		u.logger.Warnf("failed to revoke previous tokens for user %s: %v", user.ID, err)
	}

	verifier, err := u.randomGen.GenerateRandomToken(verifierBytes)
	if err != nil {
		return fmt.Errorf("failed to generate verifier: %w", err)
	}
	plainToken, err := u.randomGen.GenerateRandomToken(verificationTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	token := &entity.Token{
		ID:        u.uuidGen.NewUUID(),
		UserID:    user.ID,
		TokenType: entity.TokenTypeEmailVerification,
		TokenHash: u.hasher.HashString(plainToken),
		Verifier:  verifier,
		ExpiresAt: time.Now().UTC().Add(u.config.GetEmailVerificationTokenExpiry()),
	}
	if err := u.tokenRepo.CreateToken(ctx, token); err != nil {
		u.logger.Errorf("failed to store verification token for user %s: %v", user.ID, err)
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	link := fmt.Sprintf("%s/verify-email?verifier=%s&token=%s", u.config.GetAppBaseURL(), verifier, plainToken)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nWelcome to BiteBook! Confirm your email address by opening the link below:\r\n\r\n%s\r\n\r\nThe link expires in %s and can be used once.\r\n",
		user.Username, link, u.config.GetEmailVerificationTokenExpiry(),
	)
	if err := u.emailService.SendEmail(ctx, user.Email, "Verify your BiteBook email", body); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	u.logger.Infof("verification email sent to user %s", user.ID)
	return nil
}

// VerifyEmailToken redeems a verification link. On success the account is
// marked verified and the token revoked so it cannot be replayed.
func (u *EmailVerificationUsecase) VerifyEmailToken(ctx context.Context, verifier, plainToken string) (*entity.User, error) {
	if verifier == "" || plainToken == "" {
		return nil, ErrInvalidVerificationToken
	}
	token, err := u.tokenRepo.GetTokenByVerifier(ctx, verifier)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrInvalidVerificationToken
		}
		return nil, err
	}
	if token.TokenType != entity.TokenTypeEmailVerification || token.Revoke {
		return nil, ErrInvalidVerificationToken
	}
	if time.Now().UTC().After(token.ExpiresAt) {
		return nil, ErrInvalidVerificationToken
	}
	if !u.hasher.CheckHash(plainToken, token.TokenHash) {
		return nil, ErrInvalidVerificationToken
	}

	user, err := u.userRepo.GetUserByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	user.IsVerified = true
	updated, err := u.userRepo.UpdateUser(ctx, user)
	if err != nil {
		u.logger.Errorf("failed to mark user %s verified: %v", user.ID, err)
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}
	if err := u.tokenRepo.RevokeToken(ctx, token.ID); err != nil {
		u.logger.Warnf("failed to revoke verification token %s: %v", token.ID, err)
	}
	u.logger.Infof("user %s verified their email", user.ID)
	return updated, nil
}
