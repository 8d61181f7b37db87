package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 6

type AuthService struct {
	userRepo ports.UserRepository
	authRepo ports.AuthRepository
	hasher   ports.PasswordHasher
	codec    ports.TokenCodec
}

func NewAuthService(userRepo ports.UserRepository, authRepo ports.AuthRepository, hasher ports.PasswordHasher, codec ports.TokenCodec) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		authRepo: authRepo,
		hasher:   hasher,
		codec:    codec,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	if !emailPattern.MatchString(email) {
		return uuid.Nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return uuid.Nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing != nil {
		return uuid.Nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index catches a register race on the same email.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return uuid.Nil, domain.ErrDuplicateEmail
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user.ID, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthTokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// Unknown email and wrong password produce the same error so callers
	// cannot enumerate accounts.
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         &domain.User{ID: user.ID, Email: user.Email},
	}, nil
}

// Refresh validates the presented refresh token against the ledger and the
// codec, then rotates it: the old row is revoked and a new row stored as one
// atomic unit. Every rejection surfaces as domain.ErrTokenInvalid regardless
// of whether the token was unknown, expired, revoked or lost a rotation race.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	stored, err := s.authRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if stored == nil || !stored.Usable(time.Now()) {
		return nil, domain.ErrTokenInvalid
	}

	if _, err := s.codec.Verify(refreshToken, domain.PurposeRefresh); err != nil {
		return nil, domain.ErrTokenInvalid
	}

	newAccess, err := s.codec.Issue(stored.UserID, domain.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	newRefresh, err := s.codec.Issue(stored.UserID, domain.PurposeRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	newRow := &domain.RefreshToken{
		UserID:    stored.UserID,
		Token:     newRefresh,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour), // 7 days
	}
	if err := s.authRepo.RotateRefreshToken(ctx, stored.ID, newRow); err != nil {
		if errors.Is(err, domain.ErrTokenRevoked) {
			// A concurrent refresh won the race on this token.
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return &domain.AuthTokens{
		AccessToken:  newAccess,
		RefreshToken: newRefresh,
	}, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, userID uuid.UUID) (string, string, error) {
	accessToken, err := s.codec.Issue(userID, domain.PurposeAccess)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.codec.Issue(userID, domain.PurposeRefresh)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	rtEntity := &domain.RefreshToken{
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour), // 7 days
	}
	if err := s.authRepo.StoreRefreshToken(ctx, rtEntity); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}
