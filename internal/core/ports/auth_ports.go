package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
)

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	// GetRefreshToken returns (nil, nil) when no row matches.
	GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	// RevokeRefreshToken is idempotent; revoking a revoked row is a no-op.
	RevokeRefreshToken(ctx context.Context, id uuid.UUID) error
	// RotateRefreshToken revokes the row identified by oldID and stores
	// newToken inside a single transaction. It returns domain.ErrTokenRevoked
	// when the old row was already revoked, so concurrent rotations of the
	// same token produce exactly one winner.
	RotateRefreshToken(ctx context.Context, oldID uuid.UUID, newToken *domain.RefreshToken) error
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (uuid.UUID, error)
	Login(ctx context.Context, email, password string) (*domain.AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify never errors on mismatch, it only returns false.
	Verify(plaintext, hash string) bool
}

type TokenCodec interface {
	Issue(subjectID uuid.UUID, purpose domain.TokenPurpose) (string, error)
	// Verify checks signature and expiry against the purpose's secret. It is
	// side-effect free and never consults the ledger.
	Verify(token string, purpose domain.TokenPurpose) (uuid.UUID, error)
}
