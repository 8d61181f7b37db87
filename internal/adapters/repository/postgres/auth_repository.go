package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

// AuthRepository is the refresh-token ledger. Rows are never deleted here;
// tokens retire through revocation and expired rows stay inert.
type AuthRepository struct {
	db *sql.DB
}

func NewAuthRepository(db *sql.DB) ports.AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at, revoked)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, token.UserID, token.Token, token.ExpiresAt, token.Revoked).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateToken
		}
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *AuthRepository) GetRefreshToken(ctx context.Context, tokenString string) (*domain.RefreshToken, error) {
	// The join guarantees the owning user still exists.
	query := `
		SELECT rt.id, rt.user_id, rt.token, rt.expires_at, rt.revoked, rt.created_at
		FROM refresh_tokens rt
		JOIN users u ON u.id = rt.user_id
		WHERE rt.token = $1
	`
	token := &domain.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, tokenString).Scan(
		&token.ID,
		&token.UserID,
		&token.Token,
		&token.ExpiresAt,
		&token.Revoked,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return token, nil
}

func (r *AuthRepository) RevokeRefreshToken(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE refresh_tokens SET revoked = true WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RotateRefreshToken revokes the old row and inserts the new one in a single
// transaction. The SELECT ... FOR UPDATE serializes concurrent rotations of
// the same token on the row lock: the loser observes revoked = true after the
// winner commits and gets domain.ErrTokenRevoked, so one presented token can
// never mint two sessions.
func (r *AuthRepository) RotateRefreshToken(ctx context.Context, oldID uuid.UUID, newToken *domain.RefreshToken) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var revoked bool
	err = tx.QueryRowContext(ctx, `SELECT revoked FROM refresh_tokens WHERE id = $1 FOR UPDATE`, oldID).Scan(&revoked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrTokenRevoked
		}
		return fmt.Errorf("failed to lock refresh token: %w", err)
	}
	if revoked {
		return domain.ErrTokenRevoked
	}

	if _, err := tx.ExecContext(ctx, `UPDATE refresh_tokens SET revoked = true WHERE id = $1`, oldID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	insert := `
		INSERT INTO refresh_tokens (user_id, token, expires_at, revoked)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, insert, newToken.UserID, newToken.Token, newToken.ExpiresAt, newToken.Revoked).Scan(&newToken.ID, &newToken.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateToken
		}
		return fmt.Errorf("failed to store rotated refresh token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rotation: %w", err)
	}
	return nil
}
