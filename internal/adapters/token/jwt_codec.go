// Package token signs and verifies the bearer tokens used by the auth flow.
// Access and refresh tokens are HS256 JWTs signed with separate secrets.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/liftdiary/api/internal/core/domain"
	"github.com/liftdiary/api/internal/core/ports"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrUnknownPurpose  = errors.New("unknown token purpose")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidSubject  = errors.New("invalid token subject")
	ErrSecretsRequired = errors.New("access and refresh secrets must be set and differ")
)

// Config carries the signing secrets, injected explicitly so the codec never
// reads process-wide state.
type Config struct {
	AccessSecret  string
	RefreshSecret string
}

type JWTCodec struct {
	accessSecret  []byte
	refreshSecret []byte
}

// NewJWTCodec builds a codec from cfg. Using the same secret for both
// purposes would collapse the two token classes into one, so it is rejected.
func NewJWTCodec(cfg Config) (*JWTCodec, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" || cfg.AccessSecret == cfg.RefreshSecret {
		return nil, ErrSecretsRequired
	}
	return &JWTCodec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
	}, nil
}

var _ ports.TokenCodec = (*JWTCodec)(nil)

func (c *JWTCodec) Issue(subjectID uuid.UUID, purpose domain.TokenPurpose) (string, error) {
	secret, ttl, err := c.purposeParams(purpose)
	if err != nil {
		return "", err
	}

	// iat has second resolution; jti keeps two tokens issued for the same
	// subject in the same second from colliding in the refresh token ledger.
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subjectID.String(),
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry against the purpose's secret and returns
// the subject id. It never consults storage, so ledger revocation does not
// affect it; an access token stays verifiable until its own expiry.
func (c *JWTCodec) Verify(tokenString string, purpose domain.TokenPurpose) (uuid.UUID, error) {
	secret, _, err := c.purposeParams(purpose)
	if err != nil {
		return uuid.Nil, err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidSubject
	}
	subjectID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, ErrInvalidSubject
	}
	return subjectID, nil
}

func (c *JWTCodec) purposeParams(purpose domain.TokenPurpose) ([]byte, time.Duration, error) {
	switch purpose {
	case domain.PurposeAccess:
		return c.accessSecret, AccessTokenTTL, nil
	case domain.PurposeRefresh:
		return c.refreshSecret, RefreshTokenTTL, nil
	default:
		return nil, 0, ErrUnknownPurpose
	}
}
