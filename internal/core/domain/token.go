package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenPurpose selects which signing secret and lifetime a token gets.
// Access and refresh tokens are signed with distinct secrets so that leaking
// one class does not forge the other.
type TokenPurpose string

const (
	PurposeAccess  TokenPurpose = "access"
	PurposeRefresh TokenPurpose = "refresh"
)

// RefreshToken is one row of the refresh-token ledger. The token string never
// changes after creation and Revoked only ever goes false -> true.
type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// Usable reports whether the token may still be presented for a refresh.
func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.Revoked && !now.After(t.ExpiresAt)
}

// AuthTokens is what a successful login or refresh hands back to the client.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}
