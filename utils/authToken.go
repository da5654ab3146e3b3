package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"

	"github.com/Maheshkadam-Delxn/eye/models"
)

// TokenExpiry is the absolute session lifetime.
const TokenExpiry = 7 * 24 * time.Hour

// SymmetricKeySize is the key length paseto v2 local requires.
const SymmetricKeySize = 32

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, expired. Callers treat it as a normal outcome.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the data carried in a session token.
type TokenClaims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	Name   string      `json:"name"`
	Expiry time.Time   `json:"expiry"`
}

// TokenMaker issues and verifies session tokens. The key is loaded once at
// startup and never read from the environment mid-request.
type TokenMaker struct {
	key []byte
}

// NewTokenMaker builds a TokenMaker from a 32-byte symmetric key.
func NewTokenMaker(key []byte) (*TokenMaker, error) {
	if len(key) != SymmetricKeySize {
		return nil, fmt.Errorf("symmetric key must be %d bytes long, got %d", SymmetricKeySize, len(key))
	}
	return &TokenMaker{key: key}, nil
}

// Issue encrypts the user's identity into a token valid for TokenExpiry.
func (m *TokenMaker) Issue(user *models.User) (string, error) {
	claims := TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
		Expiry: time.Now().Add(TokenExpiry),
	}
	token, err := paseto.NewV2().Encrypt(m.key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Verify decrypts the token and checks its expiry. It never panics or
// distinguishes failure modes: any problem yields ErrInvalidToken.
func (m *TokenMaker) Verify(token string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(token, m.key, &claims, nil); err != nil {
		return nil, ErrInvalidToken
	}
	if time.Now().After(claims.Expiry) {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
