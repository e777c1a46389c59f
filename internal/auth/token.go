package auth

import (
	"sync"
	"time"

	"github.com/edukit-io/canvas/internal/constants"
)

// Token represents an OAuth2 access token as returned by the token endpoint.
type Token struct {
	AccessToken  string     `json:"access_token"`
	TokenType    string     `json:"token_type"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresIn    int64      `json:"expires_in,omitempty"`
	User         *TokenUser `json:"user,omitempty"`
	ExpiresAt    time.Time  `json:"-"`
}

// TokenUser identifies the user the token was issued for.
type TokenUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Valid reports whether the token can still be used. A token expiring within
// the expiration buffer is treated as invalid so callers refresh early.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		// Manually issued access tokens carry no expiry
		return true
	}

	return time.Now().Add(constants.TokenExpirationBuffer).Before(t.ExpiresAt)
}

// TokenStore provides thread-safe storage for a single token.
type TokenStore struct {
	mutex sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil if none is set.
func (s *TokenStore) Get() *Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// Set stores a token.
func (s *TokenStore) Set(token *Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = nil
}
