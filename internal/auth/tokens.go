package auth

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/secondbrain/brain-server/internal/id"
)

const (
	tokenIssuer   = "brain-server"
	tokenAudience = "brain-client"
	keyHexSize    = 64
)

// ErrInvalidToken is returned for any token that fails decryption or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenExpired is returned for an otherwise valid token past its expiry.
// It wraps ErrInvalidToken.
var ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)

// TokenService issues and verifies PASETO v4.local session tokens.
// Tokens are not refreshed, rotated, or revoked; they simply expire.
type TokenService struct {
	symmetricKey paseto.V4SymmetricKey
	duration     time.Duration
	now          func() time.Time
}

// NewTokenService creates a token service from a hex encoded 32 byte key.
func NewTokenService(keyHex string, duration time.Duration) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d hex characters, got %d", keyHexSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for PASETO key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey: key,
		duration:     duration,
		now:          time.Now,
	}, nil
}

// Generate creates an encrypted token bound to userID.
func (s *TokenService) Generate(userID string) (string, error) {
	now := s.now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.duration))

	tokenID, err := id.Generate("token")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	//nolint:errcheck // Set only fails for values that cannot be JSON encoded
	_ = token.Set("user_id", userID)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// Verify decrypts tokenString and checks issuer, audience and validity window.
// Expiry is checked separately so callers can tell ErrTokenExpired apart.
func (s *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	now := s.now()

	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims SessionClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}
	if now.Before(claims.NotBefore) {
		return nil, fmt.Errorf("%w: not yet valid", ErrInvalidToken)
	}
	if !now.Before(claims.Expiration) {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}

// Duration returns the configured token lifetime.
func (s *TokenService) Duration() time.Duration {
	return s.duration
}
