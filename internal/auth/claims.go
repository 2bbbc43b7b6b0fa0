package auth

import "time"

// SessionClaims are the claims carried by a session token.
// The user id is the only application claim; the rest are PASETO standard claims.
type SessionClaims struct {
	UserID string `json:"user_id"`

	Issuer     string    `json:"iss"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}
