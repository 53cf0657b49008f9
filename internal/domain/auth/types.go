package auth

import "time"

// Config drives access-token verification. JWTSecret selects HS256 verification;
// otherwise JWKSURL is used to verify asymmetric tokens.
type Config struct {
	JWTSecret string
	JWKSURL   string
	Issuer    string
	Audience  string
}

// Claims are extracted from a verified access token.
type Claims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}
