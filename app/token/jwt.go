package token

import (
	"time"

	"auth-client/app/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds identity token generation configuration.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// identityClaims represents the JWT claims authenticating an identity
// against the backend account service.
type identityClaims struct {
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// Minter issues identity tokens for backend account calls. Tokens are
// short-lived and minted fresh per call; nothing is cached.
type Minter struct {
	cfg Config
}

// NewMinter creates a new identity token minter.
func NewMinter(cfg Config) *Minter {
	return &Minter{cfg: cfg}
}

// Mint generates a signed identity token for the given identity.
func (m *Minter) Mint(identity *domain.Identity) (string, error) {
	now := time.Now()
	claims := identityClaims{
		Email:         identity.Email,
		Name:          identity.DisplayName,
		EmailVerified: identity.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Audience:  jwt.ClaimStrings{m.cfg.Audience},
			Subject:   identity.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(m.cfg.Secret))
}
