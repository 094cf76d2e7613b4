package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/linesmerrill/medireminder-api/models"
)

// Tokens issues HS256 access tokens for authenticated administrators
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns nil when secret is empty, which disables token issuing
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if secret == "" {
		return nil
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for admin
func (t *Tokens) Issue(admin models.Admin) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"sub":   admin.ID,
		"email": admin.Email,
		"scope": "admin",
		"typ":   "access",
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// parse checks the signature and expiry of a token and returns its claims
func (t *Tokens) parse(signed string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(signed, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
