package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/medireminder-api/config"
)

// Passwords turns a supplied password into its stored form and checks a supplied password
// against a stored one
type Passwords interface {
	Hash(plain string) (string, error)
	Matches(stored, supplied string) bool
}

// NewPasswords returns the strategy named by mode
func NewPasswords(mode string) (Passwords, error) {
	switch mode {
	case config.PasswordsPlain, "":
		return PlainPasswords{}, nil
	case config.PasswordsBcrypt:
		return BcryptPasswords{Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("unknown password hashing mode %q", mode)
}

// PlainPasswords stores passwords verbatim and compares them for exact equality
type PlainPasswords struct{}

// Hash returns plain unchanged
func (PlainPasswords) Hash(plain string) (string, error) {
	return plain, nil
}

// Matches reports whether supplied equals stored
func (PlainPasswords) Matches(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptPasswords stores salted bcrypt hashes
type BcryptPasswords struct {
	Cost int
}

// Hash returns the bcrypt hash of plain. An empty password or an existing bcrypt hash is
// returned unchanged, so writing back a record read from the store keeps its password.
func (b BcryptPasswords) Hash(plain string) (string, error) {
	if plain == "" || IsBcryptHash(plain) {
		return plain, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Matches reports whether supplied hashes to stored
func (BcryptPasswords) Matches(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// IsBcryptHash reports whether s is a well-formed bcrypt hash
func IsBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
