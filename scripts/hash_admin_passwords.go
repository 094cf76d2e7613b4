package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/medireminder-api/auth"
	"github.com/linesmerrill/medireminder-api/config"
	"github.com/linesmerrill/medireminder-api/databases"
	"github.com/linesmerrill/medireminder-api/models"
)

// Rewrites every plaintext administrator password as a bcrypt hash, so PASSWORD_HASHING can be
// switched from plain to bcrypt on an existing table.
// Usage: go run scripts/hash_admin_passwords.go
func main() {
	conf, err := config.New()
	if err != nil {
		fmt.Printf("Error reading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	provider, err := databases.NewProvider(ctx, conf)
	if err != nil {
		fmt.Printf("Error opening the document store: %v\n", err)
		os.Exit(1)
	}
	defer provider.Close(ctx)

	table, err := databases.OpenTable[models.Admin](ctx, provider, conf.AdminsTable)
	if err != nil {
		fmt.Printf("Error opening %s: %v\n", conf.AdminsTable, err)
		os.Exit(1)
	}

	n, err := hashPasswords(ctx, table, auth.BcryptPasswords{Cost: bcrypt.DefaultCost})
	if err != nil {
		fmt.Printf("Error hashing passwords: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Hashed %d administrator passwords in %s\n", n, conf.AdminsTable)
}

// hashPasswords hashes every stored password that is not already a bcrypt hash
func hashPasswords(ctx context.Context, table databases.Table[models.Admin], passwords auth.Passwords) (int, error) {
	admins, err := table.Scan(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range admins {
		if a.Password == "" || auth.IsBcryptHash(a.Password) {
			continue
		}
		h, err := passwords.Hash(a.Password)
		if err != nil {
			return n, err
		}
		a.Password = h
		if err := table.Update(ctx, a.ID, a.Fields()); err != nil {
			return n, fmt.Errorf("admin %s: %w", a.ID, err)
		}
		n++
	}
	return n, nil
}
