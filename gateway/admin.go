package gateway

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/linesmerrill/medireminder-api/auth"
	"github.com/linesmerrill/medireminder-api/databases"
	"github.com/linesmerrill/medireminder-api/models"
)

// Messages returned by Authenticate
const (
	MsgCredentialsRequired = "Error: Both email and password are required."
	MsgInvalidCredentials  = "Error: Invalid email or password."
	MsgAuthFailed          = "Error authenticating admin"
)

// Admins serves administrator records and checks their credentials
type Admins struct {
	*Gateway[models.Admin, *models.Admin]
	Passwords auth.Passwords
}

// NewAdmins returns the administrator gateway. Passwords are stored in the form produced by
// passwords.Hash.
func NewAdmins(table databases.Table[models.Admin], passwords auth.Passwords) *Admins {
	g := New[models.Admin](Schema{Entity: "admin"}, table)
	g.BeforeWrite = func(a *models.Admin) error {
		h, err := passwords.Hash(a.Password)
		if err != nil {
			return err
		}
		a.Password = h
		return nil
	}
	return &Admins{Gateway: g, Passwords: passwords}
}

// Authenticate returns the administrator whose email and password match body
func (a *Admins) Authenticate(ctx context.Context, body []byte) (*models.Admin, error) {
	zap.S().Infow("authenticate", "entity", a.Schema.Entity)
	if isEmpty(body) {
		return nil, &models.ValidationError{Message: MsgEmptyBody}
	}
	var creds models.Credentials
	if err := json.Unmarshal(body, &creds); err != nil || creds.Email == "" || creds.Password == "" {
		return nil, &models.ValidationError{Message: MsgCredentialsRequired}
	}

	matches, err := a.FindBy(ctx, "email", creds.Email)
	if err != nil {
		return nil, a.storageError(MsgAuthFailed, err)
	}
	if len(matches) == 0 {
		return nil, &models.AuthError{Message: MsgInvalidCredentials}
	}
	admin := matches[0]
	if !a.Passwords.Matches(admin.Password, creds.Password) {
		return nil, &models.AuthError{Message: MsgInvalidCredentials}
	}
	return &admin, nil
}
