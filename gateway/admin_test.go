package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/medireminder-api/auth"
	"github.com/linesmerrill/medireminder-api/models"
)

const adminBody = `{"first_name":"A","last_name":"B","email":"a@b.com","password":"x"}`

func TestAdminsCreateExample(t *testing.T) {
	table := newFakeTable[models.Admin]()
	admins := NewAdmins(table, auth.PlainPasswords{})

	admin, err := admins.Create(context.Background(), []byte(adminBody))
	require.NoError(t, err)
	assert.NotEmpty(t, admin.ID)
	assert.Equal(t, models.Admin{ID: admin.ID, FirstName: "A", LastName: "B", Email: "a@b.com", Password: "x"}, *admin)
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name        string
		passwords   auth.Passwords
		body        string
		expectedErr error
	}{
		{name: "empty body", passwords: auth.PlainPasswords{}, body: "", expectedErr: &models.ValidationError{Message: MsgEmptyBody}},
		{name: "missing password", passwords: auth.PlainPasswords{}, body: `{"email":"a@b.com"}`, expectedErr: &models.ValidationError{Message: MsgCredentialsRequired}},
		{name: "missing email", passwords: auth.PlainPasswords{}, body: `{"password":"x"}`, expectedErr: &models.ValidationError{Message: MsgCredentialsRequired}},
		{name: "malformed", passwords: auth.PlainPasswords{}, body: `{`, expectedErr: &models.ValidationError{Message: MsgCredentialsRequired}},
		{name: "unknown email", passwords: auth.PlainPasswords{}, body: `{"email":"z@b.com","password":"x"}`, expectedErr: &models.AuthError{Message: MsgInvalidCredentials}},
		{name: "wrong password", passwords: auth.PlainPasswords{}, body: `{"email":"a@b.com","password":"y"}`, expectedErr: &models.AuthError{Message: MsgInvalidCredentials}},
		{name: "correct plain", passwords: auth.PlainPasswords{}, body: `{"email":"a@b.com","password":"x"}`},
		{name: "correct bcrypt", passwords: auth.BcryptPasswords{Cost: bcrypt.MinCost}, body: `{"email":"a@b.com","password":"x"}`},
		{name: "wrong bcrypt", passwords: auth.BcryptPasswords{Cost: bcrypt.MinCost}, body: `{"email":"a@b.com","password":"y"}`, expectedErr: &models.AuthError{Message: MsgInvalidCredentials}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			admins := NewAdmins(newFakeTable[models.Admin](), tt.passwords)
			created, err := admins.Create(ctx, []byte(adminBody))
			require.NoError(t, err)

			admin, err := admins.Authenticate(ctx, []byte(tt.body))
			if tt.expectedErr != nil {
				assert.Equal(t, tt.expectedErr, err)
				assert.Nil(t, admin)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, created.ID, admin.ID)
			assert.Equal(t, "a@b.com", admin.Email)
		})
	}
}

func TestAdminsStoreHashedPassword(t *testing.T) {
	ctx := context.Background()
	table := newFakeTable[models.Admin]()
	admins := NewAdmins(table, auth.BcryptPasswords{Cost: bcrypt.MinCost})

	created, err := admins.Create(ctx, []byte(adminBody))
	require.NoError(t, err)
	assert.Equal(t, "x", created.Password)

	stored, err := table.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("x")))

	updated, err := admins.Update(ctx, []byte(`{"id":"`+created.ID+`","first_name":"A","last_name":"B","email":"a@b.com","password":"z"}`))
	require.NoError(t, err)
	assert.Equal(t, "z", updated.Password)

	_, err = admins.Authenticate(ctx, []byte(`{"email":"a@b.com","password":"z"}`))
	assert.NoError(t, err)
}

func TestAuthenticateStorageError(t *testing.T) {
	table := newFakeTable[models.Admin]()
	admins := NewAdmins(&scanFailingTable{fakeTable: table}, auth.PlainPasswords{})

	_, err := admins.Authenticate(context.Background(), []byte(`{"email":"a@b.com","password":"x"}`))
	var se *models.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, MsgAuthFailed, se.Message)
}

type scanFailingTable struct {
	*fakeTable[models.Admin]
}

func (s *scanFailingTable) ScanEqual(ctx context.Context, field string, value interface{}) ([]models.Admin, error) {
	return nil, errors.New("scan failed")
}

func TestAdminsUpdateKeepsStoredHash(t *testing.T) {
	ctx := context.Background()
	table := newFakeTable[models.Admin]()
	admins := NewAdmins(table, auth.BcryptPasswords{Cost: bcrypt.MinCost})

	created, err := admins.Create(ctx, []byte(adminBody))
	require.NoError(t, err)

	all, err := admins.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	read := all[0]
	hash := read.Password
	read.FirstName = "Renamed"
	body, err := json.Marshal(read)
	require.NoError(t, err)

	_, err = admins.Update(ctx, body)
	require.NoError(t, err)

	stored, err := table.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.FirstName)
	assert.Equal(t, hash, stored.Password)

	admin, err := admins.Authenticate(ctx, []byte(`{"email":"a@b.com","password":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, created.ID, admin.ID)
}

func TestAuthenticateLogsOperation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	admins := NewAdmins(newFakeTable[models.Admin](), auth.PlainPasswords{})
	_, err := admins.Authenticate(context.Background(), []byte(`{"email":"a@b.com","password":"x"}`))
	require.Error(t, err)

	entries := logs.FilterMessage("authenticate").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "admin", entries[0].ContextMap()["entity"])
}
