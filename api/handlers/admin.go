package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/linesmerrill/medireminder-api/auth"
	"github.com/linesmerrill/medireminder-api/gateway"
	"github.com/linesmerrill/medireminder-api/models"
)

// MsgAuthenticated is returned with the matched administrator
const MsgAuthenticated = "Authentication successful"

// Admin serves the administrator routes
type Admin struct {
	Resource[models.Admin, *models.Admin]
	Admins *gateway.Admins
	Tokens *auth.Tokens
}

// NewAdmin returns the administrator handler. tokens may be nil.
func NewAdmin(g *gateway.Admins, tokens *auth.Tokens) Admin {
	return Admin{Resource: Resource[models.Admin, *models.Admin]{G: g.Gateway}, Admins: g, Tokens: tokens}
}

// AuthenticateHandler checks the email and password in the request body
func (h Admin) AuthenticateHandler(w http.ResponseWriter, r *http.Request) {
	admin, err := h.Admins.Authenticate(r.Context(), readBody(r))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := models.AuthResponse{Message: MsgAuthenticated, Admin: admin}
	if h.Tokens != nil {
		token, err := h.Tokens.Issue(*admin)
		if err != nil {
			zap.S().With(err).Error("failed to sign token")
			writeError(w, &models.StorageError{Message: gateway.MsgAuthFailed, Err: err})
			return
		}
		resp.Token = token
	}
	writeEnvelope(w, newEnvelope(http.StatusOK, resp))
}
