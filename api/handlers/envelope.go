package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/linesmerrill/medireminder-api/api"
	"github.com/linesmerrill/medireminder-api/models"
)

// newEnvelope renders body as indented JSON inside the response envelope
func newEnvelope(status int, body interface{}) models.Response {
	b, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		zap.S().With(err).Error("failed to encode response")
		status = http.StatusInternalServerError
		b = []byte("{\n  \"message\": \"Error encoding response\"\n}")
	}
	headers := make(map[string]string, len(api.CORSHeaders))
	for k, v := range api.CORSHeaders {
		headers[k] = v
	}
	return models.Response{StatusCode: status, Headers: headers, Body: string(b)}
}

// errorEnvelope maps a gateway error to its status code and body
func errorEnvelope(err error) models.Response {
	var (
		ve *models.ValidationError
		nf *models.NotFoundError
		ae *models.AuthError
		se *models.StorageError
	)
	switch {
	case errors.As(err, &ve):
		return newEnvelope(http.StatusBadRequest, models.ErrorMessageResponse{Message: ve.Message})
	case errors.As(err, &nf):
		return newEnvelope(http.StatusBadRequest, models.ErrorMessageResponse{Message: nf.Message})
	case errors.As(err, &ae):
		return newEnvelope(http.StatusBadRequest, models.ErrorMessageResponse{Message: ae.Message})
	case errors.As(err, &se):
		return newEnvelope(http.StatusInternalServerError, models.ErrorMessageResponse{Message: se.Message, Error: se.Cause()})
	}
	return newEnvelope(http.StatusInternalServerError, models.ErrorMessageResponse{Message: "Internal server error", Error: err.Error()})
}

func writeEnvelope(w http.ResponseWriter, resp models.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	io.WriteString(w, resp.Body)
}

func writeError(w http.ResponseWriter, err error) {
	writeEnvelope(w, errorEnvelope(err))
}

func readBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		zap.S().With(err).Warn("failed to read request body")
		return nil
	}
	return b
}
