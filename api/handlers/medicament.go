package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/medireminder-api/models"
	"github.com/linesmerrill/medireminder-api/storage"
)

// MsgUploadFailed is the error of every failed image upload
const MsgUploadFailed = "Error uploading file"

// Medicament serves the medicament routes
type Medicament struct {
	Resource[models.Medicament, *models.Medicament]
	Uploader storage.Uploader
	now      func() time.Time
}

// CreateManyHandler stores every medicament of the request body in one batch
func (h Medicament) CreateManyHandler(w http.ResponseWriter, r *http.Request) {
	raw, err := h.G.CreateMany(r.Context(), readBody(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, newEnvelope(http.StatusOK, models.MessageResponse{Message: MsgInserted, Data: raw}))
}

// UploadImageHandler stores a base64 encoded image and returns its URL
func (h Medicament) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ImageUpload
	if err := json.Unmarshal(readBody(r), &req); err != nil || req.File == "" || req.FileName == "" {
		writeEnvelope(w, newEnvelope(http.StatusBadRequest, models.UploadErrorResponse{
			Error:   MsgUploadFailed,
			Details: "file and fileName are required",
		}))
		return
	}

	data, err := decodeImage(req.File)
	if err != nil {
		writeEnvelope(w, newEnvelope(http.StatusBadRequest, models.UploadErrorResponse{Error: MsgUploadFailed, Details: err.Error()}))
		return
	}

	url, err := h.upload(r.Context(), req, data)
	if err != nil {
		zap.S().Errorw(MsgUploadFailed, "fileName", req.FileName, "error", err)
		writeEnvelope(w, newEnvelope(http.StatusInternalServerError, models.UploadErrorResponse{Error: MsgUploadFailed, Details: err.Error()}))
		return
	}
	writeEnvelope(w, newEnvelope(http.StatusOK, models.UploadResponse{URL: url}))
}

func (h Medicament) upload(ctx context.Context, req models.ImageUpload, data []byte) (string, error) {
	now := time.Now
	if h.now != nil {
		now = h.now
	}
	return h.Uploader.Upload(ctx, storage.ImageKey(now(), req.FileName), data, req.FileType)
}

// decodeImage accepts plain base64 or a data URL
func decodeImage(file string) ([]byte, error) {
	if i := strings.Index(file, ";base64,"); i >= 0 && strings.HasPrefix(file, "data:") {
		file = file[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(file)
}
