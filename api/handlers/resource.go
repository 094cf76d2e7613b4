package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/medireminder-api/gateway"
	"github.com/linesmerrill/medireminder-api/models"
)

// Success messages
const (
	MsgInserted = "Inserted Successfully"
	MsgSelected = "Data selected"
	MsgUpdated  = "Updated"
	MsgDeleted  = "Deleted"
)

// Resource serves the CRUD routes of one entity
type Resource[T models.Record, PT interface {
	*T
	models.Entity
}] struct {
	G *gateway.Gateway[T, PT]
}

// CreateHandler stores the record in the request body
func (h Resource[T, PT]) CreateHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.G.Create(r.Context(), readBody(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, newEnvelope(http.StatusOK, models.MessageResponse{Message: MsgInserted, Data: item}))
}

// ReadAllHandler returns every record
func (h Resource[T, PT]) ReadAllHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.G.ReadAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, items)
}

// ReadByHandler returns the records whose foreign key equals the query parameter of the same name
func (h Resource[T, PT]) ReadByHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.G.ReadBy(r.Context(), r.URL.Query().Get(h.G.Schema.ForeignKey))
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, items)
}

// UpdateHandler overwrites the record identified by the id in the request body
func (h Resource[T, PT]) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.G.Update(r.Context(), readBody(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, newEnvelope(http.StatusOK, models.MessageResponse{Message: MsgUpdated, Data: item}))
}

// DeleteHandler removes the record identified by the id path parameter
func (h Resource[T, PT]) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.G.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeEnvelope(w, newEnvelope(http.StatusOK, models.MessageResponse{Message: MsgDeleted, Data: item}))
}

func writeResult[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeEnvelope(w, newEnvelope(http.StatusOK, models.ResultResponse{Message: MsgSelected, Result: items}))
}

// register adds the CRUD routes of h under path
func (h Resource[T, PT]) register(r *mux.Router, path string) {
	r.HandleFunc(path, h.CreateHandler).Methods(http.MethodPost)
	r.HandleFunc(path, h.ReadAllHandler).Methods(http.MethodGet)
	r.HandleFunc(path, h.UpdateHandler).Methods(http.MethodPut)
	r.HandleFunc(path+"/{id}", h.DeleteHandler).Methods(http.MethodDelete)
}
