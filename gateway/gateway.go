// Package gateway implements the create, read, update and delete operations shared by every
// entity, on top of a databases.Table.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linesmerrill/medireminder-api/databases"
	"github.com/linesmerrill/medireminder-api/models"
)

// Messages returned to clients
const (
	MsgEmptyBody    = "Error: The request body is empty."
	MsgMissingData  = "Error: The request body does not contain the expected data."
	MsgMissingID    = "Error: The request does not contain the id of the item."
	MsgNotFound     = "The item with the provided id does not exist."
	MsgNotArray     = "Error: The request body must contain an array of products."
	MsgInvalidBatch = "Error: One or more products do not contain the expected data."
	MsgInsertFailed = "Error inserting data"
	MsgSelectFailed = "Error selecting data"
	MsgUpdateFailed = "Error updating data"
	MsgDeleteFailed = "Error deleting data"
)

// Schema describes the entity served by a Gateway
type Schema struct {
	// Entity names the records in logs
	Entity string
	// BatchKey is the body key holding the array accepted by CreateMany
	BatchKey string
	// ForeignKey is the field ReadBy filters on
	ForeignKey string
}

// QueryHooks wrap every storage call made by a Gateway. Both are optional.
type QueryHooks struct {
	// Context bounds the call
	Context func(context.Context) (context.Context, context.CancelFunc)
	// Done receives the duration of the call
	Done func(context.Context, time.Duration)
}

// Gateway runs the entity operations for records of type T. PT is *T and lets the gateway
// assign identifiers.
type Gateway[T models.Record, PT interface {
	*T
	models.Entity
}] struct {
	Schema Schema
	Table  databases.Table[T]
	// BeforeWrite may rewrite the copy of a record that is about to be stored
	BeforeWrite func(PT) error
	Hooks       QueryHooks

	newID func() string
}

// New returns a gateway for schema over table
func New[T models.Record, PT interface {
	*T
	models.Entity
}](schema Schema, table databases.Table[T]) *Gateway[T, PT] {
	return &Gateway[T, PT]{Schema: schema, Table: table, newID: uuid.NewString}
}

func isEmpty(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0
}

func (g *Gateway[T, PT]) beforeWrite(item *T) error {
	if g.BeforeWrite == nil {
		return nil
	}
	return g.BeforeWrite(PT(item))
}

// timed runs one storage call through the query hooks
func (g *Gateway[T, PT]) timed(ctx context.Context, call func(ctx context.Context) error) error {
	qctx, cancel := ctx, context.CancelFunc(func() {})
	if g.Hooks.Context != nil {
		qctx, cancel = g.Hooks.Context(ctx)
	}
	defer cancel()
	start := time.Now()
	err := call(qctx)
	if g.Hooks.Done != nil {
		g.Hooks.Done(ctx, time.Since(start))
	}
	return err
}

// decode parses one record and checks its required fields
func (g *Gateway[T, PT]) decode(raw []byte, invalid string) (T, error) {
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		zap.S().Infow("rejected malformed record", "entity", g.Schema.Entity, "error", err)
		return item, &models.ValidationError{Message: invalid}
	}
	if missing := models.MissingFields(item); len(missing) > 0 {
		zap.S().Infow("rejected incomplete record", "entity", g.Schema.Entity, "missing", missing)
		return item, &models.ValidationError{Message: invalid}
	}
	return item, nil
}

// Create validates body, assigns a fresh identifier and stores the record
func (g *Gateway[T, PT]) Create(ctx context.Context, body []byte) (*T, error) {
	zap.S().Infow("create", "entity", g.Schema.Entity)
	if isEmpty(body) {
		return nil, &models.ValidationError{Message: MsgEmptyBody}
	}
	item, err := g.decode(body, MsgMissingData)
	if err != nil {
		return nil, err
	}
	PT(&item).SetID(g.newID())

	stored := item
	if err := g.beforeWrite(&stored); err != nil {
		return nil, g.storageError(MsgInsertFailed, err)
	}
	err = g.timed(ctx, func(ctx context.Context) error { return g.Table.Put(ctx, stored) })
	if err != nil {
		return nil, g.storageError(MsgInsertFailed, err)
	}
	return &item, nil
}

// CreateMany stores every element of the array under Schema.BatchKey in one batch write. It
// returns the submitted array unchanged.
func (g *Gateway[T, PT]) CreateMany(ctx context.Context, body []byte) (json.RawMessage, error) {
	zap.S().Infow("create many", "entity", g.Schema.Entity)
	if isEmpty(body) {
		return nil, &models.ValidationError{Message: MsgEmptyBody}
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &models.ValidationError{Message: MsgNotArray}
	}
	raw := envelope[g.Schema.BatchKey]
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || len(elems) == 0 {
		return nil, &models.ValidationError{Message: MsgNotArray}
	}

	items := make([]T, 0, len(elems))
	for _, elem := range elems {
		item, err := g.decode(elem, MsgInvalidBatch)
		if err != nil {
			return nil, err
		}
		PT(&item).SetID(g.newID())
		if err := g.beforeWrite(&item); err != nil {
			return nil, g.storageError(MsgInsertFailed, err)
		}
		items = append(items, item)
	}

	err := g.timed(ctx, func(ctx context.Context) error { return g.Table.BatchPut(ctx, items) })
	if err != nil {
		return nil, g.storageError(MsgInsertFailed, err)
	}
	return raw, nil
}

// ReadAll returns every record of the table in store order
func (g *Gateway[T, PT]) ReadAll(ctx context.Context) ([]T, error) {
	zap.S().Infow("read all", "entity", g.Schema.Entity)
	var items []T
	err := g.timed(ctx, func(ctx context.Context) (err error) {
		items, err = g.Table.Scan(ctx)
		return err
	})
	if err != nil {
		return nil, g.storageError(MsgSelectFailed, err)
	}
	return items, nil
}

// ReadBy returns every record whose foreign key equals value
func (g *Gateway[T, PT]) ReadBy(ctx context.Context, value string) ([]T, error) {
	zap.S().Infow("read by", "entity", g.Schema.Entity, "field", g.Schema.ForeignKey)
	if value == "" {
		return nil, &models.ValidationError{
			Message: fmt.Sprintf("Error: The %s query parameter is required.", g.Schema.ForeignKey),
		}
	}
	var items []T
	err := g.timed(ctx, func(ctx context.Context) (err error) {
		items, err = g.Table.QueryIndex(ctx, g.Schema.ForeignKey, value)
		return err
	})
	if err != nil {
		return nil, g.storageError(MsgSelectFailed, err)
	}
	return items, nil
}

// FindBy returns every record whose field equals value, scanning the table
func (g *Gateway[T, PT]) FindBy(ctx context.Context, field, value string) ([]T, error) {
	var items []T
	err := g.timed(ctx, func(ctx context.Context) (err error) {
		items, err = g.Table.ScanEqual(ctx, field, value)
		return err
	})
	return items, err
}

// Update overwrites every schema field of the record identified by the id in body. Fields absent
// from body are written as their zero value. The submitted record is returned as received.
func (g *Gateway[T, PT]) Update(ctx context.Context, body []byte) (*T, error) {
	zap.S().Infow("update", "entity", g.Schema.Entity)
	if isEmpty(body) {
		return nil, &models.ValidationError{Message: MsgEmptyBody}
	}
	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, &models.ValidationError{Message: MsgMissingData}
	}
	id := item.GetID()
	if id == "" {
		return nil, &models.ValidationError{Message: MsgMissingID}
	}

	stored := item
	if err := g.beforeWrite(&stored); err != nil {
		return nil, g.storageError(MsgUpdateFailed, err)
	}
	err := g.timed(ctx, func(ctx context.Context) error { return g.Table.Update(ctx, id, stored.Fields()) })
	if errors.Is(err, databases.ErrConditionFailed) {
		return nil, &models.NotFoundError{Message: MsgNotFound}
	}
	if err != nil {
		return nil, g.storageError(MsgUpdateFailed, err)
	}
	return &item, nil
}

// Delete removes the record with id and returns it as it was before removal
func (g *Gateway[T, PT]) Delete(ctx context.Context, id string) (*T, error) {
	zap.S().Infow("delete", "entity", g.Schema.Entity, "id", id)
	if id == "" {
		return nil, &models.ValidationError{Message: MsgMissingID}
	}
	var existing *T
	err := g.timed(ctx, func(ctx context.Context) (err error) {
		existing, err = g.Table.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, g.storageError(MsgDeleteFailed, err)
	}
	if existing == nil {
		return nil, &models.NotFoundError{Message: MsgNotFound}
	}
	// A record removed between the read and the delete fails the delete condition and is
	// reported as a storage failure.
	err = g.timed(ctx, func(ctx context.Context) error { return g.Table.Delete(ctx, id) })
	if err != nil {
		return nil, g.storageError(MsgDeleteFailed, err)
	}
	return existing, nil
}

func (g *Gateway[T, PT]) storageError(msg string, err error) error {
	zap.S().Errorw(msg, "entity", g.Schema.Entity, "error", err)
	return &models.StorageError{Message: msg, Err: err}
}
