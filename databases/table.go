package databases

import (
	"context"
	"errors"

	"github.com/linesmerrill/medireminder-api/models"
)

// ErrConditionFailed is returned by Update and Delete when no record has the given id
var ErrConditionFailed = errors.New("conditional check failed: the item does not exist")

// Table is the storage contract shared by every entity. Scan and ScanEqual read the whole
// table in one call; callers must not assume any order.
type Table[T models.Record] interface {
	// Put writes item, replacing any record with the same id
	Put(ctx context.Context, item T) error
	// BatchPut writes all items. It is not atomic: a backend that splits the batch keeps the
	// parts written before a failing one.
	BatchPut(ctx context.Context, items []T) error
	Scan(ctx context.Context) ([]T, error)
	// ScanEqual returns every record whose field equals value, without using an index
	ScanEqual(ctx context.Context, field string, value interface{}) ([]T, error)
	// QueryIndex returns every record whose field equals value through the secondary index
	// declared for field
	QueryIndex(ctx context.Context, field string, value interface{}) ([]T, error)
	// Get returns nil and no error when the record does not exist
	Get(ctx context.Context, id string) (*T, error)
	// Update overwrites fields of an existing record or returns ErrConditionFailed
	Update(ctx context.Context, id string, fields []models.Field) error
	// Delete removes an existing record or returns ErrConditionFailed
	Delete(ctx context.Context, id string) error
}

// Index declares a secondary index over Field. Name is used by backends that address
// indexes by name.
type Index struct {
	Field string
	Name  string
}

func indexNames(indexes []Index) map[string]string {
	m := make(map[string]string, len(indexes))
	for _, idx := range indexes {
		m[idx.Field] = idx.Name
	}
	return m
}
