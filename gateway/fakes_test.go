package gateway

import (
	"context"

	"github.com/linesmerrill/medireminder-api/databases"
	"github.com/linesmerrill/medireminder-api/models"
)

// fakeTable wraps a memory table and lets a test replace single operations
type fakeTable[T models.Record] struct {
	databases.Table[T]
	PutFunc      func(ctx context.Context, item T) error
	BatchPutFunc func(ctx context.Context, items []T) error
	ScanFunc     func(ctx context.Context) ([]T, error)
	GetFunc      func(ctx context.Context, id string) (*T, error)
	UpdateFunc   func(ctx context.Context, id string, fields []models.Field) error
	DeleteFunc   func(ctx context.Context, id string) error
}

func newFakeTable[T models.Record](indexes ...databases.Index) *fakeTable[T] {
	return &fakeTable[T]{Table: databases.NewMemoryTable[T](indexes...)}
}

func (f *fakeTable[T]) Put(ctx context.Context, item T) error {
	if f.PutFunc != nil {
		return f.PutFunc(ctx, item)
	}
	return f.Table.Put(ctx, item)
}

func (f *fakeTable[T]) BatchPut(ctx context.Context, items []T) error {
	if f.BatchPutFunc != nil {
		return f.BatchPutFunc(ctx, items)
	}
	return f.Table.BatchPut(ctx, items)
}

func (f *fakeTable[T]) Scan(ctx context.Context) ([]T, error) {
	if f.ScanFunc != nil {
		return f.ScanFunc(ctx)
	}
	return f.Table.Scan(ctx)
}

func (f *fakeTable[T]) Get(ctx context.Context, id string) (*T, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	return f.Table.Get(ctx, id)
}

func (f *fakeTable[T]) Update(ctx context.Context, id string, fields []models.Field) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, id, fields)
	}
	return f.Table.Update(ctx, id, fields)
}

func (f *fakeTable[T]) Delete(ctx context.Context, id string) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	return f.Table.Delete(ctx, id)
}
