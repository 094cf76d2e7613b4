package databases

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/linesmerrill/medireminder-api/models"
)

// memoryTable keeps records in process memory. Records are converted to their JSON
// documents to apply field updates and equality filters by schema field name.
type memoryTable[T models.Record] struct {
	mu      sync.RWMutex
	items   map[string]T
	indexes map[string]string
}

// NewMemoryTable returns an empty in-process Table
func NewMemoryTable[T models.Record](indexes ...Index) Table[T] {
	return &memoryTable[T]{items: map[string]T{}, indexes: indexNames(indexes)}
}

func (m *memoryTable[T]) Put(_ context.Context, item T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.GetID()] = item
	return nil
}

func (m *memoryTable[T]) BatchPut(_ context.Context, items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		m.items[item.GetID()] = item
	}
	return nil
}

func (m *memoryTable[T]) Scan(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]T, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	return items, nil
}

func (m *memoryTable[T]) ScanEqual(_ context.Context, field string, value interface{}) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := fmt.Sprint(value)
	items := []T{}
	for _, item := range m.items {
		doc, err := toDocument(item)
		if err != nil {
			return nil, err
		}
		if v, ok := doc[field]; ok && fmt.Sprint(v) == want {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *memoryTable[T]) QueryIndex(ctx context.Context, field string, value interface{}) ([]T, error) {
	if _, ok := m.indexes[field]; !ok {
		return nil, fmt.Errorf("no secondary index declared for %q", field)
	}
	return m.ScanEqual(ctx, field, value)
}

func (m *memoryTable[T]) Get(_ context.Context, id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (m *memoryTable[T]) Update(_ context.Context, id string, fields []models.Field) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.items[id]
	if !ok {
		return ErrConditionFailed
	}
	doc, err := toDocument(current)
	if err != nil {
		return err
	}
	for _, f := range fields {
		doc[f.Name] = f.Value
	}
	var next T
	if err := fromDocument(doc, &next); err != nil {
		return err
	}
	m.items[id] = next
	return nil
}

func (m *memoryTable[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrConditionFailed
	}
	delete(m.items, id)
	return nil
}

func toDocument(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDocument(doc map[string]interface{}, v interface{}) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
