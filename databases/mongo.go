package databases

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/medireminder-api/models"
)

type mongoTable[T models.Record] struct {
	collection CollectionHelper
	indexes    map[string]string
}

// NewMongoTable returns a Table backed by the named collection and creates the declared
// secondary indexes
func NewMongoTable[T models.Record](ctx context.Context, db DatabaseHelper, name string, indexes ...Index) (Table[T], error) {
	coll := db.Collection(name)
	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: bson.D{{Key: idx.Field, Value: 1}}}
		if idx.Name != "" {
			model.Options = options.Index().SetName(idx.Name)
		}
		if _, err := coll.CreateIndex(ctx, model); err != nil {
			return nil, fmt.Errorf("create index on %s.%s: %w", name, idx.Field, err)
		}
	}
	return &mongoTable[T]{collection: coll, indexes: indexNames(indexes)}, nil
}

func (m *mongoTable[T]) Put(ctx context.Context, item T) error {
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": item.GetID()}, item, options.Replace().SetUpsert(true))
	return err
}

func (m *mongoTable[T]) BatchPut(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": item.GetID()}).
			SetReplacement(item).
			SetUpsert(true))
	}
	_, err := m.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	return err
}

func (m *mongoTable[T]) Scan(ctx context.Context) ([]T, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoTable[T]) ScanEqual(ctx context.Context, field string, value interface{}) ([]T, error) {
	return m.find(ctx, bson.M{field: value})
}

func (m *mongoTable[T]) QueryIndex(ctx context.Context, field string, value interface{}) ([]T, error) {
	if _, ok := m.indexes[field]; !ok {
		return nil, fmt.Errorf("no secondary index declared for %q", field)
	}
	return m.find(ctx, bson.M{field: value})
}

func (m *mongoTable[T]) find(ctx context.Context, filter interface{}) ([]T, error) {
	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if err := cursor.Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (m *mongoTable[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (m *mongoTable[T]) Update(ctx context.Context, id string, fields []models.Field) error {
	set := make(bson.D, 0, len(fields))
	for _, f := range fields {
		set = append(set, bson.E{Key: f.Name, Value: f.Value})
	}
	res, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (m *mongoTable[T]) Delete(ctx context.Context, id string) error {
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrConditionFailed
	}
	return nil
}
