package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/medireminder-api/databases"
	"github.com/linesmerrill/medireminder-api/models"
)

func TestMemoryTable_PutGetScan(t *testing.T) {
	ctx := context.Background()
	table := databases.NewMemoryTable[models.Admin]()

	require.NoError(t, table.Put(ctx, models.Admin{ID: "a1", Email: "a@b.com"}))
	require.NoError(t, table.Put(ctx, models.Admin{ID: "a1", Email: "c@d.com"}))
	require.NoError(t, table.BatchPut(ctx, []models.Admin{{ID: "a2"}, {ID: "a3"}}))

	admin, err := table.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "c@d.com", admin.Email)

	missing, err := table.Get(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	all, err := table.Scan(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryTable_ScanEqual(t *testing.T) {
	ctx := context.Background()
	table := databases.NewMemoryTable[models.Reminder](databases.Index{Field: "user_id"})
	require.NoError(t, table.BatchPut(ctx, []models.Reminder{
		{ID: "r1", UserID: "u1", Stock: 3},
		{ID: "r2", UserID: "u2", Stock: 3},
		{ID: "r3", UserID: "u1", Stock: 4},
	}))

	byUser, err := table.QueryIndex(ctx, "user_id", "u1")
	assert.NoError(t, err)
	assert.Len(t, byUser, 2)

	byStock, err := table.ScanEqual(ctx, "stock", 3)
	assert.NoError(t, err)
	assert.Len(t, byStock, 2)

	none, err := table.ScanEqual(ctx, "user_id", "u9")
	assert.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = table.QueryIndex(ctx, "medicament_id", "m1")
	assert.Error(t, err)
}

func TestMemoryTable_UpdateOverwritesEveryField(t *testing.T) {
	ctx := context.Background()
	table := databases.NewMemoryTable[models.Reminder]()
	require.NoError(t, table.Put(ctx, models.Reminder{ID: "r1", Title: "old", Status: "pending", Stock: 5}))

	err := table.Update(ctx, "r1", (models.Reminder{Title: "new", Stock: 2}).Fields())
	require.NoError(t, err)

	r, err := table.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, models.Reminder{ID: "r1", Title: "new", Stock: 2}, *r)

	assert.ErrorIs(t, table.Update(ctx, "nope", nil), databases.ErrConditionFailed)
}

func TestMemoryTable_Delete(t *testing.T) {
	ctx := context.Background()
	table := databases.NewMemoryTable[models.Medicament]()
	require.NoError(t, table.Put(ctx, models.Medicament{ID: "m1"}))

	assert.NoError(t, table.Delete(ctx, "m1"))
	assert.ErrorIs(t, table.Delete(ctx, "m1"), databases.ErrConditionFailed)
}
