package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/showcase/internal/models"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UploadRecord{}))
	return db
}

func TestUploadRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewUploadRepo(newTestDB(t))

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.UploadRecord{
		{ID: uuid.NewString(), Kind: "certificate", RecordID: "r1", FileName: "a.png", FilePath: "/uploads/a.png", UploadAt: base},
		{ID: uuid.NewString(), Kind: "certificate", RecordID: "r1", FileName: "b.png", FilePath: "/uploads/b.png", UploadAt: base.Add(time.Minute)},
		{ID: uuid.NewString(), Kind: "badge", RecordID: "r2", FileName: "c.png", FilePath: "/uploads/c.png", UploadAt: base.Add(2 * time.Minute),
			Fields: datatypes.JSON(`{"title":"Gopher"}`)},
	}
	for i := range rows {
		require.NoError(t, repo.Insert(ctx, &rows[i]))
	}

	got, err := repo.ListByRecord(ctx, "r1", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b.png", got[0].FileName)
	assert.Equal(t, "a.png", got[1].FileName)

	latest, err := repo.Latest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "c.png", latest[0].FileName)
	assert.JSONEq(t, `{"title":"Gopher"}`, string(latest[0].Fields))
}
