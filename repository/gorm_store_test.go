package repository

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Govind-619/PriceSphere/models"
)

const (
	selectStorageSQL = `SELECT \* FROM "pricing_storages" WHERE key = \$1`
	upsertStorageSQL = `INSERT INTO "pricing_storages" .* ON CONFLICT \("key"\) DO UPDATE SET "state"="excluded"\."state","updated_at"="excluded"\."updated_at"`
)

func newMockGormStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormStore(db), mock
}

// snapshotArg matches the JSON encoded state column
type snapshotArg struct{ contains string }

func (a snapshotArg) Match(v driver.Value) bool {
	var raw []byte
	switch s := v.(type) {
	case string:
		raw = []byte(s)
	case []byte:
		raw = s
	default:
		return false
	}
	return json.Valid(raw) && bytes.Contains(raw, []byte(a.contains))
}

func TestGormStoreLoadMissingRow(t *testing.T) {
	store, mock := newMockGormStore(t)
	mock.ExpectQuery(selectStorageSQL).
		WillReturnRows(sqlmock.NewRows([]string{"key", "state", "created_at", "updated_at"}))

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.TieredRules)
	assert.Empty(t, snapshot.PricingSheets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreLoadRow(t *testing.T) {
	store, mock := newMockGormStore(t)
	state, err := json.Marshal(sampleSnapshot())
	require.NoError(t, err)
	now := time.Now()
	mock.ExpectQuery(selectStorageSQL).
		WillReturnRows(sqlmock.NewRows([]string{"key", "state", "created_at", "updated_at"}).
			AddRow(models.PricingStorageKey, state, now, now))

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assertSampleSnapshot(t, snapshot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreLoadError(t *testing.T) {
	store, mock := newMockGormStore(t)
	mock.ExpectQuery(selectStorageSQL).WillReturnError(errors.New("connection reset"))

	_, err := store.Load(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestGormStoreSaveUpserts(t *testing.T) {
	store, mock := newMockGormStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(upsertStorageSQL).
		WithArgs(models.PricingStorageKey, snapshotArg{contains: `"tieredRules"`}, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreSaveError(t *testing.T) {
	store, mock := newMockGormStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(upsertStorageSQL).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.Save(context.Background(), sampleSnapshot())
	assert.ErrorContains(t, err, "failed to save pricing state")
	assert.NoError(t, mock.ExpectationsWereMet())
}
