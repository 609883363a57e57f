package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGormStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormStoreFromDB(db), mock
}

func TestGormStore_Load(t *testing.T) {
	s, mock := newMockGormStore(t)

	rows := sqlmock.NewRows([]string{"name", "documents", "updated_at"}).
		AddRow("routes", []byte(`[{"id_route":"r1"},{"id_route":"r2"}]`), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "collections" WHERE name = \$1`).
		WillReturnRows(rows)

	got, err := s.Load(context.Background(), "routes")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.JSONEq(t, `{"id_route":"r1"}`, string(got[0]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_LoadMissing(t *testing.T) {
	s, mock := newMockGormStore(t)

	mock.ExpectQuery(`SELECT \* FROM "collections"`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "documents", "updated_at"}))

	_, err := s.Load(context.Background(), "routes")
	assert.ErrorIs(t, err, ErrCollectionMissing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Save(t *testing.T) {
	s, mock := newMockGormStore(t)

	mock.ExpectExec(`INSERT INTO "collections" .* ON CONFLICT \("name"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Save(context.Background(), "routes", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
