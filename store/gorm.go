package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// collectionRow holds one whole collection as a JSONB array.
type collectionRow struct {
	Name      string         `gorm:"primaryKey;size:64"`
	Documents datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (collectionRow) TableName() string { return "collections" }

// GormStore keeps collections in a postgres table through gorm.
type GormStore struct {
	db *gorm.DB
}

// PoolConfig tunes the underlying sql.DB.
type PoolConfig struct {
	MaxIdleConns int
	MaxOpenConns int
}

// NewGormStore connects to postgres and migrates the collections table.
func NewGormStore(dsn string, pool PoolConfig) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB from gorm: %w", err)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, fmt.Errorf("migrate collections table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// NewGormStoreFromDB wraps an already opened gorm handle.
func NewGormStoreFromDB(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Load implements Store.
func (s *GormStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var row collectionRow
	err := s.db.WithContext(ctx).First(&row, "name = ?", collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", collection, ErrCollectionMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(row.Documents, &records); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", collection, err)
	}
	return records, nil
}

// Save implements Store with an upsert on the collection name.
func (s *GormStore) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	row := collectionRow{Name: collection, Documents: datatypes.JSON(data)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"documents", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert collection: %w", err)
	}
	return nil
}

// Names implements Lister.
func (s *GormStore) Names(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&collectionRow{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}

// Close releases the connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
