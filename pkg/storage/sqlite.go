package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefrontlabs/widget/pkg/db"
	"github.com/storefrontlabs/widget/pkg/db/models"
)

// SQLiteStore persists values in a key_values table via the shared GORM client.
type SQLiteStore struct {
	client *db.Client
}

func NewSQLiteStore(client *db.Client) (*SQLiteStore, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if err := client.DB().AutoMigrate(&models.KeyValue{}); err != nil {
		return nil, fmt.Errorf("migrating key_values: %w", err)
	}
	return &SQLiteStore{client: client}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var row models.KeyValue
	err := s.client.DB().WithContext(ctx).First(&row, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return row.Value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	row := models.KeyValue{Key: key, Value: value}
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *SQLiteStore) Close() error {
	return s.client.Close()
}
