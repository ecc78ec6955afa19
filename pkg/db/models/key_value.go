package models

import "time"

// KeyValue backs the durable cart slot when sqlite storage is selected.
type KeyValue struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the storage table name.
func (KeyValue) TableName() string {
	return "key_values"
}
