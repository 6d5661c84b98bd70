/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is one persisted collection keyed by name.
type Blob struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName fixes the table name across backends.
func (Blob) TableName() string {
	return "blobs"
}

// GormKV implements KV on top of a gorm-managed blobs table.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV wraps a database connection as a KV.
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

// Load returns the stored value for key, reporting absence without error.
func (s *GormKV) Load(key string) (string, bool, error) {
	var blob Blob
	err := s.db.First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return blob.Value, true, nil
}

// Save upserts value under key.
func (s *GormKV) Save(key, value string) error {
	blob := Blob{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}
