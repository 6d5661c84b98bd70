/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/friendsincode/orderboard/internal/models"
	"github.com/friendsincode/orderboard/internal/storage"
)

// Migrate applies database schema migrations using GORM auto-migrate.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(&storage.Blob{}); err != nil {
		return fmt.Errorf("migrate blobs: %w", err)
	}
	if err := database.AutoMigrate(&models.AuditLog{}); err != nil {
		return fmt.Errorf("migrate audit logs: %w", err)
	}
	return nil
}
