/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// AuditAction identifies what happened to the board.
type AuditAction string

const (
	AuditActionOrderCreate     AuditAction = "order.create"
	AuditActionOrderUpdate     AuditAction = "order.update"
	AuditActionOrderDelete     AuditAction = "order.delete"
	AuditActionOverlapRejected AuditAction = "order.overlap_rejected"
	AuditActionBoardReset      AuditAction = "board.reset"
)

// AuditLog records one board mutation for the activity trail.
type AuditLog struct {
	ID           string         `gorm:"type:uuid;primaryKey"`
	Timestamp    time.Time      `gorm:"index:idx_audit_timestamp;not null"`
	Action       AuditAction    `gorm:"type:varchar(64);index:idx_audit_action;not null"`
	WorkOrderID  string         `gorm:"type:varchar(64);index:idx_audit_order"`
	WorkCenterID string         `gorm:"type:varchar(64);index:idx_audit_center"`
	Details      map[string]any `gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM.
func (AuditLog) TableName() string {
	return "audit_logs"
}
