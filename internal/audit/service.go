/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package audit records board mutations as a queryable activity trail.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/orderboard/internal/events"
	"github.com/friendsincode/orderboard/internal/models"
)

// Service handles audit logging by subscribing to events and storing audit entries.
type Service struct {
	db     *gorm.DB
	bus    *events.Bus
	logger zerolog.Logger
}

// NewService creates a new audit service.
func NewService(db *gorm.DB, bus *events.Bus, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		bus:    bus,
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

// Start subscribes to board events and logs them as audit entries.
func (s *Service) Start(ctx context.Context) {
	s.logger.Info().Msg("audit service starting")

	orderCreated := s.bus.Subscribe(events.EventOrderCreated)
	orderUpdated := s.bus.Subscribe(events.EventOrderUpdated)
	orderDeleted := s.bus.Subscribe(events.EventOrderDeleted)
	overlapRejected := s.bus.Subscribe(events.EventOverlapRejected)
	boardReset := s.bus.Subscribe(events.EventBoardReset)

	defer func() {
		s.bus.Unsubscribe(events.EventOrderCreated, orderCreated)
		s.bus.Unsubscribe(events.EventOrderUpdated, orderUpdated)
		s.bus.Unsubscribe(events.EventOrderDeleted, orderDeleted)
		s.bus.Unsubscribe(events.EventOverlapRejected, overlapRejected)
		s.bus.Unsubscribe(events.EventBoardReset, boardReset)
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("audit service stopping")
			return

		case payload := <-orderCreated:
			s.logAuditEntry(ctx, models.AuditActionOrderCreate, payload)

		case payload := <-orderUpdated:
			s.logAuditEntry(ctx, models.AuditActionOrderUpdate, payload)

		case payload := <-orderDeleted:
			s.logAuditEntry(ctx, models.AuditActionOrderDelete, payload)

		case payload := <-overlapRejected:
			s.logAuditEntry(ctx, models.AuditActionOverlapRejected, payload)

		case payload := <-boardReset:
			s.logAuditEntry(ctx, models.AuditActionBoardReset, payload)
		}
	}
}

// logAuditEntry creates an audit log entry from an event payload.
func (s *Service) logAuditEntry(ctx context.Context, action models.AuditAction, payload events.Payload) {
	entry := &models.AuditLog{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Action:    action,
		Details:   make(map[string]any),
		CreatedAt: time.Now(),
	}

	if orderID, ok := payload["order_id"].(string); ok {
		entry.WorkOrderID = orderID
	}
	if centerID, ok := payload["work_center_id"].(string); ok {
		entry.WorkCenterID = centerID
	}

	for k, v := range payload {
		switch k {
		case "order_id", "work_center_id":
			// Already extracted
		default:
			entry.Details[k] = v
		}
	}

	if err := s.Log(ctx, entry); err != nil {
		s.logger.Error().Err(err).
			Str("action", string(action)).
			Msg("failed to log audit entry")
	}
}

// Log records an audit entry directly (for non-event-bus actions).
func (s *Service) Log(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.Details == nil {
		entry.Details = make(map[string]any)
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}

	s.logger.Debug().
		Str("action", string(entry.Action)).
		Str("id", entry.ID).
		Msg("audit entry logged")

	return nil
}

// QueryFilters defines filters for querying audit logs.
type QueryFilters struct {
	WorkOrderID  *string
	WorkCenterID *string
	Action       *models.AuditAction
	StartTime    *time.Time
	EndTime      *time.Time
	Limit        int
	Offset       int
}

// Query retrieves audit logs with filters, most recent first.
func (s *Service) Query(ctx context.Context, filters QueryFilters) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	query := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if filters.WorkOrderID != nil {
		query = query.Where("work_order_id = ?", *filters.WorkOrderID)
	}
	if filters.WorkCenterID != nil {
		query = query.Where("work_center_id = ?", *filters.WorkCenterID)
	}
	if filters.Action != nil {
		query = query.Where("action = ?", *filters.Action)
	}
	if filters.StartTime != nil {
		query = query.Where("timestamp >= ?", *filters.StartTime)
	}
	if filters.EndTime != nil {
		query = query.Where("timestamp <= ?", *filters.EndTime)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	} else {
		query = query.Limit(100) // Default limit
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
