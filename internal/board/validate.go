/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package board

import (
	"strings"
	"time"

	"github.com/friendsincode/orderboard/internal/models"
)

// OrderData carries the caller-supplied fields of a work order.
type OrderData struct {
	Name         string
	WorkCenterID string
	Status       models.WorkOrderStatus
	StartDate    time.Time
	EndDate      time.Time
}

// OrderPatch is a partial update; nil fields keep the existing value.
type OrderPatch struct {
	Name         *string
	WorkCenterID *string
	Status       *models.WorkOrderStatus
	StartDate    *time.Time
	EndDate      *time.Time
}

// validateOrder checks required fields, the status enum, and the strict
// endDate > startDate invariant. It is a pure function on candidate fields,
// independent of any collection state.
func validateOrder(data OrderData) error {
	if strings.TrimSpace(data.Name) == "" {
		return &ValidationError{Message: "Work order name is required"}
	}
	if data.WorkCenterID == "" {
		return &ValidationError{Message: "Work center is required"}
	}
	if !data.Status.Valid() {
		return &ValidationError{Message: "Work order status must be one of open, in-progress, complete, blocked"}
	}
	if data.StartDate.IsZero() || data.EndDate.IsZero() {
		return &ValidationError{Message: "Start and end dates are required"}
	}
	if !data.EndDate.After(data.StartDate) {
		return &ValidationError{Message: "End date must be after start date"}
	}
	return nil
}
