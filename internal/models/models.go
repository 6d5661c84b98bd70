/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// WorkOrderStatus enumerates the lifecycle states of a work order.
type WorkOrderStatus string

const (
	StatusOpen       WorkOrderStatus = "open"
	StatusInProgress WorkOrderStatus = "in-progress"
	StatusComplete   WorkOrderStatus = "complete"
	StatusBlocked    WorkOrderStatus = "blocked"
)

// Valid reports whether s is one of the closed set of statuses.
func (s WorkOrderStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusComplete, StatusBlocked:
		return true
	}
	return false
}

// WorkCenter is a named resource on which work orders are scheduled.
type WorkCenter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WorkOrder is a scheduled task occupying [StartDate, EndDate) on one work
// center. Dates are calendar dates normalized to midnight; time of day carries
// no meaning.
type WorkOrder struct {
	ID           string          `json:"id"`
	WorkCenterID string          `json:"work_center_id"`
	Name         string          `json:"name"`
	Status       WorkOrderStatus `json:"status"`
	StartDate    time.Time       `json:"-"`
	EndDate      time.Time       `json:"-"`
}

// Overlaps reports whether the order's interval shares any instant with
// [start, end) under half-open semantics.
func (o WorkOrder) Overlaps(start, end time.Time) bool {
	return start.Before(o.EndDate) && end.After(o.StartDate)
}

// DateFormat is the ISO calendar-date layout used on the wire and in
// persisted documents. No time or timezone component is ever serialized.
const DateFormat = "2006-01-02"

// ParseDate parses an ISO calendar-date string into a midnight-UTC time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}

// FormatDate renders t as an ISO calendar-date string.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
