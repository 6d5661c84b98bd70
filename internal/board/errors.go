/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package board

import "fmt"

// ValidationError reports malformed or missing fields, including inverted or
// zero-length date ranges. The message is suitable for direct display.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// OverlapError reports an interval conflict with an existing order on the
// same work center.
type OverlapError struct {
	WorkCenterID string
	Message      string
}

func (e *OverlapError) Error() string {
	return e.Message
}

// NotFoundError reports an operation referencing an unknown work order id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("work order %s not found", e.ID)
}
