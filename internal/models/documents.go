/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "fmt"

// Document types stored in the persistence collaborator.
const (
	DocTypeWorkCenter = "workCenter"
	DocTypeWorkOrder  = "workOrder"
)

// WorkCenterDocument is the persisted form of a work center.
type WorkCenterDocument struct {
	DocID   string            `json:"docId"`
	DocType string            `json:"docType"`
	Data    WorkCenterDocData `json:"data"`
}

// WorkCenterDocData carries the work center payload fields.
type WorkCenterDocData struct {
	Name string `json:"name"`
}

// WorkOrderDocument is the persisted form of a work order.
type WorkOrderDocument struct {
	DocID   string           `json:"docId"`
	DocType string           `json:"docType"`
	Data    WorkOrderDocData `json:"data"`
}

// WorkOrderDocData carries the work order payload fields. Dates are ISO
// calendar-date strings.
type WorkOrderDocData struct {
	Name         string          `json:"name"`
	WorkCenterID string          `json:"workCenterId"`
	Status       WorkOrderStatus `json:"status"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
}

// ToDocument converts a work center to its persisted form.
func (c WorkCenter) ToDocument() WorkCenterDocument {
	return WorkCenterDocument{
		DocID:   c.ID,
		DocType: DocTypeWorkCenter,
		Data:    WorkCenterDocData{Name: c.Name},
	}
}

// WorkCenterFromDocument converts a persisted document back to a work center.
func WorkCenterFromDocument(doc WorkCenterDocument) (WorkCenter, error) {
	if doc.DocID == "" {
		return WorkCenter{}, fmt.Errorf("work center document missing docId")
	}
	return WorkCenter{ID: doc.DocID, Name: doc.Data.Name}, nil
}

// ToDocument converts a work order to its persisted form.
func (o WorkOrder) ToDocument() WorkOrderDocument {
	return WorkOrderDocument{
		DocID:   o.ID,
		DocType: DocTypeWorkOrder,
		Data: WorkOrderDocData{
			Name:         o.Name,
			WorkCenterID: o.WorkCenterID,
			Status:       o.Status,
			StartDate:    FormatDate(o.StartDate),
			EndDate:      FormatDate(o.EndDate),
		},
	}
}

// WorkOrderFromDocument converts a persisted document back to a work order.
func WorkOrderFromDocument(doc WorkOrderDocument) (WorkOrder, error) {
	if doc.DocID == "" {
		return WorkOrder{}, fmt.Errorf("work order document missing docId")
	}
	start, err := ParseDate(doc.Data.StartDate)
	if err != nil {
		return WorkOrder{}, fmt.Errorf("work order %s: parse startDate: %w", doc.DocID, err)
	}
	end, err := ParseDate(doc.Data.EndDate)
	if err != nil {
		return WorkOrder{}, fmt.Errorf("work order %s: parse endDate: %w", doc.DocID, err)
	}
	return WorkOrder{
		ID:           doc.DocID,
		WorkCenterID: doc.Data.WorkCenterID,
		Name:         doc.Data.Name,
		Status:       doc.Data.Status,
		StartDate:    start,
		EndDate:      end,
	}, nil
}
