/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	// Occupies [06-05, 06-10).
	order := WorkOrder{StartDate: day("2024-06-05"), EndDate: day("2024-06-10")}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"strictly before", "2024-06-01", "2024-06-04", false},
		{"touching start", "2024-06-01", "2024-06-05", false},
		{"overlapping start", "2024-06-03", "2024-06-06", true},
		{"contained", "2024-06-06", "2024-06-08", true},
		{"containing", "2024-06-01", "2024-06-20", true},
		{"overlapping end", "2024-06-09", "2024-06-12", true},
		{"touching end", "2024-06-10", "2024-06-14", false},
		{"strictly after", "2024-06-11", "2024-06-14", false},
		{"identical", "2024-06-05", "2024-06-10", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := order.Overlaps(day(tc.start), day(tc.end)); got != tc.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-06-15")
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Hour() != 0 || parsed.Location() != time.UTC {
		t.Errorf("expected UTC midnight, got %v", parsed)
	}

	for _, bad := range []string{"", "June 15 2024", "2024-6-15", "15/06/2024"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []WorkOrderStatus{StatusOpen, StatusInProgress, StatusComplete, StatusBlocked} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if WorkOrderStatus("paused").Valid() {
		t.Error("paused should be invalid")
	}
}

func TestWorkOrderDocumentRoundTrip(t *testing.T) {
	order := WorkOrder{
		ID:           "wo_123",
		WorkCenterID: "wc_001",
		Name:         "Production Run",
		Status:       StatusOpen,
		StartDate:    day("2024-06-05"),
		EndDate:      day("2024-06-10"),
	}

	doc := order.ToDocument()
	if doc.DocType != DocTypeWorkOrder || doc.Data.StartDate != "2024-06-05" {
		t.Fatalf("unexpected document: %+v", doc)
	}

	restored, err := WorkOrderFromDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	if restored != order {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", restored, order)
	}
}

func TestWorkOrderFromDocumentRejectsBadDates(t *testing.T) {
	doc := WorkOrderDocument{
		DocID:   "wo_123",
		DocType: DocTypeWorkOrder,
	}
	doc.Data.StartDate = "yesterday"
	doc.Data.EndDate = "2024-06-10"

	if _, err := WorkOrderFromDocument(doc); err == nil {
		t.Fatal("expected date parse error")
	}
}
