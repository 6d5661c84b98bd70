/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBundledOrdersRespectOverlapRule(t *testing.T) {
	orders := Orders(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	for i, a := range orders {
		for _, b := range orders[i+1:] {
			if a.WorkCenterID == b.WorkCenterID && a.Overlaps(b.StartDate, b.EndDate) {
				t.Errorf("seed orders %s and %s overlap on %s", a.ID, b.ID, a.WorkCenterID)
			}
		}
	}
}

func TestBundledOrdersReferenceKnownCenters(t *testing.T) {
	centers := make(map[string]bool)
	for _, c := range Centers() {
		centers[c.ID] = true
	}
	for _, o := range Orders(time.Now()) {
		if !centers[o.WorkCenterID] {
			t.Errorf("order %s references unknown center %s", o.ID, o.WorkCenterID)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `
work_centers:
  - id: wc_100
    name: Paint Booth
work_orders:
  - id: wo_100
    work_center_id: wc_100
    name: Primer Batch
    status: open
    start_date: "2024-06-01"
    end_date: "2024-06-05"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	centers, orders, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(centers) != 1 || centers[0].Name != "Paint Booth" {
		t.Fatalf("unexpected centers: %+v", centers)
	}
	if len(orders) != 1 || orders[0].EndDate.Day() != 5 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestLoadFileRejectsOverlap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `
work_centers:
  - id: wc_100
    name: Paint Booth
work_orders:
  - id: wo_100
    work_center_id: wc_100
    name: Primer Batch
    status: open
    start_date: "2024-06-01"
    end_date: "2024-06-05"
  - id: wo_101
    work_center_id: wc_100
    name: Clear Coat
    status: open
    start_date: "2024-06-04"
    end_date: "2024-06-08"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadFile(path); err == nil {
		t.Fatal("expected overlap error")
	}
}

func TestLoadFileRejectsBadStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `
work_centers:
  - id: wc_100
    name: Paint Booth
work_orders:
  - id: wo_100
    work_center_id: wc_100
    name: Primer Batch
    status: paused
    start_date: "2024-06-01"
    end_date: "2024-06-05"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadFile(path); err == nil {
		t.Fatal("expected status error")
	}
}
