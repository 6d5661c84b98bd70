/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package seed provides the fallback dataset used when persisted board state
// is absent or unreadable.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/orderboard/internal/models"
)

// Centers returns the bundled work centers.
func Centers() []models.WorkCenter {
	return []models.WorkCenter{
		{ID: "wc_001", Name: "Extrusion Line A"},
		{ID: "wc_002", Name: "CNC Machine 1"},
		{ID: "wc_003", Name: "Assembly Station"},
		{ID: "wc_004", Name: "Quality Control"},
		{ID: "wc_005", Name: "Packaging Line"},
	}
}

// Orders returns the bundled work orders with dates placed relative to the
// given reference day, so a fresh board always shows activity around today.
// The dataset respects the per-center no-overlap rule.
func Orders(today time.Time) []models.WorkOrder {
	today = models.Midnight(today)
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	return []models.WorkOrder{
		{ID: "wo_001", WorkCenterID: "wc_001", Name: "Production Run 1042", Status: models.StatusComplete, StartDate: day(-10), EndDate: day(-5)},
		{ID: "wo_002", WorkCenterID: "wc_001", Name: "Production Run 1043", Status: models.StatusInProgress, StartDate: day(-3), EndDate: day(4)},
		{ID: "wo_003", WorkCenterID: "wc_001", Name: "Production Run 1044", Status: models.StatusOpen, StartDate: day(5), EndDate: day(12)},
		{ID: "wo_004", WorkCenterID: "wc_002", Name: "Precision Milling Batch 88", Status: models.StatusComplete, StartDate: day(-7), EndDate: day(-2)},
		{ID: "wo_005", WorkCenterID: "wc_002", Name: "Tooling Changeover", Status: models.StatusBlocked, StartDate: day(0), EndDate: day(7)},
		{ID: "wo_006", WorkCenterID: "wc_003", Name: "Subassembly Build A7", Status: models.StatusInProgress, StartDate: day(-5), EndDate: day(5)},
		{ID: "wo_007", WorkCenterID: "wc_003", Name: "Subassembly Build A8", Status: models.StatusOpen, StartDate: day(5), EndDate: day(12)},
		{ID: "wo_008", WorkCenterID: "wc_004", Name: "Incoming Inspection Lot 19", Status: models.StatusComplete, StartDate: day(-8), EndDate: day(-4)},
		{ID: "wo_009", WorkCenterID: "wc_004", Name: "Final Inspection Lot 20", Status: models.StatusInProgress, StartDate: day(-1), EndDate: day(6)},
		{ID: "wo_010", WorkCenterID: "wc_005", Name: "Retail Packaging Run", Status: models.StatusOpen, StartDate: day(1), EndDate: day(8)},
	}
}

type fileCenter struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type fileOrder struct {
	ID           string `yaml:"id"`
	WorkCenterID string `yaml:"work_center_id"`
	Name         string `yaml:"name"`
	Status       string `yaml:"status"`
	StartDate    string `yaml:"start_date"`
	EndDate      string `yaml:"end_date"`
}

type file struct {
	WorkCenters []fileCenter `yaml:"work_centers"`
	WorkOrders  []fileOrder  `yaml:"work_orders"`
}

// LoadFile reads a YAML seed definition, replacing the bundled dataset.
// Dates in the file are absolute.
func LoadFile(path string) ([]models.WorkCenter, []models.WorkOrder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(f.WorkCenters) == 0 {
		return nil, nil, fmt.Errorf("seed file %s defines no work centers", path)
	}

	centers := make([]models.WorkCenter, 0, len(f.WorkCenters))
	for _, c := range f.WorkCenters {
		if c.ID == "" || c.Name == "" {
			return nil, nil, fmt.Errorf("seed work center requires id and name")
		}
		centers = append(centers, models.WorkCenter{ID: c.ID, Name: c.Name})
	}

	orders := make([]models.WorkOrder, 0, len(f.WorkOrders))
	for _, o := range f.WorkOrders {
		status := models.WorkOrderStatus(o.Status)
		if !status.Valid() {
			return nil, nil, fmt.Errorf("seed order %s has invalid status %q", o.ID, o.Status)
		}
		start, err := models.ParseDate(o.StartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("seed order %s: %w", o.ID, err)
		}
		end, err := models.ParseDate(o.EndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("seed order %s: %w", o.ID, err)
		}
		if !end.After(start) {
			return nil, nil, fmt.Errorf("seed order %s: end date must be after start date", o.ID)
		}
		orders = append(orders, models.WorkOrder{
			ID:           o.ID,
			WorkCenterID: o.WorkCenterID,
			Name:         o.Name,
			Status:       status,
			StartDate:    start,
			EndDate:      end,
		})
	}

	for i, a := range orders {
		for _, b := range orders[i+1:] {
			if a.WorkCenterID == b.WorkCenterID && a.Overlaps(b.StartDate, b.EndDate) {
				return nil, nil, fmt.Errorf("seed orders %s and %s overlap on %s", a.ID, b.ID, a.WorkCenterID)
			}
		}
	}

	return centers, orders, nil
}
