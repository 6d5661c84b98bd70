/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/friendsincode/orderboard/internal/events"
	"github.com/friendsincode/orderboard/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestLogAndQuery(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, events.NewBus(), zerolog.Nop())
	ctx := context.Background()

	entries := []*models.AuditLog{
		{Action: models.AuditActionOrderCreate, WorkOrderID: "wo_001", WorkCenterID: "wc_001"},
		{Action: models.AuditActionOrderUpdate, WorkOrderID: "wo_001", WorkCenterID: "wc_001"},
		{Action: models.AuditActionOrderDelete, WorkOrderID: "wo_002", WorkCenterID: "wc_002"},
	}
	for _, e := range entries {
		if err := svc.Log(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	logs, total, err := svc.Query(ctx, QueryFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(logs) != 3 {
		t.Fatalf("total = %d, len = %d, want 3", total, len(logs))
	}

	orderID := "wo_001"
	logs, total, err = svc.Query(ctx, QueryFilters{WorkOrderID: &orderID})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("filtered total = %d, want 2", total)
	}
	for _, l := range logs {
		if l.WorkOrderID != "wo_001" {
			t.Errorf("unexpected entry: %+v", l)
		}
	}

	action := models.AuditActionOrderDelete
	_, total, err = svc.Query(ctx, QueryFilters{Action: &action})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Fatalf("action filter total = %d, want 1", total)
	}
}

func TestQueryPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, events.NewBus(), zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := &models.AuditLog{
			Action:    models.AuditActionOrderCreate,
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := svc.Log(ctx, entry); err != nil {
			t.Fatal(err)
		}
	}

	logs, total, err := svc.Query(ctx, QueryFilters{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(logs) != 2 {
		t.Fatalf("page size = %d, want 2", len(logs))
	}
}

func TestStartRecordsBusEvents(t *testing.T) {
	db := newTestDB(t)
	bus := events.NewBus()
	svc := NewService(db, bus, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()

	// Give the service a moment to subscribe before publishing.
	time.Sleep(50 * time.Millisecond)
	bus.Publish(events.EventOrderCreated, events.Payload{
		"order_id":       "wo_009",
		"work_center_id": "wc_004",
	})

	deadline := time.After(2 * time.Second)
	for {
		logs, total, err := svc.Query(context.Background(), QueryFilters{})
		if err != nil {
			t.Fatal(err)
		}
		if total == 1 {
			if logs[0].WorkOrderID != "wo_009" || logs[0].Action != models.AuditActionOrderCreate {
				t.Fatalf("unexpected entry: %+v", logs[0])
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("audit entry never recorded")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
