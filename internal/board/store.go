/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package board owns the authoritative work order and work center collections
// and enforces the per-center no-overlap invariant at the mutation boundary.
package board

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/friendsincode/orderboard/internal/events"
	"github.com/friendsincode/orderboard/internal/models"
	"github.com/friendsincode/orderboard/internal/storage"
	"github.com/friendsincode/orderboard/internal/telemetry"
)

// Persistence keys for the two serialized collections.
const (
	KeyWorkOrders  = "workOrders"
	KeyWorkCenters = "workCenters"
)

// Subscriber receives the full work order collection after every successful
// mutation. Callbacks run synchronously on the mutating goroutine.
type Subscriber func(orders []models.WorkOrder)

// Store holds the board state. All mutations re-validate the overlap
// invariant before committing and mirror the full collections to the
// persistence collaborator afterwards.
type Store struct {
	kv     storage.KV
	bus    *events.Bus
	logger zerolog.Logger

	mu      sync.RWMutex
	centers []models.WorkCenter
	orders  []models.WorkOrder

	subMu   sync.Mutex
	subs    map[int]Subscriber
	nextSub int
}

// New loads persisted state (falling back to the seed collections when state
// is absent, empty, or malformed) and mirrors the effective state back to
// storage.
func New(kv storage.KV, seedCenters []models.WorkCenter, seedOrders []models.WorkOrder, bus *events.Bus, logger zerolog.Logger) *Store {
	s := &Store{
		kv:     kv,
		bus:    bus,
		logger: logger.With().Str("component", "board").Logger(),
		subs:   make(map[int]Subscriber),
	}

	s.centers = s.loadCenters(seedCenters)
	s.orders = s.loadOrders(seedOrders)

	// Mirror the effective startup state so a fresh or repaired dataset is
	// persisted immediately.
	s.persistCenters(s.centers)
	s.persistOrders(s.orders)

	return s
}

func (s *Store) loadCenters(seed []models.WorkCenter) []models.WorkCenter {
	raw, ok, err := s.kv.Load(KeyWorkCenters)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load work centers, using seed data")
		return seed
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return seed
	}

	var docs []models.WorkCenterDocument
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		s.logger.Warn().Err(err).Msg("malformed persisted work centers, using seed data")
		return seed
	}
	if len(docs) == 0 {
		return seed
	}

	centers := make([]models.WorkCenter, 0, len(docs))
	for _, doc := range docs {
		center, err := models.WorkCenterFromDocument(doc)
		if err != nil {
			s.logger.Warn().Err(err).Msg("malformed work center document, using seed data")
			return seed
		}
		centers = append(centers, center)
	}
	return centers
}

func (s *Store) loadOrders(seed []models.WorkOrder) []models.WorkOrder {
	raw, ok, err := s.kv.Load(KeyWorkOrders)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load work orders, using seed data")
		return seed
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return seed
	}

	var docs []models.WorkOrderDocument
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		s.logger.Warn().Err(err).Msg("malformed persisted work orders, using seed data")
		return seed
	}
	if len(docs) == 0 {
		return seed
	}

	orders := make([]models.WorkOrder, 0, len(docs))
	for _, doc := range docs {
		order, err := models.WorkOrderFromDocument(doc)
		if err != nil {
			s.logger.Warn().Err(err).Msg("malformed work order document, using seed data")
			return seed
		}
		orders = append(orders, order)
	}
	return orders
}

// ListWorkCenters returns a snapshot of all work centers.
func (s *Store) ListWorkCenters() []models.WorkCenter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.WorkCenter, len(s.centers))
	copy(out, s.centers)
	return out
}

// GetWorkCenter looks up a work center by id.
func (s *Store) GetWorkCenter(id string) (models.WorkCenter, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, center := range s.centers {
		if center.ID == id {
			return center, true
		}
	}
	return models.WorkCenter{}, false
}

// ListWorkOrders returns a snapshot of all work orders.
func (s *Store) ListWorkOrders() []models.WorkOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.WorkOrder, len(s.orders))
	copy(out, s.orders)
	return out
}

// GetWorkOrder looks up a work order by id.
func (s *Store) GetWorkOrder(id string) (models.WorkOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, order := range s.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return models.WorkOrder{}, &NotFoundError{ID: id}
}

// OrdersForCenter returns the orders assigned to one work center, preserving
// collection order. Callers needing chronological order must sort.
func (s *Store) OrdersForCenter(workCenterID string) []models.WorkOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.WorkOrder
	for _, order := range s.orders {
		if order.WorkCenterID == workCenterID {
			out = append(out, order)
		}
	}
	return out
}

// CheckOverlap reports whether [start, end) conflicts with any order on the
// given work center, skipping excludeID when non-empty. Usable as a preflight
// before submit.
func (s *Store) CheckOverlap(workCenterID string, start, end time.Time, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlapLocked(workCenterID, start, end, excludeID)
}

func (s *Store) overlapLocked(workCenterID string, start, end time.Time, excludeID string) bool {
	for _, order := range s.orders {
		if order.WorkCenterID != workCenterID {
			continue
		}
		if excludeID != "" && order.ID == excludeID {
			continue
		}
		if order.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// CreateWorkOrder validates data, enforces the overlap invariant, assigns a
// fresh id, appends the order, and publishes the updated collection.
func (s *Store) CreateWorkOrder(data OrderData) (models.WorkOrder, error) {
	data.StartDate = models.Midnight(data.StartDate)
	data.EndDate = models.Midnight(data.EndDate)

	if err := validateOrder(data); err != nil {
		return models.WorkOrder{}, err
	}

	s.mu.Lock()
	if s.overlapLocked(data.WorkCenterID, data.StartDate, data.EndDate, "") {
		s.mu.Unlock()
		telemetry.OverlapRejectionsTotal.Inc()
		s.bus.Publish(events.EventOverlapRejected, events.Payload{
			"work_center_id": data.WorkCenterID,
		})
		return models.WorkOrder{}, &OverlapError{
			WorkCenterID: data.WorkCenterID,
			Message:      "Work order overlaps with an existing order on this work center",
		}
	}

	order := models.WorkOrder{
		ID:           newOrderID(time.Now()),
		WorkCenterID: data.WorkCenterID,
		Name:         data.Name,
		Status:       data.Status,
		StartDate:    data.StartDate,
		EndDate:      data.EndDate,
	}
	s.orders = append(s.orders, order)
	snapshot := make([]models.WorkOrder, len(s.orders))
	copy(snapshot, s.orders)
	s.mu.Unlock()

	s.persistOrders(snapshot)
	s.notify(snapshot)
	s.bus.Publish(events.EventOrderCreated, events.Payload{
		"order_id":       order.ID,
		"work_center_id": order.WorkCenterID,
	})
	telemetry.OrderMutationsTotal.WithLabelValues("create").Inc()

	return order, nil
}

// UpdateWorkOrder merges patch onto the stored record, re-validates dates and
// overlap (excluding the record itself), and commits only if validation
// passes. A failed update leaves the store unchanged.
func (s *Store) UpdateWorkOrder(id string, patch OrderPatch) (models.WorkOrder, error) {
	s.mu.Lock()

	idx := -1
	for i, order := range s.orders {
		if order.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return models.WorkOrder{}, &NotFoundError{ID: id}
	}

	merged := s.orders[idx]
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.WorkCenterID != nil {
		merged.WorkCenterID = *patch.WorkCenterID
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.StartDate != nil {
		merged.StartDate = models.Midnight(*patch.StartDate)
	}
	if patch.EndDate != nil {
		merged.EndDate = models.Midnight(*patch.EndDate)
	}

	data := OrderData{
		Name:         merged.Name,
		WorkCenterID: merged.WorkCenterID,
		Status:       merged.Status,
		StartDate:    merged.StartDate,
		EndDate:      merged.EndDate,
	}
	if err := validateOrder(data); err != nil {
		s.mu.Unlock()
		return models.WorkOrder{}, err
	}

	if s.overlapLocked(merged.WorkCenterID, merged.StartDate, merged.EndDate, id) {
		s.mu.Unlock()
		telemetry.OverlapRejectionsTotal.Inc()
		s.bus.Publish(events.EventOverlapRejected, events.Payload{
			"work_center_id": merged.WorkCenterID,
			"order_id":       id,
		})
		return models.WorkOrder{}, &OverlapError{
			WorkCenterID: merged.WorkCenterID,
			Message:      "Work order overlaps with an existing order on this work center",
		}
	}

	s.orders[idx] = merged
	snapshot := make([]models.WorkOrder, len(s.orders))
	copy(snapshot, s.orders)
	s.mu.Unlock()

	s.persistOrders(snapshot)
	s.notify(snapshot)
	s.bus.Publish(events.EventOrderUpdated, events.Payload{
		"order_id":       merged.ID,
		"work_center_id": merged.WorkCenterID,
	})
	telemetry.OrderMutationsTotal.WithLabelValues("update").Inc()

	return merged, nil
}

// DeleteWorkOrder removes the order with the given id. Deleting an absent id
// is a no-op, not an error.
func (s *Store) DeleteWorkOrder(id string) {
	s.mu.Lock()
	filtered := s.orders[:0]
	removed := false
	for _, order := range s.orders {
		if order.ID == id {
			removed = true
			continue
		}
		filtered = append(filtered, order)
	}
	s.orders = filtered
	if !removed {
		s.mu.Unlock()
		return
	}
	snapshot := make([]models.WorkOrder, len(s.orders))
	copy(snapshot, s.orders)
	s.mu.Unlock()

	s.persistOrders(snapshot)
	s.notify(snapshot)
	s.bus.Publish(events.EventOrderDeleted, events.Payload{"order_id": id})
	telemetry.OrderMutationsTotal.WithLabelValues("delete").Inc()
}

// Subscribe registers fn to receive the full collection after every
// successful mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(snapshot []models.WorkOrder) {
	s.subMu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// persistOrders mirrors the full order collection. Persistence failures are
// logged, never propagated; in-memory state stays authoritative.
func (s *Store) persistOrders(orders []models.WorkOrder) {
	docs := make([]models.WorkOrderDocument, 0, len(orders))
	for _, order := range orders {
		docs = append(docs, order.ToDocument())
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to serialize work orders")
		return
	}
	if err := s.kv.Save(KeyWorkOrders, string(raw)); err != nil {
		s.logger.Error().Err(err).Msg("failed to save work orders")
	}
}

func (s *Store) persistCenters(centers []models.WorkCenter) {
	docs := make([]models.WorkCenterDocument, 0, len(centers))
	for _, center := range centers {
		docs = append(docs, center.ToDocument())
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to serialize work centers")
		return
	}
	if err := s.kv.Save(KeyWorkCenters, string(raw)); err != nil {
		s.logger.Error().Err(err).Msg("failed to save work centers")
	}
}

// newOrderID combines a millisecond timestamp with a random component, unique
// within the process and practically unique across restarts.
func newOrderID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("wo_%d_%s", now.UnixMilli(), random[:9])
}
