/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package api exposes the board over HTTP: work order CRUD, overlap
// preflight, timeline projections, and the live collection feed.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/friendsincode/orderboard/internal/audit"
	"github.com/friendsincode/orderboard/internal/board"
	"github.com/friendsincode/orderboard/internal/events"
	"github.com/friendsincode/orderboard/internal/models"
	"github.com/friendsincode/orderboard/internal/timeline"
)

type API struct {
	store     *board.Store
	projector *timeline.Projector
	bus       *events.Bus
	auditSvc  *audit.Service
	logger    zerolog.Logger
}

// New creates the API router wrapper.
func New(store *board.Store, projector *timeline.Projector, bus *events.Bus, logger zerolog.Logger) *API {
	return &API{
		store:     store,
		projector: projector,
		bus:       bus,
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

func (a *API) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", a.handleHealth)

		r.Get("/work-centers", a.handleWorkCentersList)
		r.Get("/work-centers/{centerID}", a.handleWorkCenterGet)

		r.Route("/work-orders", func(r chi.Router) {
			r.Get("/", a.handleWorkOrdersList)
			r.Post("/", a.handleWorkOrdersCreate)
			r.Post("/check-overlap", a.handleCheckOverlap)
			r.Route("/{orderID}", func(r chi.Router) {
				r.Get("/", a.handleWorkOrdersGet)
				r.Patch("/", a.handleWorkOrdersUpdate)
				r.Delete("/", a.handleWorkOrdersDelete)
			})
		})

		r.Route("/timeline", func(r chi.Router) {
			r.Get("/axis", a.handleTimelineAxis)
			r.Get("/position", a.handleTimelinePosition)
			r.Get("/date", a.handleTimelineDate)
			r.Get("/bar", a.handleTimelineBar)
			r.Get("/click", a.handleTimelineClick)
		})

		r.Get("/audit", a.handleAuditList)

		r.Get("/board/ws", a.handleBoardFeed)
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleWorkCentersList(w http.ResponseWriter, r *http.Request) {
	centers := a.store.ListWorkCenters()
	docs := make([]models.WorkCenterDocument, 0, len(centers))
	for _, c := range centers {
		docs = append(docs, c.ToDocument())
	}
	writeJSON(w, http.StatusOK, docs)
}

func (a *API) handleWorkCenterGet(w http.ResponseWriter, r *http.Request) {
	center, ok := a.store.GetWorkCenter(chi.URLParam(r, "centerID"))
	if !ok {
		writeError(w, http.StatusNotFound, "work center not found")
		return
	}
	writeJSON(w, http.StatusOK, center.ToDocument())
}

func (a *API) handleWorkOrdersList(w http.ResponseWriter, r *http.Request) {
	var orders []models.WorkOrder
	if centerID := r.URL.Query().Get("workCenterId"); centerID != "" {
		orders = a.store.OrdersForCenter(centerID)
	} else {
		orders = a.store.ListWorkOrders()
	}
	writeJSON(w, http.StatusOK, orderDocuments(orders))
}

func (a *API) handleWorkOrdersGet(w http.ResponseWriter, r *http.Request) {
	order, err := a.store.GetWorkOrder(chi.URLParam(r, "orderID"))
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order.ToDocument())
}

type orderRequest struct {
	Name         string `json:"name"`
	WorkCenterID string `json:"workCenterId"`
	Status       string `json:"status"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

func (a *API) handleWorkOrdersCreate(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}
	end, err := models.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}

	order, err := a.store.CreateWorkOrder(board.OrderData{
		Name:         req.Name,
		WorkCenterID: req.WorkCenterID,
		Status:       models.WorkOrderStatus(req.Status),
		StartDate:    start,
		EndDate:      end,
	})
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order.ToDocument())
}

type orderPatchRequest struct {
	Name         *string `json:"name"`
	WorkCenterID *string `json:"workCenterId"`
	Status       *string `json:"status"`
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
}

func (a *API) handleWorkOrdersUpdate(w http.ResponseWriter, r *http.Request) {
	var req orderPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var patch board.OrderPatch
	patch.Name = req.Name
	patch.WorkCenterID = req.WorkCenterID
	if req.Status != nil {
		status := models.WorkOrderStatus(*req.Status)
		patch.Status = &status
	}
	if req.StartDate != nil {
		start, err := models.ParseDate(*req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		patch.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := models.ParseDate(*req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}
		patch.EndDate = &end
	}

	order, err := a.store.UpdateWorkOrder(chi.URLParam(r, "orderID"), patch)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order.ToDocument())
}

func (a *API) handleWorkOrdersDelete(w http.ResponseWriter, r *http.Request) {
	a.store.DeleteWorkOrder(chi.URLParam(r, "orderID"))
	w.WriteHeader(http.StatusNoContent)
}

type checkOverlapRequest struct {
	WorkCenterID string `json:"workCenterId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	ExcludeID    string `json:"excludeId"`
}

func (a *API) handleCheckOverlap(w http.ResponseWriter, r *http.Request) {
	var req checkOverlapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}
	end, err := models.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}

	overlaps := a.store.CheckOverlap(req.WorkCenterID, start, end, req.ExcludeID)
	writeJSON(w, http.StatusOK, map[string]bool{"overlaps": overlaps})
}

// axisFromQuery builds the axis for the zoom level and reference date in the
// query string. The date defaults to the current day.
func (a *API) axisFromQuery(r *http.Request) (timeline.Axis, bool, string) {
	level := timeline.ZoomLevel(r.URL.Query().Get("level"))
	if level == "" {
		level = timeline.ZoomDay
	}
	if !level.Valid() {
		return timeline.Axis{}, false, "level must be day, week, or month"
	}

	today := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			return timeline.Axis{}, false, "date must be YYYY-MM-DD"
		}
		today = parsed
	}

	axis, err := a.projector.ComputeAxis(today, level)
	if err != nil {
		return timeline.Axis{}, false, err.Error()
	}
	return axis, true, ""
}

func (a *API) handleTimelineAxis(w http.ResponseWriter, r *http.Request) {
	axis, ok, msg := a.axisFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	writeJSON(w, http.StatusOK, axis)
}

func (a *API) handleTimelinePosition(w http.ResponseWriter, r *http.Request) {
	axis, ok, msg := a.axisFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	target, err := models.ParseDate(r.URL.Query().Get("target"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "target must be YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"position": a.projector.DateToPixel(axis, target),
	})
}

func (a *API) handleTimelineDate(w http.ResponseWriter, r *http.Request) {
	axis, ok, msg := a.axisFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	position, err := strconv.ParseFloat(r.URL.Query().Get("position"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "position must be a number")
		return
	}
	date := a.projector.PixelToDate(axis, position)
	writeJSON(w, http.StatusOK, map[string]string{
		"date": models.FormatDate(date),
	})
}

func (a *API) handleTimelineBar(w http.ResponseWriter, r *http.Request) {
	axis, ok, msg := a.axisFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	start, err := models.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	end, err := models.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, a.projector.Bar(axis, start, end))
}

func (a *API) handleTimelineClick(w http.ResponseWriter, r *http.Request) {
	axis, ok, msg := a.axisFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	position, err := strconv.ParseFloat(r.URL.Query().Get("position"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "position must be a number")
		return
	}

	prefill := a.projector.ClickPrefill(axis, position)
	writeJSON(w, http.StatusOK, map[string]string{
		"startDate": models.FormatDate(prefill.StartDate),
		"endDate":   models.FormatDate(prefill.EndDate),
	})
}

// writeStoreError maps store errors onto HTTP statuses.
func (a *API) writeStoreError(w http.ResponseWriter, err error) {
	var validationErr *board.ValidationError
	var overlapErr *board.OverlapError
	var notFoundErr *board.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &overlapErr):
		writeError(w, http.StatusConflict, overlapErr.Message)
	case errors.As(err, &notFoundErr):
		writeError(w, http.StatusNotFound, notFoundErr.Error())
	default:
		a.logger.Error().Err(err).Msg("unhandled store error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func orderDocuments(orders []models.WorkOrder) []models.WorkOrderDocument {
	docs := make([]models.WorkOrderDocument, 0, len(orders))
	for _, o := range orders {
		docs = append(docs, o.ToDocument())
	}
	return docs
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
