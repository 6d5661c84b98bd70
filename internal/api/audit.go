/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"net/http"
	"strconv"

	"github.com/friendsincode/orderboard/internal/audit"
	"github.com/friendsincode/orderboard/internal/models"
)

// SetAuditService attaches the audit trail. Without it the audit endpoint
// reports 503.
func (a *API) SetAuditService(svc *audit.Service) {
	a.auditSvc = svc
}

type auditResponse struct {
	Entries []models.AuditLog `json:"entries"`
	Total   int64             `json:"total"`
}

func (a *API) handleAuditList(w http.ResponseWriter, r *http.Request) {
	if a.auditSvc == nil {
		writeError(w, http.StatusServiceUnavailable, "audit trail not configured")
		return
	}

	var filters audit.QueryFilters
	q := r.URL.Query()
	if v := q.Get("orderId"); v != "" {
		filters.WorkOrderID = &v
	}
	if v := q.Get("workCenterId"); v != "" {
		filters.WorkCenterID = &v
	}
	if v := q.Get("action"); v != "" {
		action := models.AuditAction(v)
		filters.Action = &action
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filters.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		filters.Offset = offset
	}

	entries, total, err := a.auditSvc.Query(r.Context(), filters)
	if err != nil {
		a.logger.Error().Err(err).Msg("audit query failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, auditResponse{Entries: entries, Total: total})
}
