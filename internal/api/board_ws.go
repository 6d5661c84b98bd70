/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"encoding/json"
	"net/http"

	ws "nhooyr.io/websocket"

	"github.com/friendsincode/orderboard/internal/models"
	"github.com/friendsincode/orderboard/internal/telemetry"
)

type boardMessage struct {
	Type string                     `json:"type"`
	Data []models.WorkOrderDocument `json:"data"`
}

// handleBoardFeed pushes the full work order collection on connect and again
// after every successful mutation. Client messages are ignored.
func (a *API) handleBoardFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.Accept(w, r, &ws.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.Close(ws.StatusInternalError, "server error")

	telemetry.APIWebSocketConnections.Inc()
	defer telemetry.APIWebSocketConnections.Dec()

	// CloseRead discards inbound frames and cancels the context when the
	// client goes away.
	ctx := conn.CloseRead(r.Context())

	send := func(orders []models.WorkOrder) error {
		msg := boardMessage{Type: "workOrders", Data: orderDocuments(orders)}
		raw, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		return conn.Write(ctx, ws.MessageText, raw)
	}

	if err := send(a.store.ListWorkOrders()); err != nil {
		a.logger.Debug().Err(err).Msg("initial board snapshot failed")
		return
	}

	updates := make(chan []models.WorkOrder, 8)
	unsubscribe := a.store.Subscribe(func(orders []models.WorkOrder) {
		select {
		case updates <- orders:
		default:
			// Slow consumer, drop the intermediate snapshot. The next
			// mutation delivers a fresh full collection anyway.
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			conn.Close(ws.StatusNormalClosure, "")
			return
		case orders := <-updates:
			if err := send(orders); err != nil {
				a.logger.Debug().Err(err).Msg("board feed write failed")
				return
			}
		}
	}
}
