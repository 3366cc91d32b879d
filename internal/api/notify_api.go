// Package api holds the HTTP handlers for the notify and token-registration
// endpoints.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fitpulse/push-service/pkg/push"
)

// NotifyService is the dispatch orchestration the handler calls into.
type NotifyService interface {
	Notify(ctx context.Context, req *push.Request) (push.Summary, error)
}

type NotifyAPI struct {
	Service NotifyService
	Logger  *slog.Logger
}

func NewNotifyAPI(service NotifyService, logger *slog.Logger) *NotifyAPI {
	return &NotifyAPI{Service: service, Logger: logger}
}

// Notify handles POST /api/v1/notify. Shape errors map to 400, identity
// lookup misses to 404; per-target failures never surface as HTTP errors,
// only in the summary counts.
func (api *NotifyAPI) Notify(w http.ResponseWriter, r *http.Request) {
	var req push.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}

	summary, err := api.Service.Notify(r.Context(), &req)
	if err != nil {
		switch {
		case push.ErrBadRequest.Has(err):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case push.ErrNotFound.Has(err):
			writeJSONError(w, http.StatusNotFound, err.Error())
		default:
			api.Logger.Error("notify failed", "err", err)
			writeJSONError(w, http.StatusInternalServerError, "dispatch failed")
		}
		return
	}

	if summary.Total == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"sent":    0,
			"failed":  0,
			"total":   0,
			"results": []push.Outcome{},
			"message": "no recipients",
		})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
