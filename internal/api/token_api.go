package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fitpulse/push-service/pkg/dispatch"
)

// TokenAPI is the clients' registration door: devices register their push
// tokens here when notifications are enabled.
type TokenAPI struct {
	Store  dispatch.TokenStore
	Logger *slog.Logger
}

func NewTokenAPI(store dispatch.TokenStore, logger *slog.Logger) *TokenAPI {
	return &TokenAPI{Store: store, Logger: logger}
}

type tokenRequest struct {
	Token string `json:"token"`
}

// RegisterToken handles POST /api/v1/tokens/register.
func (api *TokenAPI) RegisterToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Token == "" {
		writeJSONError(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := api.Store.RegisterToken(ctx, userID, req.Token); err != nil {
		api.Logger.Error("failed to register token", "err", err)
		writeJSONError(w, http.StatusInternalServerError, "storage failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnregisterToken handles POST /api/v1/tokens/unregister. Records are
// deactivated, never deleted, which keeps the write idempotent.
func (api *TokenAPI) UnregisterToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := GetUserIDFromContext(ctx); !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Token == "" {
		writeJSONError(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := api.Store.SetTokenActive(ctx, req.Token, false); err != nil {
		// Log but don't fail hard; idempotency is preferred for unregister
		api.Logger.Warn("failed to unregister token", "err", err)
	}

	w.WriteHeader(http.StatusNoContent)
}
