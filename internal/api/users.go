package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/leonardcser/users-cache/internal/cache"
	"github.com/leonardcser/users-cache/internal/logger"
	"github.com/leonardcser/users-cache/internal/users"
)

// Handler owns the HTTP surface.
type Handler struct {
	getUser func(ctx context.Context, id int) (users.User, error)
}

// NewHandler wires the store's lookup through response caching under the
// "users" namespace with the given TTL.
func NewHandler(store *users.Store, kv cache.KV, ttl time.Duration) *Handler {
	return &Handler{
		getUser: cache.Response(kv, cache.KeyFunc("users"), ttl, store.Get),
	}
}

// Register attaches all routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /users/{id}", h.handleGetUser)
	mux.HandleFunc("GET /healthz", handleHealthz)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	u, err := h.getUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		logger.Errorf("get user %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("encode response: %v", err)
	}
}
