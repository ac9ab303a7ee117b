package handler

import "net/http"

// HealthHandler exposes a liveness endpoint. There are no external
// dependencies to probe; if the process is up, it's healthy.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
