package handlers

import (
	"net/http"

	"level-proxy/internal/models"
)

// HealthHandler 存活检查，不访问上游
type HealthHandler struct {
	upstream string
}

func NewHealthHandler(upstreamName string) *HealthHandler {
	return &HealthHandler{upstream: upstreamName}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeSuccessResponse(w, models.HealthStatus{Status: "ok", Upstream: h.upstream})
}
