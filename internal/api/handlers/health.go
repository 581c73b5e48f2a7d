package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/fraudlens/internal/api/dto"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	*Base
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(base *Base) *HealthHandler {
	return &HealthHandler{Base: base}
}

// Get handles the health check request.
func (h *HealthHandler) Get(c *gin.Context) {
	h.WriteJSON(c, http.StatusOK, dto.NewHealthResponse(h.queries.Ledger().Len()))
}
