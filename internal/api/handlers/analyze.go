package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/fraudlens/internal/api/dto"
	"github.com/eshaffer321/fraudlens/internal/domain/rangefilter"
)

// AnalyzeHandler answers range queries.
type AnalyzeHandler struct {
	*Base
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(base *Base) *AnalyzeHandler {
	return &AnalyzeHandler{Base: base}
}

// Analyze handles POST /analyze_range.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.WriteJSON(c, http.StatusOK, dto.ErrorResponse{Error: processingError(err)})
		return
	}

	r, err := h.queries.RangeQuery(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		h.WriteJSON(c, http.StatusOK, h.rangeError(c, req, err))
		return
	}

	h.WriteJSON(c, http.StatusOK, dto.NewRangeResponse(r))
}

func (h *AnalyzeHandler) rangeError(c *gin.Context, req dto.AnalyzeRequest, err error) dto.ErrorResponse {
	var invalidRange *rangefilter.InvalidRangeError
	if errors.As(err, &invalidRange) {
		return dto.ErrorResponse{Error: "Start date must be before end date"}
	}

	var empty *rangefilter.EmptyRangeError
	if errors.As(err, &empty) {
		resp := dto.ErrorResponse{
			Error: "No transactions found between " + req.StartDate + " and " + req.EndDate,
		}
		if empty.HasSpan {
			resp.DebugInfo = dto.DatasetSpanInfo(empty.LedgerStart, empty.LedgerEnd)
		}
		return resp
	}

	h.Logger(c).Warn("range query failed", "error", err)
	return dto.ErrorResponse{Error: processingError(err)}
}
