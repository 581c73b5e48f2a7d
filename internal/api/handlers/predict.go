package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/fraudlens/internal/api/dto"
	"github.com/eshaffer321/fraudlens/internal/domain/matcher"
)

// PredictHandler answers point queries.
type PredictHandler struct {
	*Base
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(base *Base) *PredictHandler {
	return &PredictHandler{Base: base}
}

// Predict handles POST /predict_single. Every outcome, including bad input,
// is reported in the result field with status 200.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBind(&req); err != nil {
		h.WriteJSON(c, http.StatusOK, dto.PredictResponse{Result: processingError(err)})
		return
	}

	result, err := h.queries.PointQuery(c.Request.Context(), req.MerchantID, req.Amount)
	if err != nil {
		h.Logger(c).Debug("point query failed", "error", err)
		h.WriteJSON(c, http.StatusOK, dto.PredictResponse{Result: processingError(err)})
		return
	}

	h.WriteJSON(c, http.StatusOK, dto.PredictResponse{Result: resultText(result)})
}

func resultText(result matcher.MatchResult) string {
	switch {
	case result.Status == matcher.NoMatch:
		return dto.ResultNoMatch
	case result.IsFraudulent():
		return dto.ResultFraud
	default:
		return dto.ResultSafe
	}
}

func processingError(err error) string {
	return "Error processing request: " + err.Error()
}
