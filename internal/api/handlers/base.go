package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/fraudlens/internal/api/dto"
	"github.com/eshaffer321/fraudlens/internal/api/middleware"
	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
	"github.com/eshaffer321/fraudlens/internal/domain/matcher"
	"github.com/eshaffer321/fraudlens/internal/domain/report"
)

// Querier is the query engine the handlers serve.
type Querier interface {
	PointQuery(ctx context.Context, merchantID, amount string) (matcher.MatchResult, error)
	RangeQuery(ctx context.Context, startDate, endDate string) (report.Report, error)
	Ledger() *ledger.Ledger
}

// Base provides shared functionality for all handlers.
type Base struct {
	queries Querier
	logger  *slog.Logger
}

// NewBase creates a new base handler over the given query engine.
func NewBase(queries Querier, logger *slog.Logger) *Base {
	if logger == nil {
		logger = slog.Default()
	}
	return &Base{queries: queries, logger: logger}
}

// WriteJSON writes a JSON response with the given status code.
func (b *Base) WriteJSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// WriteError writes an error response with the given status code.
func (b *Base) WriteError(c *gin.Context, status int, err dto.APIError) {
	c.AbortWithStatusJSON(status, err)
}

// NotFound answers unknown routes.
func (b *Base) NotFound(c *gin.Context) {
	b.WriteError(c, http.StatusNotFound, dto.NotFoundError("route"))
}

// Recover logs a recovered panic and answers 500.
func (b *Base) Recover(c *gin.Context, recovered any) {
	b.Logger(c).Error("panic while handling request",
		"path", c.Request.URL.Path,
		"panic", fmt.Sprint(recovered),
	)
	b.WriteError(c, http.StatusInternalServerError, dto.InternalError())
}

// Logger returns the request scoped logger.
func (b *Base) Logger(c *gin.Context) *slog.Logger {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return b.logger.With("request_id", id)
	}
	return b.logger
}
