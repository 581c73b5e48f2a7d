package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PagesHandler renders the HTML front-end.
type PagesHandler struct {
	*Base
}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler(base *Base) *PagesHandler {
	return &PagesHandler{Base: base}
}

// Index renders the landing page.
func (h *PagesHandler) Index(c *gin.Context) {
	h.render(c, "index.html", "Home")
}

// SingleTransaction renders the point query form.
func (h *PagesHandler) SingleTransaction(c *gin.Context) {
	h.render(c, "single_transaction.html", "Single Transaction")
}

// TransactionRange renders the range query form.
func (h *PagesHandler) TransactionRange(c *gin.Context) {
	h.render(c, "transaction_range.html", "Transaction Range")
}

func (h *PagesHandler) render(c *gin.Context, page, title string) {
	c.HTML(http.StatusOK, page, gin.H{
		"Title":        title,
		"Transactions": h.queries.Ledger().Len(),
	})
}
