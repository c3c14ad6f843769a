package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/ledger"
)

// LedgerHandler provides read access to the asset transaction ledger,
// security-set ledger and repair tasks. Ledger rows are append-only;
// all writes happen through document approval.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{
		BaseHandler: base,
		service:     service,
	}
}

// HistoryByBarcode handles GET /ledger/assets/:barcode - full movement
// history, newest first.
func (h *LedgerHandler) HistoryByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		h.Error(c, apperror.NewValidation("barcode is required"))
		return
	}

	rows, err := h.service.HistoryByBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": rows})
}

// HistoryByDocument handles GET /documents/:id/ledger.
func (h *LedgerHandler) HistoryByDocument(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	rows, err := h.service.HistoryByDocument(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": rows})
}

// SecurityByDocument handles GET /documents/:id/security-sets.
func (h *LedgerHandler) SecurityByDocument(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	rows, err := h.service.SecurityByDocument(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": rows})
}

// RepairTasks handles GET /ledger/repair-tasks.
func (h *LedgerHandler) RepairTasks(c *gin.Context) {
	filter := ledger.RepairTaskFilter{
		Barcode:         c.Query("barcode"),
		RepairWarehouse: c.Query("warehouse"),
		Limit:           h.ParseIntQuery(c, "limit", 50),
		Offset:          h.ParseIntQuery(c, "offset", 0),
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid from date, RFC3339 expected"))
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid to date, RFC3339 expected"))
			return
		}
		filter.To = &t
	}

	tasks, err := h.service.RepairTasks(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": tasks})
}
