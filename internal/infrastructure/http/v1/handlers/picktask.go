package handlers

import (
	"github.com/gin-gonic/gin"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/picktask"
	"fixtrack/internal/infrastructure/http/v1/dto"
)

// PickTaskHandler handles warehouse pick task endpoints.
type PickTaskHandler struct {
	*BaseHandler
	service *picktask.Service
}

// NewPickTaskHandler creates a new pick task handler.
func NewPickTaskHandler(base *BaseHandler, service *picktask.Service) *PickTaskHandler {
	return &PickTaskHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /pick-tasks.
func (h *PickTaskHandler) List(c *gin.Context) {
	filter := picktask.ListFilter{
		Status:    picktask.Status(c.Query("status")),
		Warehouse: c.Query("warehouse"),
		Limit:     h.ParseIntQuery(c, "limit", 50),
		Offset:    h.ParseIntQuery(c, "offset", 0),
	}

	tasks, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      tasks,
		TotalCount: int64(len(tasks)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Get handles GET /pick-tasks/:id.
func (h *PickTaskHandler) Get(c *gin.Context) {
	taskID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), taskID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, task)
}

// ListByDocument handles GET /documents/:id/pick-tasks.
func (h *PickTaskHandler) ListByDocument(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	tasks, err := h.service.ListByDocument(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": tasks})
}

// Complete handles POST /pick-tasks/:id/complete - picker assigns the
// physical barcode and photo evidence.
func (h *PickTaskHandler) Complete(c *gin.Context) {
	taskID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.CompletePickTaskRequest
	if !h.BindJSON(c, &req) {
		return
	}

	task, err := h.service.Complete(c.Request.Context(), taskID, req.Barcode, req.PhotoKey)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, task)
}

// Cancel handles POST /pick-tasks/:id/cancel.
func (h *PickTaskHandler) Cancel(c *gin.Context) {
	taskID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	task, err := h.service.Cancel(c.Request.Context(), taskID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, task)
}
