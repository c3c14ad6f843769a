package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fixtrack/internal/core/apperror"
	"fixtrack/internal/core/id"
	"fixtrack/internal/domain/approval"
	"fixtrack/internal/domain/document"
	"fixtrack/internal/infrastructure/http/v1/dto"
)

// DocumentHandler handles logistics document endpoints. Approval and
// rejection delegate to the approval engine; everything else goes
// through the document service.
type DocumentHandler struct {
	*BaseHandler
	service *document.Service
	engine  *approval.Engine
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(base *BaseHandler, service *document.Service, engine *approval.Engine) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler: base,
		service:     service,
		engine:      engine,
	}
}

// List handles GET /documents.
func (h *DocumentHandler) List(c *gin.Context) {
	filter := document.ListFilter{
		Type:          document.Type(c.Query("type")),
		Status:        document.Status(c.Query("status")),
		CreatorVendor: c.Query("creatorVendor"),
		Search:        c.Query("search"),
		Limit:         h.ParseIntQuery(c, "limit", 50),
		Offset:        h.ParseIntQuery(c, "offset", 0),
	}

	docs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      docs,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Create handles POST /documents.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// Get handles GET /documents/:id - full aggregate.
func (h *DocumentHandler) Get(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Update handles PUT /documents/:id.
func (h *DocumentHandler) Update(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(doc)

	if err := h.service.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Submit handles POST /documents/:id/submit - draft -> submitted.
func (h *DocumentHandler) Submit(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.Submit(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Delete handles DELETE /documents/:id - draft only.
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Approve handles POST /documents/:id/approve. Admin only; materializes
// pick tasks or ledger rows depending on the document type.
func (h *DocumentHandler) Approve(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.ApproveDocumentRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	result, err := h.engine.Approve(c.Request.Context(), docID, req.OtherActivity, req.TransactionStatus)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Reject handles POST /documents/:id/reject. Admin only.
func (h *DocumentHandler) Reject(c *gin.Context) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.RejectDocumentRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	result, err := h.engine.Reject(c.Request.Context(), docID, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}
