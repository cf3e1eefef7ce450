package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/termination/collab-text-editor/internal/document/service"
	"github.com/termination/collab-text-editor/pkg/logger"
	"github.com/termination/collab-text-editor/pkg/metrics"
)

type CreateDocumentRequest struct {
	Title   string `json:"title"`
	OwnerID string `json:"ownerId"`
}

// UpdateDocumentRequest carries a partial update: nil fields are left
// unchanged.
type UpdateDocumentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// DocumentHandler exposes document CRUD over the document service.
type DocumentHandler struct {
	svc *service.Service
}

func NewDocumentHandler(svc *service.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Register routes under /api/documents
func (h *DocumentHandler) Register(rg *gin.RouterGroup) {
	d := rg.Group("/api/documents")
	d.POST("", h.Create)
	d.GET("/:docId", h.Get)
	d.PUT("/:docId", h.Update)
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := h.svc.Create(c.Request.Context(), req.Title, req.OwnerID)
	if err != nil {
		logger.Errorf("create document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	metrics.DocumentsCreated.Inc()
	c.JSON(http.StatusOK, gin.H{"docId": doc.DocID, "title": doc.Title})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("docId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		logger.Errorf("get document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) Update(c *gin.Context) {
	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := h.svc.Update(c.Request.Context(), c.Param("docId"), req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		logger.Errorf("update document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, doc)
}
