package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper-service/internal/document"
	"paper-service/internal/service"
)

type PaperHandler struct {
	Service *service.PaperService
}

func NewPaperHandler(s *service.PaperService) *PaperHandler {
	return &PaperHandler{Service: s}
}

func (h *PaperHandler) ListPapers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Store.Papers())
}

func (h *PaperHandler) GetCurrent(c *gin.Context) {
	cur := h.Service.Store.Current()
	if cur == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No document loaded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"paper":     cur,
		"selection": h.Service.Store.Selection(),
	})
}

func (h *PaperHandler) CreatePaper(c *gin.Context) {
	var body struct {
		AIAssisted bool `json:"ai_assisted"`
	}
	// Body is optional; an empty body means a plain authored paper.
	_ = c.ShouldBindJSON(&body)

	id := h.Service.Store.CreateDocument(body.AIAssisted)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *PaperHandler) LoadPaper(c *gin.Context) {
	if !h.Service.Store.Hydrated() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store not hydrated yet"})
		return
	}
	id := c.Param("id")
	h.Service.Store.LoadDocument(id)

	cur := h.Service.Store.Current()
	if cur == nil || cur.ID != id {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}
	c.JSON(http.StatusOK, cur)
}

func (h *PaperHandler) SavePaper(c *gin.Context) {
	if err := h.Service.SaveCurrent(context.Background()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}

// SyncPaper pushes the current paper to the remote workspace. Callers do a
// local save first; a failure here leaves that save intact.
func (h *PaperHandler) SyncPaper(c *gin.Context) {
	slug, err := h.Service.SyncCurrent(context.Background())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "synced", "slug": slug})
}

func (h *PaperHandler) DeletePaper(c *gin.Context) {
	h.Service.Store.DeleteDocument(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *PaperHandler) DuplicatePaper(c *gin.Context) {
	id := h.Service.Store.DuplicateDocument(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *PaperHandler) UpdateMetadata(c *gin.Context) {
	var patch document.MetadataPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Service.Store.UpdateMetadata(patch)
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}
