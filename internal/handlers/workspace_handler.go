package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper-service/internal/service"
	"paper-service/internal/workspace"
)

type WorkspaceHandler struct {
	Service *service.PaperService
}

func NewWorkspaceHandler(s *service.PaperService) *WorkspaceHandler {
	return &WorkspaceHandler{Service: s}
}

func (h *WorkspaceHandler) ListPapers(c *gin.Context) {
	records, err := h.Service.ListWorkspacePapers(context.Background(), c.Query("subject"), c.Query("class"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// ImportPaper takes a workspace record and loads it into the editor as a
// fresh local document.
func (h *WorkspaceHandler) ImportPaper(c *gin.Context) {
	var record workspace.PaperRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := h.Service.ImportRecord(record)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
