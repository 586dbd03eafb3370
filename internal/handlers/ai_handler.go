package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper-service/internal/ai"
	"paper-service/internal/models"
	"paper-service/internal/service"
)

type AIHandler struct {
	Service *service.PaperService
}

func NewAIHandler(s *service.PaperService) *AIHandler {
	return &AIHandler{Service: s}
}

// GenerateQuestions asks the AI supplier for a batch and ingests it into one
// section of the current paper. A malformed supplier response is rejected
// before any mutation, so the paper never half-ingests a batch.
func (h *AIHandler) GenerateQuestions(c *gin.Context) {
	var body struct {
		SectionID string `json:"section_id" binding:"required"`
		ai.GenerationRequest
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count, err := h.Service.GenerateIntoSection(context.Background(), body.SectionID, body.GenerationRequest)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "generated", "count": count})
}

func (h *AIHandler) TranslatePaper(c *gin.Context) {
	var body struct {
		Language models.Language `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.TranslatePaper(context.Background(), body.Language); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "translated"})
}
