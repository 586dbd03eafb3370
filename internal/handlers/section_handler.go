package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paper-service/internal/document"
)

type SectionHandler struct {
	Store *document.Store
}

func NewSectionHandler(store *document.Store) *SectionHandler {
	return &SectionHandler{Store: store}
}

func (h *SectionHandler) AddSection(c *gin.Context) {
	h.Store.AddSection()
	c.JSON(http.StatusCreated, gin.H{"selection": h.Store.Selection()})
}

func (h *SectionHandler) UpdateSection(c *gin.Context) {
	var patch document.SectionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Store.UpdateSection(c.Param("id"), patch)
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *SectionHandler) DeleteSection(c *gin.Context) {
	h.Store.DeleteSection(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *SectionHandler) ReorderSections(c *gin.Context) {
	var body struct {
		Order []string `json:"order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Store.ReorderSections(body.Order)
	c.JSON(http.StatusOK, gin.H{"message": "reordered"})
}

func (h *SectionHandler) SelectSection(c *gin.Context) {
	var body struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Store.SelectSection(body.ID)
	c.JSON(http.StatusOK, gin.H{"selection": h.Store.Selection()})
}
