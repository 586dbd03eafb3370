package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paper-service/internal/document"
	"paper-service/internal/models"
)

type QuestionHandler struct {
	Store *document.Store
}

func NewQuestionHandler(store *document.Store) *QuestionHandler {
	return &QuestionHandler{Store: store}
}

func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	var body struct {
		SectionID string              `json:"section_id" binding:"required"`
		Type      models.QuestionType `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidType(body.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown question type"})
		return
	}
	id := h.Store.AddQuestion(body.SectionID, body.Type)
	if id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var patch document.QuestionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Store.UpdateQuestion(c.Param("sectionId"), c.Param("id"), patch)
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	h.Store.DeleteQuestion(c.Param("sectionId"), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *QuestionHandler) DuplicateQuestion(c *gin.Context) {
	id := h.Store.DuplicateQuestion(c.Param("sectionId"), c.Param("id"))
	if id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// MoveQuestion serves the drag-and-drop reorder intent: cross-section when
// the ids differ, positional within one section otherwise.
func (h *QuestionHandler) MoveQuestion(c *gin.Context) {
	var body struct {
		FromSectionID string `json:"from_section_id" binding:"required"`
		ToSectionID   string `json:"to_section_id" binding:"required"`
		QuestionID    string `json:"question_id" binding:"required"`
		NewIndex      int    `json:"new_index"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Store.MoveQuestion(body.FromSectionID, body.ToSectionID, body.QuestionID, body.NewIndex)
	c.JSON(http.StatusOK, gin.H{"message": "moved"})
}

func (h *QuestionHandler) ReorderQuestions(c *gin.Context) {
	var body struct {
		Order []string `json:"order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Store.ReorderQuestions(c.Param("sectionId"), body.Order)
	c.JSON(http.StatusOK, gin.H{"message": "reordered"})
}

func (h *QuestionHandler) SelectQuestion(c *gin.Context) {
	var body struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Store.SelectQuestion(body.ID)
	c.JSON(http.StatusOK, gin.H{"selection": h.Store.Selection()})
}
