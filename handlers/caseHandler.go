package handlers

import (
	"LabLedger/models"
	"LabLedger/services"
	"LabLedger/utils"

	"github.com/gin-gonic/gin"
)

type CaseHandler struct {
	service *services.CaseService
}

func NewCaseHandler(service *services.CaseService) *CaseHandler {
	return &CaseHandler{service: service}
}

func (h *CaseHandler) CreateCase(c *gin.Context) {
	var labCase models.Case
	if err := c.ShouldBindJSON(&labCase); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateCase(labCase); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &labCase); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, labCase)
}

func (h *CaseHandler) GetCaseByID(c *gin.Context) {
	id := c.Param("case_id")
	labCase, err := h.service.GetByID(c, id)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if labCase == nil {
		c.JSON(404, gin.H{"error": "Case not found"})
		return
	}
	c.JSON(200, labCase)
}

func (h *CaseHandler) GetAllCases(c *gin.Context) {
	cases, err := h.service.GetAll(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, cases)
}

func (h *CaseHandler) GetCasesByDoctor(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	cases, err := h.service.GetByDoctor(c, doctorID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, cases)
}

func (h *CaseHandler) UpdateCase(c *gin.Context) {
	id := c.Param("case_id")
	var labCase models.Case
	if err := c.ShouldBindJSON(&labCase); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	labCase.ID = id
	if err := utils.ValidateCase(labCase); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Update(c, &labCase); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, labCase)
}

func (h *CaseHandler) DeleteCase(c *gin.Context) {
	id := c.Param("case_id")
	if err := h.service.Delete(c, id); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Case deleted"})
}
