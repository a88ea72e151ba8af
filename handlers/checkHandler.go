package handlers

import (
	"LabLedger/models"
	"LabLedger/services"
	"LabLedger/utils"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CheckHandler struct {
	service *services.CheckService
}

func NewCheckHandler(service *services.CheckService) *CheckHandler {
	return &CheckHandler{service: service}
}

func (h *CheckHandler) CreateCheck(c *gin.Context) {
	var check models.Check
	if err := c.ShouldBindJSON(&check); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateCheck(check); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &check); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, check)
}

func (h *CheckHandler) GetCheckByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("check_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid check id"})
		return
	}
	check, err := h.service.GetByID(c, uint(id))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if check == nil {
		c.JSON(404, gin.H{"error": "Check not found"})
		return
	}
	c.JSON(200, check)
}

func (h *CheckHandler) GetAllChecks(c *gin.Context) {
	checks, err := h.service.GetAll(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, checks)
}

func (h *CheckHandler) GetChecksByDoctor(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	checks, err := h.service.GetByDoctor(c, doctorID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, checks)
}

func (h *CheckHandler) UpdateCheck(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("check_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid check id"})
		return
	}
	var check models.Check
	if err := c.ShouldBindJSON(&check); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	check.ID = uint(id)
	if err := utils.ValidateCheck(check); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Update(c, &check); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, check)
}

func (h *CheckHandler) DeleteCheck(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("check_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid check id"})
		return
	}
	if err := h.service.Delete(c, uint(id)); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Check deleted"})
}
