package handlers

import (
	"LabLedger/models"
	"LabLedger/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type WorkTypeHandler struct {
	service *services.WorkTypeService
}

func NewWorkTypeHandler(service *services.WorkTypeService) *WorkTypeHandler {
	return &WorkTypeHandler{service: service}
}

func (h *WorkTypeHandler) CreateWorkType(c *gin.Context) {
	var workType models.WorkType
	if err := c.ShouldBindJSON(&workType); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if workType.Name == "" {
		c.JSON(400, gin.H{"error": "name is required"})
		return
	}
	if err := h.service.Create(c, &workType); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, workType)
}

func (h *WorkTypeHandler) GetAllWorkTypes(c *gin.Context) {
	types, err := h.service.GetAll(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, types)
}

func (h *WorkTypeHandler) UpdateWorkType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("work_type_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid work type id"})
		return
	}
	var workType models.WorkType
	if err := c.ShouldBindJSON(&workType); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	workType.ID = uint(id)
	if err := h.service.Update(c, &workType); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, workType)
}

func (h *WorkTypeHandler) DeleteWorkType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("work_type_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid work type id"})
		return
	}
	if err := h.service.Delete(c, uint(id)); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Work type deleted"})
}
