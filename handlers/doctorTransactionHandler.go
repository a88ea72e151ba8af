package handlers

import (
	"LabLedger/models"
	"LabLedger/services"
	"LabLedger/utils"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DoctorTransactionHandler struct {
	service *services.DoctorTransactionService
}

func NewDoctorTransactionHandler(service *services.DoctorTransactionService) *DoctorTransactionHandler {
	return &DoctorTransactionHandler{service: service}
}

func (h *DoctorTransactionHandler) CreateTransaction(c *gin.Context) {
	var transaction models.DoctorTransaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateDoctorTransaction(transaction); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &transaction); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, transaction)
}

func (h *DoctorTransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid transaction id"})
		return
	}
	transaction, err := h.service.GetByID(c, uint(id))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if transaction == nil {
		c.JSON(404, gin.H{"error": "Transaction not found"})
		return
	}
	c.JSON(200, transaction)
}

func (h *DoctorTransactionHandler) GetTransactionsByDoctor(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	transactions, err := h.service.GetByDoctor(c, doctorID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, transactions)
}

func (h *DoctorTransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid transaction id"})
		return
	}
	var transaction models.DoctorTransaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	transaction.ID = uint(id)
	if err := utils.ValidateDoctorTransaction(transaction); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Update(c, &transaction); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, transaction)
}

func (h *DoctorTransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid transaction id"})
		return
	}
	if err := h.service.Delete(c, uint(id)); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Transaction deleted"})
}
