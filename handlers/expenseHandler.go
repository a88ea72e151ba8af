package handlers

import (
	"LabLedger/models"
	"LabLedger/services"
	"LabLedger/utils"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	service *services.ExpenseService
}

func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateExpense(expense); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &expense); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, expense)
}

func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("expense_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid expense id"})
		return
	}
	expense, err := h.service.GetByID(c, uint(id))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if expense == nil {
		c.JSON(404, gin.H{"error": "Expense not found"})
		return
	}
	c.JSON(200, expense)
}

func (h *ExpenseHandler) GetAllExpenses(c *gin.Context) {
	expenses, err := h.service.GetAll(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, expenses)
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("expense_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid expense id"})
		return
	}
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	expense.ID = uint(id)
	if err := utils.ValidateExpense(expense); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Update(c, &expense); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, expense)
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("expense_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid expense id"})
		return
	}
	if err := h.service.Delete(c, uint(id)); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Expense deleted"})
}

func (h *ExpenseHandler) CreateExpenseType(c *gin.Context) {
	var expenseType models.ExpenseType
	if err := c.ShouldBindJSON(&expenseType); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if expenseType.Name == "" {
		c.JSON(400, gin.H{"error": "name is required"})
		return
	}
	if err := h.service.CreateType(c, &expenseType); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, expenseType)
}

func (h *ExpenseHandler) GetAllExpenseTypes(c *gin.Context) {
	types, err := h.service.GetAllTypes(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, types)
}

func (h *ExpenseHandler) DeleteExpenseType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("type_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid expense type id"})
		return
	}
	if err := h.service.DeleteType(c, uint(id)); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Expense type deleted"})
}
