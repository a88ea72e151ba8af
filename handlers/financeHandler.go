package handlers

import (
	"LabLedger/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	finance *services.FinanceService
}

func NewFinanceHandler(finance *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{finance: finance}
}

func (h *FinanceHandler) GetCapital(c *gin.Context) {
	capital, err := h.finance.Capital(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, capital)
}

// Reconcile recomputes capital and partner shares on demand. Mutations
// already reconcile themselves; this endpoint exists for manual repair.
func (h *FinanceHandler) Reconcile(c *gin.Context) {
	if err := h.finance.Reconcile(c); err != nil {
		if errors.Is(err, services.ErrPercentageDrift) {
			c.JSON(422, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	capital, err := h.finance.Capital(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, capital)
}
