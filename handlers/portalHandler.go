package handlers

import (
	"LabLedger/middlewares"
	"LabLedger/services"

	"github.com/gin-gonic/gin"
)

// PortalHandler serves the read-only doctor portal. The only credential is
// the opaque access token in the URL; a doctor sees their own cases,
// payments, and balance, nothing else.
type PortalHandler struct {
	doctors      *services.DoctorService
	cases        *services.CaseService
	transactions *services.DoctorTransactionService
	finance      *services.FinanceService
}

func NewPortalHandler(doctors *services.DoctorService, cases *services.CaseService, transactions *services.DoctorTransactionService, finance *services.FinanceService) *PortalHandler {
	return &PortalHandler{doctors: doctors, cases: cases, transactions: transactions, finance: finance}
}

func (h *PortalHandler) GetPortal(c *gin.Context) {
	token := c.Param("token")
	doctor, err := h.doctors.GetByAccessToken(c, token)
	if err != nil {
		middlewares.HttpError(c, "Failed to resolve portal token", 500, err)
		return
	}
	if doctor == nil {
		// Deliberately indistinguishable from a dead link
		c.JSON(404, gin.H{"error": "Not found"})
		return
	}

	cases, err := h.cases.GetByDoctor(c, doctor.ID)
	if err != nil {
		middlewares.HttpError(c, "Failed to load cases", 500, err)
		return
	}
	transactions, err := h.transactions.GetByDoctor(c, doctor.ID)
	if err != nil {
		middlewares.HttpError(c, "Failed to load transactions", 500, err)
		return
	}
	balance, err := h.finance.DoctorBalance(c, doctor.ID)
	if err != nil {
		middlewares.HttpError(c, "Failed to compute balance", 500, err)
		return
	}

	middlewares.RespondJSON(c, gin.H{
		"doctor": gin.H{
			"id":   doctor.ID,
			"name": doctor.Name,
		},
		"cases":        cases,
		"transactions": transactions,
		"balance":      balance,
	}, 200)
}
