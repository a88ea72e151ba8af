package handlers

import (
	"LabLedger/models"
	"LabLedger/services"
	"LabLedger/utils"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type PartnerHandler struct {
	service *services.PartnerService
}

func NewPartnerHandler(service *services.PartnerService) *PartnerHandler {
	return &PartnerHandler{service: service}
}

func (h *PartnerHandler) CreatePartner(c *gin.Context) {
	var partner models.Partner
	if err := c.ShouldBindJSON(&partner); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidatePartner(partner); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &partner); err != nil {
		if errors.Is(err, services.ErrPercentageDrift) {
			c.JSON(422, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, partner)
}

func (h *PartnerHandler) GetPartnerByID(c *gin.Context) {
	id := c.Param("partner_id")
	partner, err := h.service.GetByID(c, id)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if partner == nil {
		c.JSON(404, gin.H{"error": "Partner not found"})
		return
	}
	c.JSON(200, partner)
}

func (h *PartnerHandler) GetAllPartners(c *gin.Context) {
	partners, err := h.service.GetAll(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, partners)
}

func (h *PartnerHandler) GetPartnerSummary(c *gin.Context) {
	id := c.Param("partner_id")
	summary, err := h.service.Summary(c, id)
	if err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			c.JSON(404, gin.H{"error": "Partner not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, summary)
}

func (h *PartnerHandler) UpdatePartner(c *gin.Context) {
	id := c.Param("partner_id")
	var partner models.Partner
	if err := c.ShouldBindJSON(&partner); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	partner.ID = id
	if err := utils.ValidatePartner(partner); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Update(c, &partner); err != nil {
		if errors.Is(err, services.ErrPercentageDrift) {
			c.JSON(422, gin.H{"error": err.Error()})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, partner)
}

func (h *PartnerHandler) DeletePartner(c *gin.Context) {
	id := c.Param("partner_id")
	if err := h.service.Delete(c, id); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Partner deleted"})
}

type withdrawalPayload struct {
	Amount      float64   `json:"amount"`
	Source      string    `json:"source"`
	Policy      string    `json:"policy"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

func (h *PartnerHandler) Withdraw(c *gin.Context) {
	partnerID := c.Param("partner_id")
	var payload withdrawalPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.service.Withdraw(c, services.WithdrawalRequest{
		PartnerID:   partnerID,
		Amount:      payload.Amount,
		Source:      payload.Source,
		Policy:      services.OverdrawPolicy(payload.Policy),
		Date:        payload.Date,
		Description: payload.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPartnerNotFound):
			c.JSON(404, gin.H{"error": "Partner not found"})
		case errors.Is(err, services.ErrInsufficientBalance):
			c.JSON(422, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPercentageDrift):
			c.JSON(422, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(201, transaction)
}

type depositPayload struct {
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

func (h *PartnerHandler) Deposit(c *gin.Context) {
	partnerID := c.Param("partner_id")
	var payload depositPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.service.Deposit(c, partnerID, payload.Amount, payload.Date, payload.Description)
	if err != nil {
		if errors.Is(err, services.ErrPartnerNotFound) {
			c.JSON(404, gin.H{"error": "Partner not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, transaction)
}

func (h *PartnerHandler) GetPartnerTransactions(c *gin.Context) {
	partnerID := c.Param("partner_id")
	transactions, err := h.service.GetTransactions(c, partnerID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, transactions)
}

func (h *PartnerHandler) UpdatePartnerTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid transaction id"})
		return
	}

	existing, err := h.service.GetTransaction(c, uint(id))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if existing == nil {
		c.JSON(404, gin.H{"error": "Transaction not found"})
		return
	}

	var transaction models.PartnerTransaction
	if err := c.ShouldBindJSON(&transaction); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	transaction.ID = uint(id)
	transaction.PartnerID = existing.PartnerID
	if err := h.service.UpdateTransaction(c, &transaction); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, transaction)
}

func (h *PartnerHandler) DeletePartnerTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("transaction_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid transaction id"})
		return
	}
	if err := h.service.DeleteTransaction(c, uint(id)); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Transaction deleted"})
}
