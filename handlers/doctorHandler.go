package handlers

import (
	"LabLedger/models"
	"LabLedger/services"
	"LabLedger/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	service *services.DoctorService
	finance *services.FinanceService
}

func NewDoctorHandler(service *services.DoctorService, finance *services.FinanceService) *DoctorHandler {
	return &DoctorHandler{service: service, finance: finance}
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateDoctor(doctor); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &doctor); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	// The portal token is returned once at creation so it can be shared
	// with the doctor; it is never serialized afterwards.
	c.JSON(201, gin.H{"doctor": doctor, "access_token": doctor.AccessToken})
}

func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	id := c.Param("doctor_id")
	doctor, err := h.service.GetByID(c, id)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if doctor == nil {
		c.JSON(404, gin.H{"error": "Doctor not found"})
		return
	}
	c.JSON(200, doctor)
}

func (h *DoctorHandler) GetAllDoctors(c *gin.Context) {
	doctors, err := h.service.GetAll(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, doctors)
}

func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	id := c.Param("doctor_id")
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	doctor.ID = id
	if err := utils.ValidateDoctor(doctor); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Update(c, &doctor); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, doctor)
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id := c.Param("doctor_id")
	if err := h.service.Delete(c, id); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Doctor deleted"})
}

func (h *DoctorHandler) UpsertWorkTypePrice(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	var price models.DoctorWorkTypePrice
	if err := c.ShouldBindJSON(&price); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	price.DoctorID = doctorID
	if err := utils.ValidateWorkTypePrice(price); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.UpsertWorkTypePrice(c, &price); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, price)
}

func (h *DoctorHandler) GetDoctorBalance(c *gin.Context) {
	id := c.Param("doctor_id")
	balance, err := h.finance.DoctorBalance(c, id)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, balance)
}
