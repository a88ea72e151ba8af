package handlers

import (
	"LabLedger/services"
	"LabLedger/utils"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exports *services.ExportService
	doctors *services.DoctorService
}

func NewExportHandler(exports *services.ExportService, doctors *services.DoctorService) *ExportHandler {
	return &ExportHandler{exports: exports, doctors: doctors}
}

func (h *ExportHandler) DoctorStatementExcel(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	f, err := h.exports.DoctorStatementExcel(c, doctorID)
	if err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			c.JSON(404, gin.H{"error": "Doctor not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	fileName := fmt.Sprintf("statement_%s_%s.xlsx", doctorID, time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(500, gin.H{"error": "Failed to write Excel file"})
	}
}

func (h *ExportHandler) DoctorStatementPDF(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	pdf, err := h.exports.DoctorStatementPDF(c, doctorID)
	if err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			c.JSON(404, gin.H{"error": "Doctor not found"})
			return
		}
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	fileName := fmt.Sprintf("statement_%s_%s.pdf", doctorID, time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(200, "application/pdf", pdf)
}

func (h *ExportHandler) ExportBackup(c *gin.Context) {
	data, err := h.exports.ExportBackup(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	fileName := fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(200, "application/json", data)
}

func (h *ExportHandler) ImportBackup(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "failed to read request body"})
		return
	}
	if err := h.exports.ImportBackup(c, data); err != nil {
		c.JSON(422, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Backup restored"})
}

type whatsAppPayload struct {
	Message string `json:"message"`
}

// WhatsAppLink builds a wa.me link for the doctor's phone with a prefilled
// message, typically the balance reminder.
func (h *ExportHandler) WhatsAppLink(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	doctor, err := h.doctors.GetByID(c, doctorID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if doctor == nil {
		c.JSON(404, gin.H{"error": "Doctor not found"})
		return
	}

	var payload whatsAppPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	link, err := utils.WhatsAppLink(doctor.Phone, payload.Message)
	if err != nil {
		c.JSON(422, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"link": link})
}
