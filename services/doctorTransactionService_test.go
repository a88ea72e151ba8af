package services

import (
	"LabLedger/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentAffected(t *testing.T) {
	assert.True(t, paymentAffected(models.DoctorTxPayment))
	assert.True(t, paymentAffected(models.DoctorTxDue, models.DoctorTxPayment))
	assert.True(t, paymentAffected(models.DoctorTxPayment, models.DoctorTxDue))
	assert.True(t, paymentAffected("", models.DoctorTxPayment))

	assert.False(t, paymentAffected(models.DoctorTxDue))
	assert.False(t, paymentAffected(models.DoctorTxDue, models.DoctorTxDue))
	assert.False(t, paymentAffected())
}
