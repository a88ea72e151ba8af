package utils

import (
	"LabLedger/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCase() models.Case {
	return models.Case{
		PatientName:    "مريض",
		DoctorID:       "DR-000001",
		WorkType:       "زيركون",
		TeethCount:     3,
		Price:          450,
		Status:         models.CaseStatusInProgress,
		SubmissionDate: time.Now(),
	}
}

func TestValidateCase(t *testing.T) {
	assert.NoError(t, ValidateCase(validCase()))

	missingPatient := validCase()
	missingPatient.PatientName = ""
	assert.Error(t, ValidateCase(missingPatient))

	zeroTeeth := validCase()
	zeroTeeth.TeethCount = 0
	assert.Error(t, ValidateCase(zeroTeeth))

	badStatus := validCase()
	badStatus.Status = "done"
	assert.Error(t, ValidateCase(badStatus))

	// An empty status is allowed; intake defaults it
	noStatus := validCase()
	noStatus.Status = ""
	assert.NoError(t, ValidateCase(noStatus))
}

func TestValidateDoctor(t *testing.T) {
	assert.NoError(t, ValidateDoctor(models.Doctor{Name: "د. أحمد", Phone: "+201001234567"}))
	assert.Error(t, ValidateDoctor(models.Doctor{Phone: "+201001234567"}))
}

func TestValidateDoctorTransaction(t *testing.T) {
	valid := models.DoctorTransaction{
		DoctorID:        "DR-000001",
		Amount:          100,
		TransactionType: models.DoctorTxPayment,
		PaymentMethod:   models.PaymentMethodCheck,
		TransactionDate: time.Now(),
	}
	assert.NoError(t, ValidateDoctorTransaction(valid))

	badType := valid
	badType.TransactionType = "payment"
	assert.Error(t, ValidateDoctorTransaction(badType))

	badMethod := valid
	badMethod.PaymentMethod = "cash"
	assert.Error(t, ValidateDoctorTransaction(badMethod))

	zeroAmount := valid
	zeroAmount.Amount = 0
	assert.Error(t, ValidateDoctorTransaction(zeroAmount))
}

func TestValidatePartner(t *testing.T) {
	assert.NoError(t, ValidatePartner(models.Partner{Name: "شريك", PartnershipPercentage: 50}))
	assert.Error(t, ValidatePartner(models.Partner{Name: "شريك", PartnershipPercentage: 120}))
	assert.Error(t, ValidatePartner(models.Partner{PartnershipPercentage: 50}))
}

func TestValidateCheck(t *testing.T) {
	assert.NoError(t, ValidateCheck(models.Check{
		Amount:    500,
		CheckDate: time.Now(),
		Status:    models.CheckStatusPending,
	}))
	assert.Error(t, ValidateCheck(models.Check{
		Amount:    500,
		CheckDate: time.Now(),
		Status:    "pending",
	}))
	assert.Error(t, ValidateCheck(models.Check{CheckDate: time.Now()}))
}

func TestValidateExpense(t *testing.T) {
	assert.NoError(t, ValidateExpense(models.Expense{
		ExpenseTypeID: 1,
		TotalAmount:   200,
		PurchaseDate:  time.Now(),
	}))
	assert.Error(t, ValidateExpense(models.Expense{TotalAmount: 200, PurchaseDate: time.Now()}))
}
