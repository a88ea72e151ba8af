package utils

import (
	"LabLedger/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateCase validates a case payload.
func ValidateCase(labCase models.Case) error {
	return validation.ValidateStruct(&labCase,
		validation.Field(&labCase.PatientName, validation.Required, validation.Length(1, 200)),
		validation.Field(&labCase.DoctorID, validation.Required),
		validation.Field(&labCase.WorkType, validation.Required),
		validation.Field(&labCase.TeethCount, validation.Required, validation.Min(1)),
		validation.Field(&labCase.Price, validation.Min(0.0)),
		validation.Field(&labCase.Status, validation.In(caseStatusValues()...)),
		validation.Field(&labCase.SubmissionDate, validation.Required),
	)
}

func caseStatusValues() []interface{} {
	values := make([]interface{}, 0, len(models.CaseStatuses)+1)
	values = append(values, "")
	for _, status := range models.CaseStatuses {
		values = append(values, status)
	}
	return values
}

// ValidateDoctor validates a doctor payload.
func ValidateDoctor(doctor models.Doctor) error {
	return validation.ValidateStruct(&doctor,
		validation.Field(&doctor.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&doctor.Phone, validation.Length(0, 30)),
	)
}

// ValidateWorkTypePrice validates a per-doctor price payload.
func ValidateWorkTypePrice(price models.DoctorWorkTypePrice) error {
	return validation.ValidateStruct(&price,
		validation.Field(&price.DoctorID, validation.Required),
		validation.Field(&price.WorkTypeID, validation.Required),
		validation.Field(&price.Price, validation.Required, validation.Min(0.0)),
	)
}

// ValidateExpense validates an expense payload.
func ValidateExpense(expense models.Expense) error {
	return validation.ValidateStruct(&expense,
		validation.Field(&expense.ExpenseTypeID, validation.Required),
		validation.Field(&expense.TotalAmount, validation.Required, validation.Min(0.01)),
		validation.Field(&expense.PurchaseDate, validation.Required),
	)
}

// ValidatePartner validates a partner payload.
func ValidatePartner(partner models.Partner) error {
	return validation.ValidateStruct(&partner,
		validation.Field(&partner.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&partner.PartnershipPercentage, validation.Min(0.0), validation.Max(100.0)),
	)
}

// ValidateDoctorTransaction validates a doctor payment or due payload.
func ValidateDoctorTransaction(transaction models.DoctorTransaction) error {
	return validation.ValidateStruct(&transaction,
		validation.Field(&transaction.DoctorID, validation.Required),
		validation.Field(&transaction.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&transaction.TransactionType, validation.Required,
			validation.In(models.DoctorTxPayment, models.DoctorTxDue)),
		validation.Field(&transaction.PaymentMethod, validation.Required,
			validation.In(models.PaymentMethodCash, models.PaymentMethodCheck, models.PaymentMethodTransfer)),
		validation.Field(&transaction.TransactionDate, validation.Required),
	)
}

// ValidateCheck validates a check register payload.
func ValidateCheck(check models.Check) error {
	return validation.ValidateStruct(&check,
		validation.Field(&check.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&check.CheckDate, validation.Required),
		validation.Field(&check.Status, validation.In("",
			models.CheckStatusReceived, models.CheckStatusPending,
			models.CheckStatusCashed, models.CheckStatusBounced)),
	)
}
