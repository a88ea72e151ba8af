package models

import (
	"time"
)

// Case statuses as stored in the database. The status field is free to move
// between any two of these via direct edit; only the UI treats the last two
// as terminal.
const (
	CaseStatusInProgress  = "قيد التنفيذ"
	CaseStatusPreparing   = "تجهيز العمل"
	CaseStatusStrengthTst = "اختبار القوي"
	CaseStatusFinalReview = "المراجعة النهائية"
	CaseStatusDelivered   = "تم التسليم"
	CaseStatusOnHold      = "معلق"
	CaseStatusCancelled   = "ملغي"
)

// CaseStatuses lists every status a case may carry.
var CaseStatuses = []string{
	CaseStatusInProgress,
	CaseStatusPreparing,
	CaseStatusStrengthTst,
	CaseStatusFinalReview,
	CaseStatusDelivered,
	CaseStatusOnHold,
	CaseStatusCancelled,
}

// Partner transaction types and sources.
const (
	TxTypeDeposit  = "deposit"
	TxTypeWithdraw = "withdraw"

	TxSourceManual             = "manual"
	TxSourceCaseProfit         = "case_profit"
	TxSourcePersonalWithdrawal = "personal_withdrawal"
)

// Doctor transaction types and payment methods.
const (
	DoctorTxPayment = "دفعة"
	DoctorTxDue     = "مستحق"

	PaymentMethodCash     = "نقدي"
	PaymentMethodCheck    = "شيك"
	PaymentMethodTransfer = "تحويل"
)

// Check statuses.
const (
	CheckStatusReceived = "مستلم"
	CheckStatusPending  = "في الانتظار"
	CheckStatusCashed   = "مصروف"
	CheckStatusBounced  = "مرتد"
)

// WorkType is a category of lab job (zirconia, temporary, ...) priced per
// doctor through DoctorWorkTypePrice.
type WorkType struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string    `gorm:"column:name;unique;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WorkType) TableName() string {
	return "work_type"
}

// Doctor model. AccessToken is the opaque token that gates the read-only
// doctor portal.
type Doctor struct {
	ID             string                `gorm:"primaryKey;column:id" json:"id"`
	Name           string                `gorm:"column:name;not null;index" json:"name"`
	Phone          string                `gorm:"column:phone" json:"phone"`
	AccessToken    string                `gorm:"column:access_token;unique;not null" json:"-"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Cases          []Case                `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Transactions   []DoctorTransaction   `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	WorkTypePrices []DoctorWorkTypePrice `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// DoctorWorkTypePrice holds a doctor's unit price for one work type. A
// doctor's effective price must be looked up through this table.
type DoctorWorkTypePrice struct {
	ID         uint     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID   string   `gorm:"column:doctor_id;not null;index;uniqueIndex:idx_doctor_work_type" json:"doctor_id"`
	WorkTypeID uint     `gorm:"column:work_type_id;not null;uniqueIndex:idx_doctor_work_type" json:"work_type_id"`
	Price      float64  `gorm:"column:price;not null" json:"price"`
	Doctor     Doctor   `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	WorkType   WorkType `gorm:"foreignKey:WorkTypeID;references:ID" json:"-"`
}

func (DoctorWorkTypePrice) TableName() string {
	return "doctor_work_type_price"
}

// Case model. Price is derived from the doctor's work-type unit price at
// intake but stored as a plain mutable field afterwards.
type Case struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	PatientName    string     `gorm:"column:patient_name;not null" json:"patient_name"`
	DoctorID       string     `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	WorkType       string     `gorm:"column:work_type;not null" json:"work_type"`
	TeethCount     int        `gorm:"column:teeth_count;not null" json:"teeth_count"`
	ToothNumber    string     `gorm:"column:tooth_number" json:"tooth_number"`
	Price          float64    `gorm:"column:price;not null" json:"price"`
	Status         string     `gorm:"column:status;not null;index" json:"status"`
	SubmissionDate time.Time  `gorm:"column:submission_date;not null" json:"submission_date"`
	DeliveryDate   *time.Time `gorm:"column:delivery_date" json:"delivery_date"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Doctor         Doctor     `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Case) TableName() string {
	return "lab_case"
}

// ExpenseType model.
type ExpenseType struct {
	ID   uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name string `gorm:"column:name;unique;not null" json:"name"`
}

func (ExpenseType) TableName() string {
	return "expense_type"
}

// Expense model.
type Expense struct {
	ID            uint        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ExpenseTypeID uint        `gorm:"column:expense_type_id;not null;index" json:"expense_type_id"`
	TotalAmount   float64     `gorm:"column:total_amount;not null" json:"total_amount"`
	PurchaseDate  time.Time   `gorm:"column:purchase_date;not null" json:"purchase_date"`
	Notes         string      `gorm:"column:notes" json:"notes"`
	CreatedAt     time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ExpenseType   ExpenseType `gorm:"foreignKey:ExpenseTypeID;references:ID" json:"-"`
}

func (Expense) TableName() string {
	return "expense"
}

// Partner model. TotalAmount is recomputed by the finance service on every
// ledger mutation and is never user-mutable; PersonalBalance is the
// separately funded pool.
type Partner struct {
	ID                    string               `gorm:"primaryKey;column:id" json:"id"`
	Name                  string               `gorm:"column:name;not null" json:"name"`
	PartnershipPercentage float64              `gorm:"column:partnership_percentage;not null" json:"partnership_percentage"`
	PersonalBalance       float64              `gorm:"column:personal_balance;not null;default:0" json:"personal_balance"`
	TotalAmount           float64              `gorm:"column:total_amount;not null;default:0" json:"total_amount"`
	CreatedAt             time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Transactions          []PartnerTransaction `gorm:"foreignKey:PartnerID;references:ID" json:"-"`
}

func (Partner) TableName() string {
	return "partner"
}

// PartnerTransaction is the append-only partner ledger; rows change only
// through the explicit edit and delete endpoints.
type PartnerTransaction struct {
	ID                uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PartnerID         string    `gorm:"column:partner_id;not null;index" json:"partner_id"`
	Amount            float64   `gorm:"column:amount;not null" json:"amount"`
	TransactionType   string    `gorm:"column:transaction_type;check:transaction_type IN ('deposit', 'withdraw');not null" json:"transaction_type"`
	TransactionSource string    `gorm:"column:transaction_source;check:transaction_source IN ('manual', 'case_profit', 'personal_withdrawal');not null" json:"transaction_source"`
	TransactionDate   time.Time `gorm:"column:transaction_date;not null" json:"transaction_date"`
	Description       string    `gorm:"column:description" json:"description"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Partner           Partner   `gorm:"foreignKey:PartnerID;references:ID" json:"-"`
}

func (PartnerTransaction) TableName() string {
	return "partner_transaction"
}

// DoctorTransaction records payments ("دفعة") and dues ("مستحق") against a
// doctor. CheckCashDate is only meaningful when PaymentMethod is "شيك".
type DoctorTransaction struct {
	ID              uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID        string     `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	Amount          float64    `gorm:"column:amount;not null" json:"amount"`
	TransactionType string     `gorm:"column:transaction_type;not null" json:"transaction_type"`
	PaymentMethod   string     `gorm:"column:payment_method;not null" json:"payment_method"`
	CheckCashDate   *time.Time `gorm:"column:check_cash_date" json:"check_cash_date"`
	Status          string     `gorm:"column:status" json:"status"`
	TransactionDate time.Time  `gorm:"column:transaction_date;not null" json:"transaction_date"`
	Notes           string     `gorm:"column:notes" json:"notes"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Doctor          Doctor     `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (DoctorTransaction) TableName() string {
	return "doctor_transaction"
}

// Check is the standalone check register. It overlaps with check-method
// doctor transactions but is kept as its own ledger.
type Check struct {
	ID            uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID      *string    `gorm:"column:doctor_id;index" json:"doctor_id"`
	Amount        float64    `gorm:"column:amount;not null" json:"amount"`
	CheckDate     time.Time  `gorm:"column:check_date;not null" json:"check_date"`
	ReceiveDate   *time.Time `gorm:"column:receive_date" json:"receive_date"`
	CheckNumber   string     `gorm:"column:check_number" json:"check_number"`
	BankName      string     `gorm:"column:bank_name" json:"bank_name"`
	RecipientName string     `gorm:"column:recipient_name" json:"recipient_name"`
	Status        string     `gorm:"column:status;check:status IN ('مستلم', 'في الانتظار', 'مصروف', 'مرتد');not null" json:"status"`
	FrontImageURL string     `gorm:"column:front_image_url" json:"front_image_url"`
	BackImageURL  string     `gorm:"column:back_image_url" json:"back_image_url"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Check) TableName() string {
	return "bank_check"
}

// CompanyCapital is the cached capital snapshot, a single row rewritten by
// the finance service inside the same transaction as the ledger mutation.
type CompanyCapital struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	TotalCapital float64   `gorm:"column:total_capital;not null" json:"total_capital"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CompanyCapital) TableName() string {
	return "company_capital"
}

// CompanyCapitalID pins the snapshot to one row.
const CompanyCapitalID uint = 1
