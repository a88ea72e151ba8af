package services

import (
	"LabLedger/models"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFinanceTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:testdb_finance_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.Doctor{},
		&models.WorkType{},
		&models.DoctorWorkTypePrice{},
		&models.Case{},
		&models.ExpenseType{},
		&models.Expense{},
		&models.Partner{},
		&models.PartnerTransaction{},
		&models.DoctorTransaction{},
		&models.Check{},
		&models.CompanyCapital{},
	)
	assert.NoError(t, err)

	err = db.Create(&models.CompanyCapital{ID: models.CompanyCapitalID, TotalCapital: 0}).Error
	assert.NoError(t, err)

	return db
}

func newTestFinanceService(db *gorm.DB) *FinanceService {
	return NewFinanceService(db, nil, false)
}

func seedDoctor(t *testing.T, db *gorm.DB, id, name string) {
	err := db.Create(&models.Doctor{ID: id, Name: name, AccessToken: "token-" + id}).Error
	assert.NoError(t, err)
}

func seedCase(t *testing.T, db *gorm.DB, id, doctorID string, price float64) {
	err := db.Create(&models.Case{
		ID:             id,
		PatientName:    "مريض",
		DoctorID:       doctorID,
		WorkType:       "زيركون",
		TeethCount:     1,
		Price:          price,
		Status:         models.CaseStatusInProgress,
		SubmissionDate: time.Now(),
	}).Error
	assert.NoError(t, err)
}

func seedExpense(t *testing.T, db *gorm.DB, amount float64) {
	expenseType := models.ExpenseType{Name: fmt.Sprintf("خامات-%d", time.Now().UnixNano())}
	err := db.Create(&expenseType).Error
	assert.NoError(t, err)

	err = db.Create(&models.Expense{
		ExpenseTypeID: expenseType.ID,
		TotalAmount:   amount,
		PurchaseDate:  time.Now(),
	}).Error
	assert.NoError(t, err)
}

func seedPartner(t *testing.T, db *gorm.DB, id, name string, percentage, personalBalance float64) {
	err := db.Create(&models.Partner{
		ID:                    id,
		Name:                  name,
		PartnershipPercentage: percentage,
		PersonalBalance:       personalBalance,
	}).Error
	assert.NoError(t, err)
}

func TestCalculateCapital(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 1000)
	seedCase(t, db, "CS-000002", "DR-000001", 300)
	seedExpense(t, db, 200)

	capital, err := svc.CalculateCapital(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1100.0, capital)

	var snapshot models.CompanyCapital
	err = db.First(&snapshot, "id = ?", models.CompanyCapitalID).Error
	assert.NoError(t, err)
	assert.Equal(t, 1100.0, snapshot.TotalCapital)
}

func TestCalculateCapitalEmptyLedger(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)

	capital, err := svc.CalculateCapital(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0.0, capital)
}

func TestReconcileDistributesShares(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 1000)
	seedPartner(t, db, "PR-000001", "شريك أول", 50, 0)
	seedPartner(t, db, "PR-000002", "شريك ثاني", 30, 0)
	seedPartner(t, db, "PR-000003", "شريك ثالث", 20, 0)

	err := svc.Reconcile(ctx)
	assert.NoError(t, err)

	var partners []models.Partner
	err = db.Order("id").Find(&partners).Error
	assert.NoError(t, err)
	assert.Equal(t, 500.0, partners[0].TotalAmount)
	assert.Equal(t, 300.0, partners[1].TotalAmount)
	assert.Equal(t, 200.0, partners[2].TotalAmount)

	// At 100% the shares account for the whole capital
	sum := partners[0].TotalAmount + partners[1].TotalAmount + partners[2].TotalAmount
	assert.Equal(t, 1000.0, sum)
}

func TestReconcileIsIdempotent(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 800)
	seedPartner(t, db, "PR-000001", "شريك", 50, 0)

	assert.NoError(t, svc.Reconcile(ctx))
	assert.NoError(t, svc.Reconcile(ctx))
	assert.NoError(t, svc.Reconcile(ctx))

	var partner models.Partner
	assert.NoError(t, db.First(&partner, "id = ?", "PR-000001").Error)
	assert.Equal(t, 400.0, partner.TotalAmount)

	var snapshot models.CompanyCapital
	assert.NoError(t, db.First(&snapshot, "id = ?", models.CompanyCapitalID).Error)
	assert.Equal(t, 800.0, snapshot.TotalCapital)
}

func TestReconcileWithNoPartners(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 500)

	assert.NoError(t, svc.Reconcile(context.Background()))
}

func TestReconcileExpenseScenario(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 1000)
	seedExpense(t, db, 200)
	seedPartner(t, db, "PR-000001", "شريك", 50, 0)

	assert.NoError(t, svc.Reconcile(ctx))

	var snapshot models.CompanyCapital
	assert.NoError(t, db.First(&snapshot, "id = ?", models.CompanyCapitalID).Error)
	assert.Equal(t, 800.0, snapshot.TotalCapital)

	var partner models.Partner
	assert.NoError(t, db.First(&partner, "id = ?", "PR-000001").Error)
	assert.Equal(t, 400.0, partner.TotalAmount)
}

func TestStrictPercentagesRejectDrift(t *testing.T) {
	db := setupFinanceTestDB(t)
	ctx := context.Background()

	seedPartner(t, db, "PR-000001", "شريك أول", 60, 0)
	seedPartner(t, db, "PR-000002", "شريك ثاني", 30, 0)

	strict := NewFinanceService(db, nil, true)
	err := strict.Reconcile(ctx)
	assert.ErrorIs(t, err, ErrPercentageDrift)

	// Lenient mode distributes whatever the percentages say
	lenient := NewFinanceService(db, nil, false)
	assert.NoError(t, lenient.Reconcile(ctx))
}

func TestStrictPercentagesAcceptExactSum(t *testing.T) {
	db := setupFinanceTestDB(t)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 600)
	seedPartner(t, db, "PR-000001", "شريك أول", 70, 0)
	seedPartner(t, db, "PR-000002", "شريك ثاني", 30, 0)

	strict := NewFinanceService(db, nil, true)
	assert.NoError(t, strict.Reconcile(ctx))

	var partners []models.Partner
	assert.NoError(t, db.Order("id").Find(&partners).Error)
	assert.Equal(t, 420.0, partners[0].TotalAmount)
	assert.Equal(t, 180.0, partners[1].TotalAmount)
}

func TestWithdrawPersonalRejectsOverdraw(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedPartner(t, db, "PR-000001", "شريك", 100, 100)

	_, err := svc.Withdraw(ctx, WithdrawalRequest{
		PartnerID: "PR-000001",
		Amount:    150,
		Source:    models.TxSourcePersonalWithdrawal,
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// Nothing changed: no ledger row, balance intact
	var partner models.Partner
	assert.NoError(t, db.First(&partner, "id = ?", "PR-000001").Error)
	assert.Equal(t, 100.0, partner.PersonalBalance)

	var count int64
	assert.NoError(t, db.Model(&models.PartnerTransaction{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWithdrawPersonalWithinBalance(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedPartner(t, db, "PR-000001", "شريك", 100, 100)

	transaction, err := svc.Withdraw(ctx, WithdrawalRequest{
		PartnerID:   "PR-000001",
		Amount:      60,
		Source:      models.TxSourcePersonalWithdrawal,
		Description: "سحب شخصي",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.TxTypeWithdraw, transaction.TransactionType)
	assert.Equal(t, models.TxSourcePersonalWithdrawal, transaction.TransactionSource)

	var partner models.Partner
	assert.NoError(t, db.First(&partner, "id = ?", "PR-000001").Error)
	assert.Equal(t, 40.0, partner.PersonalBalance)
}

func TestWithdrawCaseProfitAllowsOverdraw(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 300)
	seedPartner(t, db, "PR-000001", "شريك", 100, 0)
	assert.NoError(t, svc.Reconcile(ctx))

	// Withdraw more than the 300 share; the default policy lets the
	// remaining share go negative
	_, err := svc.Withdraw(ctx, WithdrawalRequest{
		PartnerID: "PR-000001",
		Amount:    500,
		Source:    models.TxSourceCaseProfit,
	})
	assert.NoError(t, err)

	summary, err := svc.PartnerSummary(ctx, "PR-000001")
	assert.NoError(t, err)
	assert.Equal(t, 500.0, summary.Withdrawals)
	assert.Equal(t, -200.0, summary.RemainingShare)
}

func TestWithdrawCaseProfitRejectPolicy(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 300)
	seedPartner(t, db, "PR-000001", "شريك", 100, 0)
	assert.NoError(t, svc.Reconcile(ctx))

	_, err := svc.Withdraw(ctx, WithdrawalRequest{
		PartnerID: "PR-000001",
		Amount:    500,
		Source:    models.TxSourceCaseProfit,
		Policy:    OverdrawReject,
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestWithdrawValidation(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedPartner(t, db, "PR-000001", "شريك", 100, 100)

	_, err := svc.Withdraw(ctx, WithdrawalRequest{
		PartnerID: "PR-000001",
		Amount:    0,
		Source:    models.TxSourcePersonalWithdrawal,
	})
	assert.Error(t, err)

	_, err = svc.Withdraw(ctx, WithdrawalRequest{
		PartnerID: "PR-000001",
		Amount:    10,
		Source:    "invalid",
	})
	assert.Error(t, err)

	_, err = svc.Withdraw(ctx, WithdrawalRequest{
		PartnerID: "PR-999999",
		Amount:    10,
		Source:    models.TxSourcePersonalWithdrawal,
	})
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

func TestDeposit(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedPartner(t, db, "PR-000001", "شريك", 100, 50)

	transaction, err := svc.Deposit(ctx, "PR-000001", 100, time.Now(), "إيداع")
	assert.NoError(t, err)
	assert.Equal(t, models.TxTypeDeposit, transaction.TransactionType)
	assert.Equal(t, models.TxSourceManual, transaction.TransactionSource)

	var partner models.Partner
	assert.NoError(t, db.First(&partner, "id = ?", "PR-000001").Error)
	assert.Equal(t, 150.0, partner.PersonalBalance)
}

func TestPartnerSummaryShareLifecycle(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 300)
	seedPartner(t, db, "PR-000001", "شريك", 100, 0)
	assert.NoError(t, svc.Reconcile(ctx))

	summary, err := svc.PartnerSummary(ctx, "PR-000001")
	assert.NoError(t, err)
	assert.Equal(t, 300.0, summary.Partner.TotalAmount)
	assert.Equal(t, 300.0, summary.RemainingShare)

	_, err = svc.Withdraw(ctx, WithdrawalRequest{
		PartnerID: "PR-000001",
		Amount:    300,
		Source:    models.TxSourceCaseProfit,
	})
	assert.NoError(t, err)

	summary, err = svc.PartnerSummary(ctx, "PR-000001")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, summary.RemainingShare)
}

func TestPersonalWithdrawalDoesNotTouchShare(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 400)
	seedPartner(t, db, "PR-000001", "شريك", 100, 200)
	assert.NoError(t, svc.Reconcile(ctx))

	_, err := svc.Withdraw(ctx, WithdrawalRequest{
		PartnerID: "PR-000001",
		Amount:    150,
		Source:    models.TxSourcePersonalWithdrawal,
	})
	assert.NoError(t, err)

	summary, err := svc.PartnerSummary(ctx, "PR-000001")
	assert.NoError(t, err)
	assert.Equal(t, 400.0, summary.RemainingShare)
	assert.Equal(t, 50.0, summary.PersonalBalance)
}

func TestDoctorBalance(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 100)
	seedCase(t, db, "CS-000002", "DR-000001", 50)

	err := db.Create(&models.DoctorTransaction{
		DoctorID:        "DR-000001",
		Amount:          60,
		TransactionType: models.DoctorTxPayment,
		PaymentMethod:   models.PaymentMethodCash,
		TransactionDate: time.Now(),
	}).Error
	assert.NoError(t, err)

	// A manual due entry is not a payment and must not shrink the debt
	err = db.Create(&models.DoctorTransaction{
		DoctorID:        "DR-000001",
		Amount:          25,
		TransactionType: models.DoctorTxDue,
		PaymentMethod:   models.PaymentMethodCash,
		TransactionDate: time.Now(),
	}).Error
	assert.NoError(t, err)

	balance, err := svc.DoctorBalance(ctx, "DR-000001")
	assert.NoError(t, err)
	assert.Equal(t, 150.0, balance.TotalDue)
	assert.Equal(t, 60.0, balance.TotalPaid)
	assert.Equal(t, 90.0, balance.Remaining)
}

func TestCapitalSnapshotReadBack(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestFinanceService(db)
	ctx := context.Background()

	seedDoctor(t, db, "DR-000001", "د. أحمد")
	seedCase(t, db, "CS-000001", "DR-000001", 750)
	assert.NoError(t, svc.Reconcile(ctx))

	snapshot, err := svc.Capital(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 750.0, snapshot.TotalCapital)
}
