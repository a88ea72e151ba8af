package services

import (
	"LabLedger/cache"
	"LabLedger/models"
	"LabLedger/repositories"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newTestExportService(db *gorm.DB) *ExportService {
	noRedis := &cache.Cache{}
	doctors := repositories.NewDoctorRepository(db, noRedis)
	cases := repositories.NewCaseRepository(db, noRedis)
	transactions := repositories.NewDoctorTransactionRepository(db, noRedis)
	finance := NewFinanceService(db, nil, false)
	return NewExportService(db, doctors, cases, transactions, finance)
}

func seedStatementData(t *testing.T, db *gorm.DB) {
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
}

func TestDoctorStatementExcel(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestExportService(db)
	ctx := context.Background()

	seedStatementData(t, db)

	f, err := svc.DoctorStatementExcel(ctx, "DR-000001")
	assert.NoError(t, err)

	sheetName := "كشف حساب"
	name, err := f.GetCellValue(sheetName, "B1")
	assert.NoError(t, err)
	assert.Equal(t, "د. أحمد", name)

	totalDue, err := f.GetCellValue(sheetName, "B3")
	assert.NoError(t, err)
	assert.Equal(t, "150", totalDue)

	remaining, err := f.GetCellValue(sheetName, "B5")
	assert.NoError(t, err)
	assert.Equal(t, "90", remaining)

	// First case line sits under the header row
	caseID, err := f.GetCellValue(sheetName, "A8")
	assert.NoError(t, err)
	assert.NotEmpty(t, caseID)
}

func TestDoctorStatementExcelUnknownDoctor(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestExportService(db)

	_, err := svc.DoctorStatementExcel(context.Background(), "DR-999999")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDoctorStatementPDF(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestExportService(db)
	ctx := context.Background()

	seedStatementData(t, db)

	pdf, err := svc.DoctorStatementPDF(ctx, "DR-000001")
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestBackupRoundTrip(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestExportService(db)
	ctx := context.Background()

	seedStatementData(t, db)
	seedDoctor(t, db, "DR-000002", "د. سارة")
	seedPartner(t, db, "PR-000001", "شريك", 100, 0)

	data, err := svc.ExportBackup(ctx)
	assert.NoError(t, err)

	var backup Backup
	assert.NoError(t, json.Unmarshal(data, &backup))
	assert.Equal(t, BackupSchemaVersion, backup.Metadata.SchemaVersion)
	assert.Equal(t, BackupScope, backup.Metadata.Scope)
	assert.Len(t, backup.Cases, 2)
	assert.Len(t, backup.Doctors, 2)
	assert.Len(t, backup.Partners, 1)
	assert.Equal(t, 6, backup.Metadata.TotalRows)
	for _, doctor := range backup.Doctors {
		assert.Equal(t, "token-"+doctor.ID, doctor.AccessToken)
	}

	// Lose a case, then restore: the backup wins
	assert.NoError(t, db.Delete(&models.Case{}, "id = ?", "CS-000002").Error)

	err = svc.ImportBackup(ctx, data)
	assert.NoError(t, err)

	var count int64
	assert.NoError(t, db.Model(&models.Case{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// Portal access tokens survive the round trip
	for _, id := range []string{"DR-000001", "DR-000002"} {
		var doctor models.Doctor
		assert.NoError(t, db.First(&doctor, "id = ?", id).Error)
		assert.Equal(t, "token-"+id, doctor.AccessToken)
	}

	// Restore reconciles: 100% partner holds the full capital again
	var partner models.Partner
	assert.NoError(t, db.First(&partner, "id = ?", "PR-000001").Error)
	assert.Equal(t, 150.0, partner.TotalAmount)
}

func TestImportBackupRejectsUnknownVersion(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestExportService(db)

	data := []byte(`{"metadata":{"schema_version":99}}`)
	err := svc.ImportBackup(context.Background(), data)
	assert.Error(t, err)
}

func TestImportBackupRejectsGarbage(t *testing.T) {
	db := setupFinanceTestDB(t)
	svc := newTestExportService(db)

	err := svc.ImportBackup(context.Background(), []byte("not json"))
	assert.Error(t, err)
}
