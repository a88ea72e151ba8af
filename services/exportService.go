package services

import (
	"LabLedger/models"
	"LabLedger/repositories"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// BackupSchemaVersion guards backup files against being restored into an
// incompatible schema.
const BackupSchemaVersion = 1

// ErrDoctorNotFound is returned when a statement names an unknown doctor.
var ErrDoctorNotFound = errors.New("doctor not found")

// ExportService renders doctor statements and handles full-database backup
// and restore.
type ExportService struct {
	db           *gorm.DB
	doctors      *repositories.DoctorRepository
	cases        *repositories.CaseRepository
	transactions *repositories.DoctorTransactionRepository
	finance      *FinanceService
}

func NewExportService(db *gorm.DB, doctors *repositories.DoctorRepository, cases *repositories.CaseRepository, transactions *repositories.DoctorTransactionRepository, finance *FinanceService) *ExportService {
	return &ExportService{db: db, doctors: doctors, cases: cases, transactions: transactions, finance: finance}
}

type doctorStatement struct {
	Doctor       *models.Doctor
	Cases        []models.Case
	Transactions []models.DoctorTransaction
	Balance      *DoctorBalance
}

func (s *ExportService) buildStatement(ctx context.Context, doctorID string) (*doctorStatement, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	cases, err := s.cases.GetByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactions.GetByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	balance, err := s.finance.DoctorBalance(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	return &doctorStatement{
		Doctor:       doctor,
		Cases:        cases,
		Transactions: transactions,
		Balance:      balance,
	}, nil
}

// DoctorStatementExcel renders a doctor's account statement as an xlsx
// workbook: a summary block followed by the case lines and payment lines.
func (s *ExportService) DoctorStatementExcel(ctx context.Context, doctorID string) (*excelize.File, error) {
	statement, err := s.buildStatement(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "كشف حساب"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "الطبيب")
	f.SetCellValue(sheetName, "B1", statement.Doctor.Name)
	f.SetCellValue(sheetName, "A2", "التاريخ")
	f.SetCellValue(sheetName, "B2", time.Now().Format("2006-01-02"))
	f.SetCellValue(sheetName, "A3", "إجمالي المستحق")
	f.SetCellValue(sheetName, "B3", statement.Balance.TotalDue)
	f.SetCellValue(sheetName, "A4", "إجمالي المدفوع")
	f.SetCellValue(sheetName, "B4", statement.Balance.TotalPaid)
	f.SetCellValue(sheetName, "A5", "المتبقي")
	f.SetCellValue(sheetName, "B5", statement.Balance.Remaining)

	caseHeaders := []string{"رقم الحالة", "اسم المريض", "نوع العمل", "عدد الأسنان", "السعر", "الحالة", "تاريخ التسليم"}
	headerRow := 7
	for i, header := range caseHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, header)
	}
	row := headerRow + 1
	for _, labCase := range statement.Cases {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), labCase.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), labCase.PatientName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), labCase.WorkType)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), labCase.TeethCount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), labCase.Price)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), labCase.Status)
		if labCase.DeliveryDate != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), labCase.DeliveryDate.Format("2006-01-02"))
		}
		row++
	}

	txHeaders := []string{"التاريخ", "النوع", "طريقة الدفع", "المبلغ", "ملاحظات"}
	row++
	txHeaderRow := row
	for i, header := range txHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, txHeaderRow)
		f.SetCellValue(sheetName, cell, header)
	}
	row++
	for _, transaction := range statement.Transactions {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), transaction.TransactionDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), transaction.TransactionType)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), transaction.PaymentMethod)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), transaction.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), transaction.Notes)
		row++
	}

	return f, nil
}

// DoctorStatementPDF renders the same statement as a PDF. The built-in PDF
// fonts cannot shape Arabic script, so the PDF uses Latin labels; the Excel
// export is the Arabic-facing document.
func (s *ExportService) DoctorStatementPDF(ctx context.Context, doctorID string) ([]byte, error) {
	statement, err := s.buildStatement(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Doctor Account Statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Doctor: %s (%s)", statement.Doctor.Name, statement.Doctor.ID))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Total due: %.2f", statement.Balance.TotalDue))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total paid: %.2f", statement.Balance.TotalPaid))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Remaining: %.2f", statement.Balance.Remaining))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Cases")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(28, 6, "Case", "1", 0, "", false, 0, "")
	pdf.CellFormat(45, 6, "Patient", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 6, "Work type", "1", 0, "", false, 0, "")
	pdf.CellFormat(15, 6, "Teeth", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 6, "Price", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 6, "Submitted", "1", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, labCase := range statement.Cases {
		pdf.CellFormat(28, 6, labCase.ID, "1", 0, "", false, 0, "")
		pdf.CellFormat(45, 6, labCase.PatientName, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 6, labCase.WorkType, "1", 0, "", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", labCase.TeethCount), "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", labCase.Price), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, labCase.SubmissionDate.Format("2006-01-02"), "1", 1, "", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Payments")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(30, 6, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 6, "Amount", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 6, "Method", "1", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, transaction := range statement.Transactions {
		if transaction.TransactionType != models.DoctorTxPayment {
			continue
		}
		pdf.CellFormat(30, 6, transaction.TransactionDate.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", transaction.Amount), "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 6, transaction.PaymentMethod, "1", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// BackupScope marks what a backup file covers. Staff accounts, roles, and
// permissions are provisioned through startup seeding and the auth flows and
// are deliberately not part of the ledger snapshot.
const BackupScope = "ledger"

// BackupMetadata describes a backup file.
type BackupMetadata struct {
	Timestamp     time.Time `json:"timestamp"`
	SchemaVersion int       `json:"schema_version"`
	Scope         string    `json:"scope"`
	TotalRows     int       `json:"total_rows"`
}

// backupDoctor round-trips the portal access token, which the API-facing
// Doctor model never serializes.
type backupDoctor struct {
	models.Doctor
	AccessToken string `json:"access_token"`
}

func newBackupDoctor(doctor models.Doctor) backupDoctor {
	return backupDoctor{Doctor: doctor, AccessToken: doctor.AccessToken}
}

func (d backupDoctor) model() models.Doctor {
	doctor := d.Doctor
	doctor.AccessToken = d.AccessToken
	return doctor
}

// Backup is the JSON snapshot of the ledger tables.
type Backup struct {
	Metadata             BackupMetadata               `json:"metadata"`
	Doctors              []backupDoctor               `json:"doctors"`
	WorkTypes            []models.WorkType            `json:"work_types"`
	DoctorWorkTypePrices []models.DoctorWorkTypePrice `json:"doctor_work_type_prices"`
	Cases                []models.Case                `json:"cases"`
	ExpenseTypes         []models.ExpenseType         `json:"expense_types"`
	Expenses             []models.Expense             `json:"expenses"`
	Partners             []models.Partner             `json:"partners"`
	PartnerTransactions  []models.PartnerTransaction  `json:"partner_transactions"`
	DoctorTransactions   []models.DoctorTransaction   `json:"doctor_transactions"`
	Checks               []models.Check               `json:"checks"`
}

// ExportBackup serializes every ledger table into one JSON document.
func (s *ExportService) ExportBackup(ctx context.Context) ([]byte, error) {
	var backup Backup
	db := s.db.WithContext(ctx)

	var doctors []models.Doctor
	if err := db.Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to export doctors: %w", err)
	}
	for _, doctor := range doctors {
		backup.Doctors = append(backup.Doctors, newBackupDoctor(doctor))
	}

	reads := []struct {
		name string
		dest interface{}
	}{
		{"work types", &backup.WorkTypes},
		{"doctor work type prices", &backup.DoctorWorkTypePrices},
		{"cases", &backup.Cases},
		{"expense types", &backup.ExpenseTypes},
		{"expenses", &backup.Expenses},
		{"partners", &backup.Partners},
		{"partner transactions", &backup.PartnerTransactions},
		{"doctor transactions", &backup.DoctorTransactions},
		{"checks", &backup.Checks},
	}
	for _, read := range reads {
		if err := db.Find(read.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", read.name, err)
		}
	}

	backup.Metadata = BackupMetadata{
		Timestamp:     time.Now(),
		SchemaVersion: BackupSchemaVersion,
		Scope:         BackupScope,
		TotalRows: len(backup.Doctors) + len(backup.WorkTypes) + len(backup.DoctorWorkTypePrices) +
			len(backup.Cases) + len(backup.ExpenseTypes) + len(backup.Expenses) +
			len(backup.Partners) + len(backup.PartnerTransactions) +
			len(backup.DoctorTransactions) + len(backup.Checks),
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup: %w", err)
	}
	return data, nil
}

// ImportBackup replaces the entire database content with the backup in one
// transaction, then reconciles. A version mismatch or a failed insert rolls
// everything back.
func (s *ExportService) ImportBackup(ctx context.Context, data []byte) error {
	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to parse backup: %w", err)
	}
	if backup.Metadata.SchemaVersion != BackupSchemaVersion {
		return fmt.Errorf("unsupported backup schema version: %d", backup.Metadata.SchemaVersion)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Children first so foreign keys never dangle mid-restore.
		deletions := []interface{}{
			&models.DoctorWorkTypePrice{},
			&models.PartnerTransaction{},
			&models.DoctorTransaction{},
			&models.Check{},
			&models.Case{},
			&models.Expense{},
			&models.ExpenseType{},
			&models.WorkType{},
			&models.Partner{},
			&models.Doctor{},
		}
		for _, model := range deletions {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear table: %w", err)
			}
		}

		doctors := make([]models.Doctor, 0, len(backup.Doctors))
		for _, doctor := range backup.Doctors {
			doctors = append(doctors, doctor.model())
		}

		inserts := []struct {
			name string
			rows interface{}
			size int
		}{
			{"doctors", &doctors, len(doctors)},
			{"work types", &backup.WorkTypes, len(backup.WorkTypes)},
			{"partners", &backup.Partners, len(backup.Partners)},
			{"expense types", &backup.ExpenseTypes, len(backup.ExpenseTypes)},
			{"doctor work type prices", &backup.DoctorWorkTypePrices, len(backup.DoctorWorkTypePrices)},
			{"cases", &backup.Cases, len(backup.Cases)},
			{"expenses", &backup.Expenses, len(backup.Expenses)},
			{"partner transactions", &backup.PartnerTransactions, len(backup.PartnerTransactions)},
			{"doctor transactions", &backup.DoctorTransactions, len(backup.DoctorTransactions)},
			{"checks", &backup.Checks, len(backup.Checks)},
		}
		for _, insert := range inserts {
			if insert.size == 0 {
				continue
			}
			if err := tx.Create(insert.rows).Error; err != nil {
				return fmt.Errorf("failed to restore %s: %w", insert.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.finance.Reconcile(ctx)
}
