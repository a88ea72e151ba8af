package services

import (
	"LabLedger/models"
	"LabLedger/repositories"
	"context"
)

// DoctorTransactionService manages payments and dues recorded against
// doctors.
type DoctorTransactionService struct {
	repository *repositories.DoctorTransactionRepository
	finance    *FinanceService
}

func NewDoctorTransactionService(repository *repositories.DoctorTransactionRepository, finance *FinanceService) *DoctorTransactionService {
	return &DoctorTransactionService{repository: repository, finance: finance}
}

// Create records a transaction. Payments refresh the derived financial
// figures; capital itself is a function of cases and expenses, so the
// reconcile is a cache refresh, not a capital change.
func (s *DoctorTransactionService) Create(ctx context.Context, transaction *models.DoctorTransaction) error {
	if err := s.repository.Create(ctx, transaction); err != nil {
		return err
	}
	if transaction.TransactionType == models.DoctorTxPayment {
		return s.finance.Reconcile(ctx)
	}
	return nil
}

func (s *DoctorTransactionService) GetByID(ctx context.Context, id uint) (*models.DoctorTransaction, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *DoctorTransactionService) GetByDoctor(ctx context.Context, doctorID string) ([]models.DoctorTransaction, error) {
	return s.repository.GetByDoctor(ctx, doctorID)
}

// Update edits a transaction. Payments on either side of the edit refresh
// the derived figures: an edit can turn a payment into a due or back.
func (s *DoctorTransactionService) Update(ctx context.Context, transaction *models.DoctorTransaction) error {
	existing, err := s.repository.GetByID(ctx, transaction.ID)
	if err != nil {
		return err
	}
	if err := s.repository.Update(ctx, transaction); err != nil {
		return err
	}
	previousType := ""
	if existing != nil {
		previousType = existing.TransactionType
	}
	if paymentAffected(previousType, transaction.TransactionType) {
		return s.finance.Reconcile(ctx)
	}
	return nil
}

func (s *DoctorTransactionService) Delete(ctx context.Context, id uint) error {
	existing, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}
	if existing != nil && paymentAffected(existing.TransactionType) {
		return s.finance.Reconcile(ctx)
	}
	return nil
}

// paymentAffected reports whether a mutation touching rows of the given
// transaction types moves money. Dues are informational and never do.
func paymentAffected(transactionTypes ...string) bool {
	for _, transactionType := range transactionTypes {
		if transactionType == models.DoctorTxPayment {
			return true
		}
	}
	return false
}
