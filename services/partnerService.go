package services

import (
	"LabLedger/models"
	"LabLedger/repositories"
	"context"
	"time"
)

type PartnerService struct {
	repository   *repositories.PartnerRepository
	transactions *repositories.PartnerTransactionRepository
	finance      *FinanceService
}

func NewPartnerService(repository *repositories.PartnerRepository, transactions *repositories.PartnerTransactionRepository, finance *FinanceService) *PartnerService {
	return &PartnerService{repository: repository, transactions: transactions, finance: finance}
}

// Create adds a partner and reconciles so the new partner picks up their
// share of the current capital immediately.
func (s *PartnerService) Create(ctx context.Context, partner *models.Partner) error {
	if err := s.repository.Create(ctx, partner); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}

func (s *PartnerService) GetByID(ctx context.Context, id string) (*models.Partner, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PartnerService) GetAll(ctx context.Context) ([]models.Partner, error) {
	return s.repository.GetAll(ctx)
}

// Update edits name, percentage, or personal balance, then reconciles: a
// percentage change moves every partner's share.
func (s *PartnerService) Update(ctx context.Context, partner *models.Partner) error {
	if err := s.repository.Update(ctx, partner); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}

func (s *PartnerService) Delete(ctx context.Context, id string) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}

func (s *PartnerService) Summary(ctx context.Context, id string) (*PartnerSummary, error) {
	return s.finance.PartnerSummary(ctx, id)
}

func (s *PartnerService) Withdraw(ctx context.Context, req WithdrawalRequest) (*models.PartnerTransaction, error) {
	return s.finance.Withdraw(ctx, req)
}

func (s *PartnerService) Deposit(ctx context.Context, partnerID string, amount float64, date time.Time, description string) (*models.PartnerTransaction, error) {
	return s.finance.Deposit(ctx, partnerID, amount, date, description)
}

func (s *PartnerService) GetTransactions(ctx context.Context, partnerID string) ([]models.PartnerTransaction, error) {
	return s.transactions.GetByPartner(ctx, partnerID)
}

func (s *PartnerService) GetTransaction(ctx context.Context, id uint) (*models.PartnerTransaction, error) {
	return s.transactions.GetByID(ctx, id)
}

// UpdateTransaction rewrites a ledger row and reconciles so the derived
// figures reflect the edit.
func (s *PartnerService) UpdateTransaction(ctx context.Context, transaction *models.PartnerTransaction) error {
	if err := s.transactions.Update(ctx, transaction); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}

func (s *PartnerService) DeleteTransaction(ctx context.Context, id uint) error {
	if err := s.transactions.Delete(ctx, id); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}
