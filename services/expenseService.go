package services

import (
	"LabLedger/models"
	"LabLedger/repositories"
	"context"
)

type ExpenseService struct {
	repository *repositories.ExpenseRepository
	finance    *FinanceService
}

func NewExpenseService(repository *repositories.ExpenseRepository, finance *FinanceService) *ExpenseService {
	return &ExpenseService{repository: repository, finance: finance}
}

func (s *ExpenseService) Create(ctx context.Context, expense *models.Expense) error {
	if err := s.repository.Create(ctx, expense); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}

func (s *ExpenseService) GetByID(ctx context.Context, id uint) (*models.Expense, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *ExpenseService) GetAll(ctx context.Context) ([]models.Expense, error) {
	return s.repository.GetAll(ctx)
}

func (s *ExpenseService) Update(ctx context.Context, expense *models.Expense) error {
	if err := s.repository.Update(ctx, expense); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}

func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}

func (s *ExpenseService) CreateType(ctx context.Context, expenseType *models.ExpenseType) error {
	return s.repository.CreateType(ctx, expenseType)
}

func (s *ExpenseService) GetAllTypes(ctx context.Context) ([]models.ExpenseType, error) {
	return s.repository.GetAllTypes(ctx)
}

func (s *ExpenseService) DeleteType(ctx context.Context, id uint) error {
	return s.repository.DeleteType(ctx, id)
}
