package services

import (
	"LabLedger/models"
	"LabLedger/repositories"
	"context"
	"fmt"
)

type CaseService struct {
	repository *repositories.CaseRepository
	doctors    *repositories.DoctorRepository
	workTypes  *repositories.WorkTypeRepository
	finance    *FinanceService
}

func NewCaseService(repository *repositories.CaseRepository, doctors *repositories.DoctorRepository, workTypes *repositories.WorkTypeRepository, finance *FinanceService) *CaseService {
	return &CaseService{repository: repository, doctors: doctors, workTypes: workTypes, finance: finance}
}

// Create derives the case price from the doctor's work-type unit price when
// the caller leaves it unset, then reconciles capital and partner shares.
// An explicit price wins over the derived one.
func (s *CaseService) Create(ctx context.Context, labCase *models.Case) error {
	if labCase.Price == 0 {
		price, err := s.derivePrice(ctx, labCase)
		if err != nil {
			return err
		}
		labCase.Price = price
	}
	if labCase.Status == "" {
		labCase.Status = models.CaseStatusInProgress
	}

	if err := s.repository.Create(ctx, labCase); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}

func (s *CaseService) derivePrice(ctx context.Context, labCase *models.Case) (float64, error) {
	workType, err := s.workTypes.GetByName(ctx, labCase.WorkType)
	if err != nil {
		return 0, err
	}
	if workType == nil {
		return 0, nil
	}

	unitPrice, found, err := s.doctors.EffectivePrice(ctx, labCase.DoctorID, workType.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up doctor price: %w", err)
	}
	if !found {
		return 0, nil
	}
	return unitPrice * float64(labCase.TeethCount), nil
}

func (s *CaseService) GetByID(ctx context.Context, id string) (*models.Case, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *CaseService) GetAll(ctx context.Context) ([]models.Case, error) {
	return s.repository.GetAll(ctx)
}

func (s *CaseService) GetByDoctor(ctx context.Context, doctorID string) ([]models.Case, error) {
	return s.repository.GetByDoctor(ctx, doctorID)
}

// Update rewrites a case and reconciles: a price edit changes capital.
func (s *CaseService) Update(ctx context.Context, labCase *models.Case) error {
	if err := s.repository.Update(ctx, labCase); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}

// Delete removes a case and reconciles: the revenue it contributed is gone.
func (s *CaseService) Delete(ctx context.Context, id string) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}
	return s.finance.Reconcile(ctx)
}
