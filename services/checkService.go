package services

import (
	"LabLedger/models"
	"LabLedger/repositories"
	"context"
)

// CheckService manages the standalone check register.
type CheckService struct {
	repository *repositories.CheckRepository
}

func NewCheckService(repository *repositories.CheckRepository) *CheckService {
	return &CheckService{repository: repository}
}

func (s *CheckService) Create(ctx context.Context, check *models.Check) error {
	if check.Status == "" {
		check.Status = models.CheckStatusReceived
	}
	return s.repository.Create(ctx, check)
}

func (s *CheckService) GetByID(ctx context.Context, id uint) (*models.Check, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *CheckService) GetAll(ctx context.Context) ([]models.Check, error) {
	return s.repository.GetAll(ctx)
}

func (s *CheckService) GetByDoctor(ctx context.Context, doctorID string) ([]models.Check, error) {
	return s.repository.GetByDoctor(ctx, doctorID)
}

func (s *CheckService) Update(ctx context.Context, check *models.Check) error {
	return s.repository.Update(ctx, check)
}

func (s *CheckService) Delete(ctx context.Context, id uint) error {
	return s.repository.Delete(ctx, id)
}
