package services

import (
	"LabLedger/models"
	"LabLedger/repositories"
	"context"
)

type WorkTypeService struct {
	repository *repositories.WorkTypeRepository
}

func NewWorkTypeService(repository *repositories.WorkTypeRepository) *WorkTypeService {
	return &WorkTypeService{repository: repository}
}

func (s *WorkTypeService) Create(ctx context.Context, workType *models.WorkType) error {
	return s.repository.Create(ctx, workType)
}

func (s *WorkTypeService) GetByID(ctx context.Context, id uint) (*models.WorkType, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *WorkTypeService) GetAll(ctx context.Context) ([]models.WorkType, error) {
	return s.repository.GetAll(ctx)
}

func (s *WorkTypeService) Update(ctx context.Context, workType *models.WorkType) error {
	return s.repository.Update(ctx, workType)
}

func (s *WorkTypeService) Delete(ctx context.Context, id uint) error {
	return s.repository.Delete(ctx, id)
}
