package repositories

import (
	"LabLedger/cache"
	"LabLedger/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	CaseCacheExpiry = 24 * time.Hour
)

type CaseRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCaseRepository(db *gorm.DB, cache *cache.Cache) *CaseRepository {
	return &CaseRepository{db: db, cache: cache}
}

func (r *CaseRepository) Create(ctx context.Context, labCase *models.Case) error {
	lockKey := fmt.Sprintf("case_lock:%s_%s", labCase.DoctorID, labCase.PatientName)
	return withLock(ctx, lockKey, func() error {
		// The doctor must exist before a case can be booked against them
		var doctor models.Doctor
		if err := r.db.First(&doctor, "id = ?", labCase.DoctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("doctor not found")
			}
			return fmt.Errorf("failed to find doctor: %w", err)
		}

		var nextID string
		if err := r.db.Raw("SELECT 'CS-' || LPAD(nextval('case_id_seq')::TEXT, 6, '0')").Scan(&nextID).Error; err != nil {
			return fmt.Errorf("failed to obtain next sequence value: %w", err)
		}
		labCase.ID = nextID

		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(labCase).Error; err != nil {
				if rollbackErr := r.db.Exec("SELECT setval('case_id_seq', (SELECT last_value FROM case_id_seq) - 1, false)").Error; rollbackErr != nil {
					return fmt.Errorf("transaction failed and sequence rollback failed: %v, rollback error: %v", err, rollbackErr)
				}
				return fmt.Errorf("failed to create case: %w", err)
			}
			return r.invalidate(ctx, labCase.ID)
		})
	})
}

func (r *CaseRepository) GetByID(ctx context.Context, id string) (*models.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getCaseCacheKey(id)
	cachedCase, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var labCase models.Case
		if err := json.Unmarshal([]byte(cachedCase), &labCase); err == nil {
			return &labCase, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get case from cache: %v", err)
	}

	var labCase models.Case
	err = r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, phone")
	}).First(&labCase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	caseJSON, err := json.Marshal(labCase)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal case: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, caseJSON, CaseCacheExpiry); err != nil {
		log.Printf("Failed to set case in cache: %v", err)
	}

	return &labCase, nil
}

func (r *CaseRepository) GetAll(ctx context.Context) ([]models.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "cases_cache"
	cachedCases, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var cases []models.Case
		if err := json.Unmarshal([]byte(cachedCases), &cases); err == nil {
			return cases, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get cases from cache: %v", err)
	}

	var cases []models.Case
	err = r.db.Preload("Doctor", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, phone")
	}).Order("submission_date DESC").Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all cases: %w", err)
	}

	casesJSON, err := json.Marshal(cases)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cases: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, casesJSON, CaseCacheExpiry); err != nil {
		log.Printf("Failed to set cases in cache: %v", err)
	}

	return cases, nil
}

// GetByDoctor is used by the doctor portal and statements; it always reads
// through to the database so a doctor never sees a stale ledger.
func (r *CaseRepository) GetByDoctor(ctx context.Context, doctorID string) ([]models.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cases []models.Case
	err := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).
		Order("submission_date DESC").Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cases for doctor: %w", err)
	}
	return cases, nil
}

func (r *CaseRepository) Update(ctx context.Context, labCase *models.Case) error {
	lockKey := fmt.Sprintf("case_lock:%s", labCase.ID)
	return withLock(ctx, lockKey, func() error {
		if err := r.db.Save(labCase).Error; err != nil {
			return fmt.Errorf("failed to update case: %w", err)
		}
		return r.invalidate(ctx, labCase.ID)
	})
}

func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	lockKey := fmt.Sprintf("case_lock:%s", id)
	return withLock(ctx, lockKey, func() error {
		if err := r.db.Delete(&models.Case{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete case: %w", err)
		}
		return r.invalidate(ctx, id)
	})
}

func (r *CaseRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.getCaseCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete case cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "cases_cache")
}

func (r *CaseRepository) getCaseCacheKey(id string) string {
	return fmt.Sprintf("case_cache:%s", id)
}
