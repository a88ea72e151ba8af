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
	CheckCacheExpiry = 24 * time.Hour
)

// CheckRepository manages the standalone check register. It is a separate
// ledger from doctor transactions paid by check; the two are never
// reconciled against each other.
type CheckRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCheckRepository(db *gorm.DB, cache *cache.Cache) *CheckRepository {
	return &CheckRepository{db: db, cache: cache}
}

func (r *CheckRepository) Create(ctx context.Context, check *models.Check) error {
	lockKey := fmt.Sprintf("check_lock:%s_%s", check.CheckNumber, check.BankName)
	return withLock(ctx, lockKey, func() error {
		if check.DoctorID != nil {
			var doctor models.Doctor
			if err := r.db.First(&doctor, "id = ?", *check.DoctorID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errors.New("doctor not found")
				}
				return fmt.Errorf("failed to find doctor: %w", err)
			}
		}

		if err := r.db.Create(check).Error; err != nil {
			return fmt.Errorf("failed to create check: %w", err)
		}
		return r.cache.DeleteAll(ctx, "checks_cache")
	})
}

func (r *CheckRepository) GetByID(ctx context.Context, id uint) (*models.Check, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var check models.Check
	err := r.db.WithContext(ctx).First(&check, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get check: %w", err)
	}
	return &check, nil
}

func (r *CheckRepository) GetAll(ctx context.Context) ([]models.Check, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "checks_cache"
	cachedChecks, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var checks []models.Check
		if err := json.Unmarshal([]byte(cachedChecks), &checks); err == nil {
			return checks, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get checks from cache: %v", err)
	}

	var checks []models.Check
	if err := r.db.Order("check_date DESC").Find(&checks).Error; err != nil {
		return nil, fmt.Errorf("failed to get all checks: %w", err)
	}

	checksJSON, err := json.Marshal(checks)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checks: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, checksJSON, CheckCacheExpiry); err != nil {
		log.Printf("Failed to set checks in cache: %v", err)
	}

	return checks, nil
}

func (r *CheckRepository) GetByDoctor(ctx context.Context, doctorID string) ([]models.Check, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var checks []models.Check
	err := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).
		Order("check_date DESC").Find(&checks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get checks for doctor: %w", err)
	}
	return checks, nil
}

func (r *CheckRepository) Update(ctx context.Context, check *models.Check) error {
	lockKey := fmt.Sprintf("check_lock:%d", check.ID)
	return withLock(ctx, lockKey, func() error {
		if err := r.db.Save(check).Error; err != nil {
			return fmt.Errorf("failed to update check: %w", err)
		}
		return r.cache.DeleteAll(ctx, "checks_cache")
	})
}

func (r *CheckRepository) Delete(ctx context.Context, id uint) error {
	lockKey := fmt.Sprintf("check_lock:%d", id)
	return withLock(ctx, lockKey, func() error {
		if err := r.db.Delete(&models.Check{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete check: %w", err)
		}
		return r.cache.DeleteAll(ctx, "checks_cache")
	})
}
