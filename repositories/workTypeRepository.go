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
	WorkTypeCacheExpiry = 7 * 24 * time.Hour
)

type WorkTypeRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewWorkTypeRepository(db *gorm.DB, cache *cache.Cache) *WorkTypeRepository {
	return &WorkTypeRepository{db: db, cache: cache}
}

func (r *WorkTypeRepository) Create(ctx context.Context, workType *models.WorkType) error {
	lockKey := fmt.Sprintf("work_type_lock:%s", workType.Name)
	return withLock(ctx, lockKey, func() error {
		var existing models.WorkType
		if err := r.db.Where("name = ?", workType.Name).First(&existing).Error; err == nil {
			return errors.New("work type with the same name already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for existing work type: %w", err)
		}

		if err := r.db.Create(workType).Error; err != nil {
			return fmt.Errorf("failed to create work type: %w", err)
		}
		return r.cache.DeleteAll(ctx, "work_types_cache")
	})
}

func (r *WorkTypeRepository) GetByID(ctx context.Context, id uint) (*models.WorkType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var workType models.WorkType
	err := r.db.WithContext(ctx).First(&workType, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work type: %w", err)
	}
	return &workType, nil
}

func (r *WorkTypeRepository) GetByName(ctx context.Context, name string) (*models.WorkType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var workType models.WorkType
	err := r.db.WithContext(ctx).First(&workType, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work type by name: %w", err)
	}
	return &workType, nil
}

func (r *WorkTypeRepository) GetAll(ctx context.Context) ([]models.WorkType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "work_types_cache"
	cachedTypes, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var types []models.WorkType
		if err := json.Unmarshal([]byte(cachedTypes), &types); err == nil {
			return types, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get work types from cache: %v", err)
	}

	var types []models.WorkType
	if err := r.db.Order("name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to get all work types: %w", err)
	}

	typesJSON, err := json.Marshal(types)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal work types: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, typesJSON, WorkTypeCacheExpiry); err != nil {
		log.Printf("Failed to set work types in cache: %v", err)
	}

	return types, nil
}

func (r *WorkTypeRepository) Update(ctx context.Context, workType *models.WorkType) error {
	lockKey := fmt.Sprintf("work_type_lock:%d", workType.ID)
	return withLock(ctx, lockKey, func() error {
		if err := r.db.Save(workType).Error; err != nil {
			return fmt.Errorf("failed to update work type: %w", err)
		}
		return r.cache.DeleteAll(ctx, "work_types_cache")
	})
}

func (r *WorkTypeRepository) Delete(ctx context.Context, id uint) error {
	lockKey := fmt.Sprintf("work_type_lock:%d", id)
	return withLock(ctx, lockKey, func() error {
		var count int64
		if err := r.db.Model(&models.DoctorWorkTypePrice{}).Where("work_type_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count prices for work type: %w", err)
		}
		if count > 0 {
			return errors.New("work type still has doctor prices")
		}
		if err := r.db.Delete(&models.WorkType{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete work type: %w", err)
		}
		return r.cache.DeleteAll(ctx, "work_types_cache")
	})
}
