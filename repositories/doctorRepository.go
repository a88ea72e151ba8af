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
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DoctorCacheExpiry = 7 * 24 * time.Hour
)

type DoctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{db: db, cache: cache}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	lockKey := fmt.Sprintf("doctor_lock:%s", doctor.Name)
	return withLock(ctx, lockKey, func() error {
		// Check if a record with the same name already exists
		var existingDoctor models.Doctor
		if err := r.db.Where("name = ?", doctor.Name).First(&existingDoctor).Error; err == nil {
			return errors.New("doctor with the same name already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for existing doctor: %w", err)
		}

		var nextID string
		if err := r.db.Raw("SELECT 'DR-' || LPAD(nextval('doctor_id_seq')::TEXT, 6, '0')").Scan(&nextID).Error; err != nil {
			return fmt.Errorf("failed to obtain next sequence value: %w", err)
		}
		doctor.ID = nextID

		// The portal token is minted once at creation and never rotated
		// implicitly.
		doctor.AccessToken = uuid.New().String()

		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(doctor).Error; err != nil {
				if rollbackErr := r.db.Exec("SELECT setval('doctor_id_seq', (SELECT last_value FROM doctor_id_seq) - 1, false)").Error; rollbackErr != nil {
					return fmt.Errorf("transaction failed and sequence rollback failed: %v, rollback error: %v", err, rollbackErr)
				}
				return fmt.Errorf("failed to create doctor: %w", err)
			}
			return r.invalidate(ctx, doctor.ID)
		})
	})
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getDoctorCacheKey(id)
	cachedDoctor, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cachedDoctor), &doctor); err == nil {
			return &doctor, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	err = r.db.Preload("WorkTypePrices", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, doctor_id, work_type_id, price")
	}).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	doctorJSON, err := json.Marshal(doctor)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal doctor: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, doctorJSON, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctor in cache: %v", err)
	}

	return &doctor, nil
}

// GetByAccessToken resolves the opaque portal token. Never cached: a revoked
// token must stop working immediately.
func (r *DoctorRepository) GetByAccessToken(ctx context.Context, token string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	err := r.db.WithContext(ctx).Where("access_token = ?", token).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor by access token: %w", err)
	}
	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "doctors_cache"
	cachedDoctors, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var doctors []models.Doctor
		if err := json.Unmarshal([]byte(cachedDoctors), &doctors); err == nil {
			return doctors, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get doctors from cache: %v", err)
	}

	var doctors []models.Doctor
	err = r.db.Preload("WorkTypePrices", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, doctor_id, work_type_id, price")
	}).Order("created_at DESC").Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all doctors: %w", err)
	}

	doctorsJSON, err := json.Marshal(doctors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal doctors: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, doctorsJSON, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctors in cache: %v", err)
	}

	return doctors, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	lockKey := fmt.Sprintf("doctor_lock:%s", doctor.ID)
	return withLock(ctx, lockKey, func() error {
		if err := r.db.Save(doctor).Error; err != nil {
			return fmt.Errorf("failed to update doctor: %w", err)
		}
		return r.invalidate(ctx, doctor.ID)
	})
}

func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	lockKey := fmt.Sprintf("doctor_lock:%s", id)
	return withLock(ctx, lockKey, func() error {
		if err := r.db.Delete(&models.Doctor{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete doctor: %w", err)
		}
		return r.invalidate(ctx, id)
	})
}

// UpsertWorkTypePrice sets a doctor's unit price for one work type,
// replacing any previous price row for the same pair.
func (r *DoctorRepository) UpsertWorkTypePrice(ctx context.Context, price *models.DoctorWorkTypePrice) error {
	lockKey := fmt.Sprintf("doctor_lock:%s", price.DoctorID)
	return withLock(ctx, lockKey, func() error {
		err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "work_type_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"price"}),
		}).Create(price).Error
		if err != nil {
			return fmt.Errorf("failed to upsert work type price: %w", err)
		}
		return r.invalidate(ctx, price.DoctorID)
	})
}

// EffectivePrice looks up the doctor's unit price for a work type through
// the join table. Returns false when no price row exists.
func (r *DoctorRepository) EffectivePrice(ctx context.Context, doctorID string, workTypeID uint) (float64, bool, error) {
	var price models.DoctorWorkTypePrice
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND work_type_id = ?", doctorID, workTypeID).
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to look up work type price: %w", err)
	}
	return price.Price, true, nil
}

func (r *DoctorRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.getDoctorCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete doctor cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "doctors_cache")
}

func (r *DoctorRepository) getDoctorCacheKey(id string) string {
	return fmt.Sprintf("doctor_cache:%s", id)
}
