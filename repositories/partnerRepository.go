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
	PartnerCacheExpiry = 24 * time.Hour
)

type PartnerRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPartnerRepository(db *gorm.DB, cache *cache.Cache) *PartnerRepository {
	return &PartnerRepository{db: db, cache: cache}
}

func (r *PartnerRepository) Create(ctx context.Context, partner *models.Partner) error {
	lockKey := fmt.Sprintf("partner_lock:%s", partner.Name)
	return withLock(ctx, lockKey, func() error {
		if partner.PartnershipPercentage < 0 || partner.PartnershipPercentage > 100 {
			return errors.New("partnership percentage must be between 0 and 100")
		}

		var nextID string
		if err := r.db.Raw("SELECT 'PR-' || LPAD(nextval('partner_id_seq')::TEXT, 6, '0')").Scan(&nextID).Error; err != nil {
			return fmt.Errorf("failed to obtain next sequence value: %w", err)
		}
		partner.ID = nextID

		// TotalAmount is owned by the finance service; a fresh partner
		// starts at zero until the next reconciliation.
		partner.TotalAmount = 0

		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(partner).Error; err != nil {
				if rollbackErr := r.db.Exec("SELECT setval('partner_id_seq', (SELECT last_value FROM partner_id_seq) - 1, false)").Error; rollbackErr != nil {
					return fmt.Errorf("transaction failed and sequence rollback failed: %v, rollback error: %v", err, rollbackErr)
				}
				return fmt.Errorf("failed to create partner: %w", err)
			}
			return r.invalidate(ctx, partner.ID)
		})
	})
}

func (r *PartnerRepository) GetByID(ctx context.Context, id string) (*models.Partner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPartnerCacheKey(id)
	cachedPartner, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var partner models.Partner
		if err := json.Unmarshal([]byte(cachedPartner), &partner); err == nil {
			return &partner, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get partner from cache: %v", err)
	}

	var partner models.Partner
	err = r.db.First(&partner, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}

	partnerJSON, err := json.Marshal(partner)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal partner: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, partnerJSON, PartnerCacheExpiry); err != nil {
		log.Printf("Failed to set partner in cache: %v", err)
	}

	return &partner, nil
}

func (r *PartnerRepository) GetAll(ctx context.Context) ([]models.Partner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "partners_cache"
	cachedPartners, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var partners []models.Partner
		if err := json.Unmarshal([]byte(cachedPartners), &partners); err == nil {
			return partners, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get partners from cache: %v", err)
	}

	var partners []models.Partner
	if err := r.db.Order("created_at").Find(&partners).Error; err != nil {
		return nil, fmt.Errorf("failed to get all partners: %w", err)
	}

	partnersJSON, err := json.Marshal(partners)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal partners: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, partnersJSON, PartnerCacheExpiry); err != nil {
		log.Printf("Failed to set partners in cache: %v", err)
	}

	return partners, nil
}

// Update changes a partner's name, percentage, or personal balance.
// TotalAmount is deliberately excluded: it is recomputed, never edited.
func (r *PartnerRepository) Update(ctx context.Context, partner *models.Partner) error {
	lockKey := fmt.Sprintf("partner_lock:%s", partner.ID)
	return withLock(ctx, lockKey, func() error {
		if partner.PartnershipPercentage < 0 || partner.PartnershipPercentage > 100 {
			return errors.New("partnership percentage must be between 0 and 100")
		}
		err := r.db.Model(&models.Partner{}).Where("id = ?", partner.ID).
			Updates(map[string]interface{}{
				"name":                   partner.Name,
				"partnership_percentage": partner.PartnershipPercentage,
				"personal_balance":       partner.PersonalBalance,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update partner: %w", err)
		}
		return r.invalidate(ctx, partner.ID)
	})
}

func (r *PartnerRepository) Delete(ctx context.Context, id string) error {
	lockKey := fmt.Sprintf("partner_lock:%s", id)
	return withLock(ctx, lockKey, func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.PartnerTransaction{}, "partner_id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to delete partner transactions: %w", err)
			}
			if err := tx.Delete(&models.Partner{}, "id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to delete partner: %w", err)
			}
			return r.invalidate(ctx, id)
		})
	})
}

func (r *PartnerRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.getPartnerCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete partner cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "partners_cache")
}

func (r *PartnerRepository) getPartnerCacheKey(id string) string {
	return fmt.Sprintf("partner_cache:%s", id)
}
