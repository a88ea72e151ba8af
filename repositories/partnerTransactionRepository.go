package repositories

import (
	"LabLedger/cache"
	"LabLedger/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PartnerTransactionRepository covers the read/edit/delete surface of the
// partner ledger. New withdrawal and deposit rows are appended by the
// finance service so the balance bookkeeping and the ledger write share one
// transaction.
type PartnerTransactionRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPartnerTransactionRepository(db *gorm.DB, cache *cache.Cache) *PartnerTransactionRepository {
	return &PartnerTransactionRepository{db: db, cache: cache}
}

func (r *PartnerTransactionRepository) GetByID(ctx context.Context, id uint) (*models.PartnerTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var transaction models.PartnerTransaction
	err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get partner transaction: %w", err)
	}
	return &transaction, nil
}

func (r *PartnerTransactionRepository) GetByPartner(ctx context.Context, partnerID string) ([]models.PartnerTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var transactions []models.PartnerTransaction
	err := r.db.WithContext(ctx).Where("partner_id = ?", partnerID).
		Order("transaction_date DESC").Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get partner transactions: %w", err)
	}
	return transactions, nil
}

// Update rewrites an existing ledger row through the explicit edit dialog.
// The caller's reconcile refreshes capital and share totals afterwards;
// stored personal balances are never retro-adjusted by an edit.
func (r *PartnerTransactionRepository) Update(ctx context.Context, transaction *models.PartnerTransaction) error {
	lockKey := fmt.Sprintf("partner_tx_lock:%d", transaction.ID)
	return withLock(ctx, lockKey, func() error {
		if transaction.Amount <= 0 {
			return errors.New("transaction amount must be positive")
		}
		if err := r.db.Save(transaction).Error; err != nil {
			return fmt.Errorf("failed to update partner transaction: %w", err)
		}
		return r.invalidate(ctx, transaction.PartnerID)
	})
}

func (r *PartnerTransactionRepository) Delete(ctx context.Context, id uint) error {
	lockKey := fmt.Sprintf("partner_tx_lock:%d", id)
	return withLock(ctx, lockKey, func() error {
		var transaction models.PartnerTransaction
		if err := r.db.First(&transaction, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to find partner transaction: %w", err)
		}
		if err := r.db.Delete(&models.PartnerTransaction{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete partner transaction: %w", err)
		}
		return r.invalidate(ctx, transaction.PartnerID)
	})
}

func (r *PartnerTransactionRepository) invalidate(ctx context.Context, partnerID string) error {
	if err := r.cache.Delete(ctx, fmt.Sprintf("partner_cache:%s", partnerID)); err != nil {
		return fmt.Errorf("failed to delete partner cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "partners_cache")
}
