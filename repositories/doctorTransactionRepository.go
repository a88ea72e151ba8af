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

type DoctorTransactionRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorTransactionRepository(db *gorm.DB, cache *cache.Cache) *DoctorTransactionRepository {
	return &DoctorTransactionRepository{db: db, cache: cache}
}

func (r *DoctorTransactionRepository) Create(ctx context.Context, transaction *models.DoctorTransaction) error {
	lockKey := fmt.Sprintf("doctor_tx_lock:%s", transaction.DoctorID)
	return withLock(ctx, lockKey, func() error {
		var doctor models.Doctor
		if err := r.db.First(&doctor, "id = ?", transaction.DoctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("doctor not found")
			}
			return fmt.Errorf("failed to find doctor: %w", err)
		}

		// A cash date only makes sense on check payments
		if transaction.PaymentMethod != models.PaymentMethodCheck {
			transaction.CheckCashDate = nil
		}

		if err := r.db.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create doctor transaction: %w", err)
		}
		return r.invalidate(ctx, transaction.DoctorID)
	})
}

func (r *DoctorTransactionRepository) GetByID(ctx context.Context, id uint) (*models.DoctorTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var transaction models.DoctorTransaction
	err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor transaction: %w", err)
	}
	return &transaction, nil
}

func (r *DoctorTransactionRepository) GetByDoctor(ctx context.Context, doctorID string) ([]models.DoctorTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var transactions []models.DoctorTransaction
	err := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).
		Order("transaction_date DESC").Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor transactions: %w", err)
	}
	return transactions, nil
}

func (r *DoctorTransactionRepository) Update(ctx context.Context, transaction *models.DoctorTransaction) error {
	lockKey := fmt.Sprintf("doctor_tx_lock:%d", transaction.ID)
	return withLock(ctx, lockKey, func() error {
		if transaction.PaymentMethod != models.PaymentMethodCheck {
			transaction.CheckCashDate = nil
		}
		if err := r.db.Save(transaction).Error; err != nil {
			return fmt.Errorf("failed to update doctor transaction: %w", err)
		}
		return r.invalidate(ctx, transaction.DoctorID)
	})
}

func (r *DoctorTransactionRepository) Delete(ctx context.Context, id uint) error {
	lockKey := fmt.Sprintf("doctor_tx_lock:%d", id)
	return withLock(ctx, lockKey, func() error {
		var transaction models.DoctorTransaction
		if err := r.db.First(&transaction, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to find doctor transaction: %w", err)
		}
		if err := r.db.Delete(&models.DoctorTransaction{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete doctor transaction: %w", err)
		}
		return r.invalidate(ctx, transaction.DoctorID)
	})
}

func (r *DoctorTransactionRepository) invalidate(ctx context.Context, doctorID string) error {
	if err := r.cache.Delete(ctx, fmt.Sprintf("doctor_cache:%s", doctorID)); err != nil {
		return fmt.Errorf("failed to delete doctor cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "doctors_cache")
}
