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
	ExpenseCacheExpiry = 24 * time.Hour
)

type ExpenseRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewExpenseRepository(db *gorm.DB, cache *cache.Cache) *ExpenseRepository {
	return &ExpenseRepository{db: db, cache: cache}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	lockKey := fmt.Sprintf("expense_lock:%d_%s", expense.ExpenseTypeID, expense.PurchaseDate.Format("2006-01-02"))
	return withLock(ctx, lockKey, func() error {
		var expenseType models.ExpenseType
		if err := r.db.First(&expenseType, "id = ?", expense.ExpenseTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("expense type not found")
			}
			return fmt.Errorf("failed to find expense type: %w", err)
		}

		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(expense).Error; err != nil {
				return fmt.Errorf("failed to create expense: %w", err)
			}
			return r.invalidate(ctx, expense.ID)
		})
	})
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uint) (*models.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var expense models.Expense
	err := r.db.WithContext(ctx).Preload("ExpenseType").First(&expense, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}

func (r *ExpenseRepository) GetAll(ctx context.Context) ([]models.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "expenses_cache"
	cachedExpenses, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var expenses []models.Expense
		if err := json.Unmarshal([]byte(cachedExpenses), &expenses); err == nil {
			return expenses, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get expenses from cache: %v", err)
	}

	var expenses []models.Expense
	err = r.db.Preload("ExpenseType").Order("purchase_date DESC").Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all expenses: %w", err)
	}

	expensesJSON, err := json.Marshal(expenses)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expenses: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, expensesJSON, ExpenseCacheExpiry); err != nil {
		log.Printf("Failed to set expenses in cache: %v", err)
	}

	return expenses, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	lockKey := fmt.Sprintf("expense_lock:%d", expense.ID)
	return withLock(ctx, lockKey, func() error {
		if err := r.db.Save(expense).Error; err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		return r.invalidate(ctx, expense.ID)
	})
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uint) error {
	lockKey := fmt.Sprintf("expense_lock:%d", id)
	return withLock(ctx, lockKey, func() error {
		if err := r.db.Delete(&models.Expense{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return r.invalidate(ctx, id)
	})
}

func (r *ExpenseRepository) invalidate(ctx context.Context, id uint) error {
	return r.cache.DeleteAll(ctx, "expenses_cache")
}

// Expense types are a small lookup table managed alongside expenses.

func (r *ExpenseRepository) CreateType(ctx context.Context, expenseType *models.ExpenseType) error {
	if err := r.db.Create(expenseType).Error; err != nil {
		return fmt.Errorf("failed to create expense type: %w", err)
	}
	return r.cache.DeleteAll(ctx, "expense_types_cache")
}

func (r *ExpenseRepository) GetAllTypes(ctx context.Context) ([]models.ExpenseType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var types []models.ExpenseType
	if err := r.db.WithContext(ctx).Order("name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to get expense types: %w", err)
	}
	return types, nil
}

func (r *ExpenseRepository) DeleteType(ctx context.Context, id uint) error {
	var count int64
	if err := r.db.Model(&models.Expense{}).Where("expense_type_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count expenses for type: %w", err)
	}
	if count > 0 {
		return errors.New("expense type is still in use")
	}
	if err := r.db.Delete(&models.ExpenseType{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete expense type: %w", err)
	}
	return r.cache.DeleteAll(ctx, "expense_types_cache")
}
