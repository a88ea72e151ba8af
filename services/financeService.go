package services

import (
	"LabLedger/cache"
	"LabLedger/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"gorm.io/gorm"
)

const (
	CapitalCacheKey    = "capital_cache"
	CapitalCacheExpiry = 24 * time.Hour

	// Tolerance used when checking that partnership percentages sum to 100.
	percentageTolerance = 0.01
)

// OverdrawPolicy controls what happens when a withdrawal exceeds the pool
// it draws from.
type OverdrawPolicy string

const (
	// OverdrawReject refuses the withdrawal and leaves the ledger untouched.
	OverdrawReject OverdrawPolicy = "reject"
	// OverdrawAllowNegative lets the withdrawal through even when it drives
	// the pool negative.
	OverdrawAllowNegative OverdrawPolicy = "allow_negative"
)

var (
	// ErrInsufficientBalance is returned when a reject-policy withdrawal
	// exceeds the pool it draws from.
	ErrInsufficientBalance = errors.New("withdrawal amount exceeds available balance")

	// ErrPercentageDrift is returned in strict mode when the partnership
	// percentages do not sum to 100.
	ErrPercentageDrift = errors.New("partnership percentages do not sum to 100")

	// ErrPartnerNotFound is returned when a withdrawal or deposit names an
	// unknown partner.
	ErrPartnerNotFound = errors.New("partner not found")
)

// WithdrawalRequest describes one withdrawal against either partner pool.
// Both pools go through this single code path; the pool is selected by the
// transaction source and the overdraw behavior by the policy.
type WithdrawalRequest struct {
	PartnerID   string
	Amount      float64
	Source      string // models.TxSourceCaseProfit or models.TxSourcePersonalWithdrawal
	Policy      OverdrawPolicy
	Date        time.Time
	Description string
}

// PartnerSummary is the per-partner financial read-model.
type PartnerSummary struct {
	Partner         models.Partner `json:"partner"`
	Withdrawals     float64        `json:"withdrawals"`
	RemainingShare  float64        `json:"remaining_share"`
	PersonalBalance float64        `json:"personal_balance"`
}

// DoctorBalance is the per-doctor debt read-model, recomputed on every read.
type DoctorBalance struct {
	TotalDue  float64 `json:"total_due"`
	TotalPaid float64 `json:"total_paid"`
	Remaining float64 `json:"remaining"`
}

// FinanceService owns capital calculation, profit distribution, and the
// partner withdrawal bookkeeping. All recompute-then-distribute sequences
// run inside one database transaction so capital and partner shares can
// never be observed half-updated.
type FinanceService struct {
	db                *gorm.DB
	cache             *cache.Cache
	strictPercentages bool
}

// NewFinanceService builds a FinanceService. cache may be nil, in which
// case Redis invalidation is skipped (tests).
func NewFinanceService(db *gorm.DB, cache *cache.Cache, strictPercentages bool) *FinanceService {
	return &FinanceService{db: db, cache: cache, strictPercentages: strictPercentages}
}

// CalculateCapital recomputes total capital from the ledger and rewrites the
// snapshot row. If either ledger read fails the transaction aborts and the
// snapshot keeps its previous value.
func (s *FinanceService) CalculateCapital(ctx context.Context) (float64, error) {
	var capital float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		capital, err = computeCapital(tx)
		if err != nil {
			return err
		}
		return writeCapitalSnapshot(tx, capital)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to calculate capital: %w", err)
	}

	s.invalidateFinanceCaches(ctx)
	return capital, nil
}

// DistributeProfits overwrites every partner's total_amount with their
// percentage slice of the current capital snapshot. Personal balances and
// the transaction ledger are never touched.
func (s *FinanceService) DistributeProfits(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var snapshot models.CompanyCapital
		if err := tx.First(&snapshot, "id = ?", models.CompanyCapitalID).Error; err != nil {
			return fmt.Errorf("failed to read capital snapshot: %w", err)
		}
		return s.distribute(tx, snapshot.TotalCapital)
	})
	if err != nil {
		return err
	}

	s.invalidateFinanceCaches(ctx)
	return nil
}

// Reconcile recomputes capital and redistributes profit shares in one
// transaction. Mutation services call this after every ledger change; a
// failure aborts the caller's whole operation instead of leaving stale
// figures behind silently.
func (s *FinanceService) Reconcile(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.reconcileTx(tx)
	})
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	s.invalidateFinanceCaches(ctx)
	return nil
}

func (s *FinanceService) reconcileTx(tx *gorm.DB) error {
	capital, err := computeCapital(tx)
	if err != nil {
		return err
	}
	if err := writeCapitalSnapshot(tx, capital); err != nil {
		return err
	}
	return s.distribute(tx, capital)
}

func computeCapital(tx *gorm.DB) (float64, error) {
	var revenue float64
	if err := tx.Model(&models.Case{}).Select("COALESCE(SUM(price), 0)").Scan(&revenue).Error; err != nil {
		return 0, fmt.Errorf("failed to sum case revenue: %w", err)
	}

	var expenses float64
	if err := tx.Model(&models.Expense{}).Select("COALESCE(SUM(total_amount), 0)").Scan(&expenses).Error; err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return revenue - expenses, nil
}

func writeCapitalSnapshot(tx *gorm.DB, capital float64) error {
	snapshot := models.CompanyCapital{ID: models.CompanyCapitalID, TotalCapital: capital}
	if err := tx.Save(&snapshot).Error; err != nil {
		return fmt.Errorf("failed to write capital snapshot: %w", err)
	}
	return nil
}

func (s *FinanceService) distribute(tx *gorm.DB, capital float64) error {
	var partners []models.Partner
	if err := tx.Find(&partners).Error; err != nil {
		return fmt.Errorf("failed to load partners: %w", err)
	}
	if len(partners) == 0 {
		return nil
	}

	if s.strictPercentages {
		var sum float64
		for _, p := range partners {
			sum += p.PartnershipPercentage
		}
		if math.Abs(sum-100) > percentageTolerance {
			return fmt.Errorf("%w: sum is %.2f", ErrPercentageDrift, sum)
		}
	}

	for _, partner := range partners {
		share := capital * partner.PartnershipPercentage / 100
		err := tx.Model(&models.Partner{}).Where("id = ?", partner.ID).
			Update("total_amount", share).Error
		if err != nil {
			return fmt.Errorf("failed to update partner share: %w", err)
		}
	}
	return nil
}

// Withdraw executes one withdrawal against a partner pool and appends the
// ledger row, then reconciles, all inside a single transaction. The
// personal-withdrawal path also decrements the stored personal balance, so
// the balance change and the ledger row commit or roll back together.
func (s *FinanceService) Withdraw(ctx context.Context, req WithdrawalRequest) (*models.PartnerTransaction, error) {
	if req.Amount <= 0 {
		return nil, errors.New("withdrawal amount must be positive")
	}
	if req.Source != models.TxSourceCaseProfit && req.Source != models.TxSourcePersonalWithdrawal {
		return nil, fmt.Errorf("invalid withdrawal source: %s", req.Source)
	}
	if req.Policy == "" {
		// Default policies preserve the documented behavior of the two
		// original withdrawal paths.
		if req.Source == models.TxSourcePersonalWithdrawal {
			req.Policy = OverdrawReject
		} else {
			req.Policy = OverdrawAllowNegative
		}
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	var transaction models.PartnerTransaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var partner models.Partner
		if err := tx.First(&partner, "id = ?", req.PartnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPartnerNotFound
			}
			return fmt.Errorf("failed to load partner: %w", err)
		}

		pool, err := s.poolBalance(tx, &partner, req.Source)
		if err != nil {
			return err
		}
		if req.Policy == OverdrawReject && req.Amount > pool {
			return ErrInsufficientBalance
		}

		if req.Source == models.TxSourcePersonalWithdrawal {
			err := tx.Model(&models.Partner{}).Where("id = ?", partner.ID).
				Update("personal_balance", gorm.Expr("personal_balance - ?", req.Amount)).Error
			if err != nil {
				return fmt.Errorf("failed to decrement personal balance: %w", err)
			}
		}

		transaction = models.PartnerTransaction{
			PartnerID:         req.PartnerID,
			Amount:            req.Amount,
			TransactionType:   models.TxTypeWithdraw,
			TransactionSource: req.Source,
			TransactionDate:   req.Date,
			Description:       req.Description,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return fmt.Errorf("failed to append withdrawal: %w", err)
		}

		return s.reconcileTx(tx)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFinanceCaches(ctx)
	return &transaction, nil
}

// Deposit appends a manual deposit and credits the partner's personal
// balance in the same transaction.
func (s *FinanceService) Deposit(ctx context.Context, partnerID string, amount float64, date time.Time, description string) (*models.PartnerTransaction, error) {
	if amount <= 0 {
		return nil, errors.New("deposit amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	var transaction models.PartnerTransaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var partner models.Partner
		if err := tx.First(&partner, "id = ?", partnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPartnerNotFound
			}
			return fmt.Errorf("failed to load partner: %w", err)
		}

		err := tx.Model(&models.Partner{}).Where("id = ?", partnerID).
			Update("personal_balance", gorm.Expr("personal_balance + ?", amount)).Error
		if err != nil {
			return fmt.Errorf("failed to credit personal balance: %w", err)
		}

		transaction = models.PartnerTransaction{
			PartnerID:         partnerID,
			Amount:            amount,
			TransactionType:   models.TxTypeDeposit,
			TransactionSource: models.TxSourceManual,
			TransactionDate:   date,
			Description:       description,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return fmt.Errorf("failed to append deposit: %w", err)
		}

		return s.reconcileTx(tx)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFinanceCaches(ctx)
	return &transaction, nil
}

func (s *FinanceService) poolBalance(tx *gorm.DB, partner *models.Partner, source string) (float64, error) {
	if source == models.TxSourcePersonalWithdrawal {
		return partner.PersonalBalance, nil
	}

	withdrawals, err := sumShareWithdrawals(tx, partner.ID)
	if err != nil {
		return 0, err
	}
	return partner.TotalAmount - withdrawals, nil
}

func sumShareWithdrawals(tx *gorm.DB, partnerID string) (float64, error) {
	var withdrawals float64
	err := tx.Model(&models.PartnerTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("partner_id = ? AND transaction_type = ? AND transaction_source = ?",
			partnerID, models.TxTypeWithdraw, models.TxSourceCaseProfit).
		Scan(&withdrawals).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum share withdrawals: %w", err)
	}
	return withdrawals, nil
}

// PartnerSummary returns the partner row together with the derived
// withdrawal and remaining-share figures.
func (s *FinanceService) PartnerSummary(ctx context.Context, partnerID string) (*PartnerSummary, error) {
	var partner models.Partner
	err := s.db.WithContext(ctx).First(&partner, "id = ?", partnerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to load partner: %w", err)
	}

	withdrawals, err := sumShareWithdrawals(s.db.WithContext(ctx), partner.ID)
	if err != nil {
		return nil, err
	}

	return &PartnerSummary{
		Partner:         partner,
		Withdrawals:     withdrawals,
		RemainingShare:  partner.TotalAmount - withdrawals,
		PersonalBalance: partner.PersonalBalance,
	}, nil
}

// Capital returns the current capital snapshot, reading through the Redis
// cache when one is configured.
func (s *FinanceService) Capital(ctx context.Context) (*models.CompanyCapital, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, CapitalCacheKey); err == nil {
			var snapshot models.CompanyCapital
			if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
				return &snapshot, nil
			}
		}
	}

	var snapshot models.CompanyCapital
	err := s.db.WithContext(ctx).First(&snapshot, "id = ?", models.CompanyCapitalID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read capital snapshot: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(snapshot); err == nil {
			if err := s.cache.Set(ctx, CapitalCacheKey, data, CapitalCacheExpiry); err != nil {
				log.Printf("Failed to set capital in cache: %v", err)
			}
		}
	}

	return &snapshot, nil
}

// DoctorBalance recomputes a doctor's debt from the ledger. Never cached.
func (s *FinanceService) DoctorBalance(ctx context.Context, doctorID string) (*DoctorBalance, error) {
	db := s.db.WithContext(ctx)

	var totalDue float64
	err := db.Model(&models.Case{}).
		Select("COALESCE(SUM(price), 0)").
		Where("doctor_id = ?", doctorID).
		Scan(&totalDue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum doctor case prices: %w", err)
	}

	var totalPaid float64
	err = db.Model(&models.DoctorTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("doctor_id = ? AND transaction_type = ?", doctorID, models.DoctorTxPayment).
		Scan(&totalPaid).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum doctor payments: %w", err)
	}

	return &DoctorBalance{
		TotalDue:  totalDue,
		TotalPaid: totalPaid,
		Remaining: totalDue - totalPaid,
	}, nil
}

func (s *FinanceService) invalidateFinanceCaches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, CapitalCacheKey); err != nil {
		log.Printf("Failed to delete capital cache: %v", err)
	}
	if err := s.cache.DeleteAll(ctx, "partner_cache:*"); err != nil {
		log.Printf("Failed to delete partner caches: %v", err)
	}
	if err := s.cache.DeleteAll(ctx, "partners_cache"); err != nil {
		log.Printf("Failed to delete partners cache: %v", err)
	}
}
