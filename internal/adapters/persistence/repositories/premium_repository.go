package repositories

import (
	"context"
	"time"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/pagination"

	"gorm.io/gorm"
)

// PremiumRepository handles premium data access
type PremiumRepository struct {
	Repository[models.Premium]
}

// NewPremiumRepository creates a new premium repository
func NewPremiumRepository(db *gorm.DB) *PremiumRepository {
	return &PremiumRepository{newRepository[models.Premium](db, domain.EntityPremium, "id_prime")}
}

// ListByContract returns the premiums of a contract by due date
func (r *PremiumRepository) ListByContract(ctx context.Context, contractID any) ([]*models.Premium, error) {
	return r.Find(ctx, Where("id_police", contractID), OrderBy("date_echeance ASC"))
}

// Search lists premiums, optionally by status
func (r *PremiumRepository) Search(ctx context.Context, status string, page pagination.Page) ([]*models.Premium, int64, error) {
	scopes := []Scope{OrderBy("date_echeance DESC")}
	if status != "" {
		scopes = append(scopes, Where("statut", status))
	}
	return r.List(ctx, page, scopes...)
}

// FindOverdue returns pending premiums due before day
func (r *PremiumRepository) FindOverdue(ctx context.Context, day time.Time) ([]*models.Premium, error) {
	return r.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("statut = ? AND date_echeance < ?", string(domain.PremiumPending), models.NewDate(day))
	}, OrderBy("date_echeance ASC"))
}

// BankTransactionRepository handles bank transaction data access
type BankTransactionRepository struct {
	Repository[models.BankTransaction]
}

// NewBankTransactionRepository creates a new bank transaction repository
func NewBankTransactionRepository(db *gorm.DB) *BankTransactionRepository {
	return &BankTransactionRepository{newRepository[models.BankTransaction](db, domain.EntityBankTransaction, "id_transaction")}
}

// Search lists transactions; unreconciled restricts to open lines
func (r *BankTransactionRepository) Search(ctx context.Context, unreconciled bool, page pagination.Page) ([]*models.BankTransaction, int64, error) {
	scopes := []Scope{OrderBy("date_transaction DESC")}
	if unreconciled {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("rapprochement_id IS NULL")
		})
	}
	return r.List(ctx, page, scopes...)
}
