package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/metrics"
	"assurgest/internal/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PremiumService issues due notices and tracks premium payments
type PremiumService struct {
	workflow
	premiums  *repositories.PremiumRepository
	contracts *repositories.ContractRepository
}

// NewPremiumService creates a new premium service
func NewPremiumService(repos *repositories.Set, audit *AuditService, m *metrics.Metrics) *PremiumService {
	return &PremiumService{
		workflow:  newWorkflow(repos, audit, m),
		premiums:  repos.Premiums,
		contracts: repos.Contracts,
	}
}

// DueNoticeInput represents a due notice request. Empty fields fall back to
// the contract premium and one month from today.
type DueNoticeInput struct {
	ContractID uuid.UUID        `json:"id_police"`
	DueDate    string           `json:"date_echeance"`
	Amount     *decimal.Decimal `json:"montant"`
}

// GenerateDueNotice creates a pending premium for a contract
func (s *PremiumService) GenerateDueNotice(ctx context.Context, in DueNoticeInput) (*models.Premium, error) {
	if in.ContractID == uuid.Nil {
		return nil, domain.Invalid("id_police", "is required")
	}
	due := models.NewDate(actor.Today(ctx).AddDate(0, 1, 0))
	if strings.TrimSpace(in.DueDate) != "" {
		d, err := parseDate("date_echeance", in.DueDate)
		if err != nil {
			return nil, err
		}
		due = d
	}

	var premium *models.Premium
	err := s.run(ctx, "premium.due_notice", func(ctx context.Context) error {
		contract, err := s.contracts.GetByID(ctx, in.ContractID)
		if err != nil {
			return err
		}
		if contract.Status == string(domain.ContractCancelled) {
			return domain.InvalidState(domain.EntityContract, domain.ContractStatus(contract.Status),
				domain.ContractActive, domain.ContractPending, domain.ContractRenewed, domain.ContractExpired)
		}

		amount := contract.Premium
		if in.Amount != nil {
			amount = *in.Amount
		}
		if err := positive("montant", amount); err != nil {
			return err
		}

		exists, err := s.premiums.Exists(ctx, "id_police", contract.ID, repositories.Where("date_echeance", due))
		if err := ensureUnique(exists, err, domain.EntityPremium, "date_echeance", models.FormatDate(due)); err != nil {
			return err
		}

		premium = &models.Premium{
			ID:         uuid.New(),
			ContractID: contract.ID,
			Amount:     amount,
			DueDate:    due,
			Status:     string(domain.PremiumPending),
		}
		if err := s.premiums.Create(ctx, premium); err != nil {
			return err
		}
		return s.audit.Created(ctx, premium, domain.EventPremiumDueNotice)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "premium due notice issued", "id_prime", premium.ID, "date_echeance", models.FormatDate(premium.DueDate))
	return premium, nil
}

// RecordPayment marks a pending or unpaid premium as paid
func (s *PremiumService) RecordPayment(ctx context.Context, id uuid.UUID, in PaymentInput) (*models.Premium, error) {
	var premium *models.Premium
	err := s.run(ctx, "premium.pay", func(ctx context.Context) error {
		var err error
		premium, err = s.premiums.GetByID(ctx, id)
		if err != nil {
			return err
		}
		date, method, reference, err := in.resolve(models.NewDate(actor.Today(ctx)))
		if err != nil {
			return err
		}
		return s.markPaid(ctx, premium, date, method, reference, domain.EventPremiumPaid)
	})
	if err != nil {
		return nil, err
	}
	return premium, nil
}

// markPaid moves premium to Paid inside the caller's transaction
func (s *PremiumService) markPaid(ctx context.Context, premium *models.Premium, date datatypes.Date, method, reference, eventType string) error {
	current := domain.PremiumStatus(premium.Status)
	if current == domain.PremiumPaid {
		return domain.InvalidState(domain.EntityPremium, current, domain.PremiumPending, domain.PremiumUnpaid)
	}
	if err := domain.PremiumTransitions.Check(domain.EntityPremium, current, domain.PremiumPaid); err != nil {
		return err
	}

	before := premium.Snapshot()
	premium.Status = string(domain.PremiumPaid)
	premium.PaymentDate = &date
	premium.PaymentMethod = &method
	premium.PaymentReference = &reference
	if err := s.premiums.Save(ctx, premium); err != nil {
		return err
	}
	_, err := s.audit.Updated(ctx, before, premium, eventType)
	return err
}

// MarkOverdue moves pending premiums due before day to Unpaid, one
// transaction per premium.
func (s *PremiumService) MarkOverdue(ctx context.Context, day time.Time) (int, error) {
	overdue, err := s.premiums.FindOverdue(ctx, day)
	if err != nil {
		return 0, err
	}

	var errs []error
	marked := 0
	for _, p := range overdue {
		id := p.ID
		err := s.run(ctx, "premium.overdue", func(ctx context.Context) error {
			premium, err := s.premiums.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if err := domain.PremiumTransitions.Check(domain.EntityPremium, domain.PremiumStatus(premium.Status), domain.PremiumUnpaid); err != nil {
				return err
			}
			before := premium.Snapshot()
			premium.Status = string(domain.PremiumUnpaid)
			if err := s.premiums.Save(ctx, premium); err != nil {
				return err
			}
			_, err = s.audit.Updated(ctx, before, premium, domain.EventPremiumOverdue)
			return err
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("premium %s: %w", id, err))
			continue
		}
		marked++
	}
	return marked, errors.Join(errs...)
}

// Get gets a premium
func (s *PremiumService) Get(ctx context.Context, id uuid.UUID) (*models.Premium, error) {
	return s.premiums.GetByID(ctx, id)
}

// ListByContract lists the premiums of a contract
func (s *PremiumService) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*models.Premium, error) {
	if _, err := s.contracts.GetByID(ctx, contractID); err != nil {
		return nil, err
	}
	return s.premiums.ListByContract(ctx, contractID)
}

// List lists premiums
func (s *PremiumService) List(ctx context.Context, status string, page pagination.Page) ([]*models.Premium, int64, error) {
	return s.premiums.Search(ctx, status, page)
}
