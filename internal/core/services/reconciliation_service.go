package services

import (
	"context"
	"strings"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/metrics"
	"assurgest/internal/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reconciliation targets
const (
	ReconcilePremium         = "prime"
	ReconcileIndemnification = "indemnisation"
)

const bankTransferMethod = "Virement bancaire"

// ReconciliationService imports bank statement lines and matches them to
// premiums and indemnifications
type ReconciliationService struct {
	workflow
	transactions     *repositories.BankTransactionRepository
	premiums         *PremiumService
	indemnifications *IndemnificationService
	premiumRepo      *repositories.PremiumRepository
	indemnityRepo    *repositories.IndemnificationRepository
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(repos *repositories.Set, audit *AuditService, m *metrics.Metrics, premiums *PremiumService, indemnifications *IndemnificationService) *ReconciliationService {
	return &ReconciliationService{
		workflow:         newWorkflow(repos, audit, m),
		transactions:     repos.BankTransactions,
		premiums:         premiums,
		indemnifications: indemnifications,
		premiumRepo:      repos.Premiums,
		indemnityRepo:    repos.Indemnifications,
	}
}

// BankLineInput represents one statement line
type BankLineInput struct {
	Date        string          `json:"date_transaction"`
	Amount      decimal.Decimal `json:"montant"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	Type        string          `json:"type"`
}

// ReconcileInput names the premium or indemnification a line settles
type ReconcileInput struct {
	Kind     string    `json:"type_rapprochement"`
	TargetID uuid.UUID `json:"rapprochement_id"`
}

// Import records statement lines. The whole batch is rejected when one line is invalid.
func (s *ReconciliationService) Import(ctx context.Context, lines []BankLineInput) ([]*models.BankTransaction, error) {
	if len(lines) == 0 {
		return nil, domain.Invalid("transactions", "at least one line is required")
	}

	imported := make([]*models.BankTransaction, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		tx, err := newBankTransaction(line)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[tx.Reference]; dup {
			return nil, domain.Duplicate(domain.EntityBankTransaction, "reference", tx.Reference)
		}
		seen[tx.Reference] = struct{}{}
		imported = append(imported, tx)
	}

	err := s.run(ctx, "bank.import", func(ctx context.Context) error {
		for _, tx := range imported {
			exists, err := s.transactions.Exists(ctx, "reference", tx.Reference)
			if err := ensureUnique(exists, err, domain.EntityBankTransaction, "reference", tx.Reference); err != nil {
				return err
			}
			if err := s.transactions.Create(ctx, tx); err != nil {
				return duplicateAs(err, domain.EntityBankTransaction, "reference", tx.Reference)
			}
			if err := s.audit.Created(ctx, tx, ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "bank lines imported", "count", len(imported))
	return imported, nil
}

// Reconcile settles a premium with a credit line or an indemnification with
// a debit line. The amounts must match and a line is reconciled once.
func (s *ReconciliationService) Reconcile(ctx context.Context, id uuid.UUID, in ReconcileInput) (*models.BankTransaction, error) {
	if in.TargetID == uuid.Nil {
		return nil, domain.Invalid("rapprochement_id", "is required")
	}

	var tx *models.BankTransaction
	err := s.run(ctx, "bank.reconcile", func(ctx context.Context) error {
		var err error
		if tx, err = s.transactions.GetByID(ctx, id); err != nil {
			return err
		}
		if tx.ReconciledWith != nil {
			return domain.Invalid("id_transaction", "transaction %s is already reconciled", tx.Reference)
		}

		payment := PaymentInput{
			Date:      models.FormatDate(tx.Date),
			Method:    bankTransferMethod,
			Reference: tx.Reference,
		}

		switch in.Kind {
		case ReconcilePremium:
			if tx.Type != string(domain.BankCredit) {
				return domain.Invalid("type", "a premium is settled by a credit line")
			}
			premium, err := s.premiumRepo.GetByID(ctx, in.TargetID)
			if err != nil {
				return err
			}
			if !premium.Amount.Equal(tx.Amount) {
				return domain.Invalid("montant", "line amount %s does not match premium amount %s", tx.Amount, premium.Amount)
			}
			if _, err := s.premiums.RecordPayment(ctx, premium.ID, payment); err != nil {
				return err
			}
		case ReconcileIndemnification:
			if tx.Type != string(domain.BankDebit) {
				return domain.Invalid("type", "an indemnification is settled by a debit line")
			}
			indemnification, err := s.indemnityRepo.GetByID(ctx, in.TargetID)
			if err != nil {
				return err
			}
			if !indemnification.Amount.Equal(tx.Amount) {
				return domain.Invalid("montant", "line amount %s does not match indemnification amount %s", tx.Amount, indemnification.Amount)
			}
			if _, err := s.indemnifications.RecordPayment(ctx, indemnification.ID, payment); err != nil {
				return err
			}
		default:
			return domain.Invalid("type_rapprochement", "must be %q or %q", ReconcilePremium, ReconcileIndemnification)
		}

		before := tx.Snapshot()
		kind := in.Kind
		now := actor.Now(ctx)
		tx.ReconciledWith = &in.TargetID
		tx.ReconciledKind = &kind
		tx.ReconciledAt = &now
		if err := s.transactions.Save(ctx, tx); err != nil {
			return err
		}
		_, err = s.audit.Updated(ctx, before, tx, domain.EventReconciled)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "bank line reconciled", "reference", tx.Reference, "type_rapprochement", in.Kind)
	return tx, nil
}

// Get gets a bank transaction
func (s *ReconciliationService) Get(ctx context.Context, id uuid.UUID) (*models.BankTransaction, error) {
	return s.transactions.GetByID(ctx, id)
}

// List lists bank transactions
func (s *ReconciliationService) List(ctx context.Context, unreconciled bool, page pagination.Page) ([]*models.BankTransaction, int64, error) {
	return s.transactions.Search(ctx, unreconciled, page)
}

func newBankTransaction(line BankLineInput) (*models.BankTransaction, error) {
	date, err := parseDate("date_transaction", line.Date)
	if err != nil {
		return nil, err
	}
	reference := strings.TrimSpace(line.Reference)
	if err := required("reference", reference); err != nil {
		return nil, err
	}
	if err := positive("montant", line.Amount); err != nil {
		return nil, err
	}
	kind := domain.BankTransactionType(strings.TrimSpace(line.Type))
	if kind != domain.BankCredit && kind != domain.BankDebit {
		return nil, domain.Invalid("type", "must be %q or %q", domain.BankCredit, domain.BankDebit)
	}
	return &models.BankTransaction{
		ID:          uuid.New(),
		Date:        date,
		Amount:      line.Amount,
		Description: strings.TrimSpace(line.Description),
		Reference:   reference,
		Type:        string(kind),
	}, nil
}
