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

// activeIndemnification lists the statuses that block a new proposal for the same claim
var activeIndemnification = []domain.IndemnificationStatus{
	domain.IndemnificationPending,
	domain.IndemnificationValidated,
	domain.IndemnificationPaid,
}

// IndemnificationService drives the propose, validate, pay sequence
type IndemnificationService struct {
	workflow
	indemnifications *repositories.IndemnificationRepository
	claims           *repositories.ClaimRepository
}

// NewIndemnificationService creates a new indemnification service
func NewIndemnificationService(repos *repositories.Set, audit *AuditService, m *metrics.Metrics) *IndemnificationService {
	return &IndemnificationService{
		workflow:         newWorkflow(repos, audit, m),
		indemnifications: repos.Indemnifications,
		claims:           repos.Claims,
	}
}

// ProposeInput represents an indemnification proposal
type ProposeInput struct {
	ClaimID     uuid.UUID       `json:"id_sinistre"`
	Amount      decimal.Decimal `json:"montant"`
	Description string          `json:"description_indemnisation"`
}

// Propose opens an indemnification for an approved claim. A claim has at most one.
func (s *IndemnificationService) Propose(ctx context.Context, in ProposeInput) (*models.Indemnification, error) {
	if in.ClaimID == uuid.Nil {
		return nil, domain.Invalid("id_sinistre", "is required")
	}
	if err := positive("montant", in.Amount); err != nil {
		return nil, err
	}

	indemnification := &models.Indemnification{
		ID:          uuid.New(),
		ClaimID:     in.ClaimID,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Status:      string(domain.IndemnificationPending),
	}

	err := s.run(ctx, "indemnification.propose", func(ctx context.Context) error {
		claim, err := s.claims.GetByID(ctx, in.ClaimID)
		if err != nil {
			return err
		}
		if status := domain.ClaimStatus(claim.Status); status != domain.ClaimApproved {
			return domain.InvalidState(domain.EntityClaim, status, domain.ClaimApproved)
		}
		exists, err := s.indemnifications.ExistsForClaim(ctx, in.ClaimID, activeIndemnification...)
		if err := ensureUnique(exists, err, domain.EntityIndemnification, "id_sinistre", in.ClaimID.String()); err != nil {
			return err
		}
		if err := s.indemnifications.Create(ctx, indemnification); err != nil {
			return err
		}
		return s.audit.Created(ctx, indemnification, domain.EventIndemnificationProposed)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "indemnification proposed", "id_indemnisation", indemnification.ID, "montant", indemnification.Amount.String())
	return indemnification, nil
}

// Validate approves a proposal. Only a pending indemnification can be validated.
func (s *IndemnificationService) Validate(ctx context.Context, id uuid.UUID) (*models.Indemnification, error) {
	return s.advance(ctx, "indemnification.validate", id, domain.IndemnificationPending, func(ctx context.Context, i *models.Indemnification) error {
		i.Status = string(domain.IndemnificationValidated)
		return nil
	}, domain.EventIndemnificationApproved)
}

// RecordPayment marks a validated indemnification as paid
func (s *IndemnificationService) RecordPayment(ctx context.Context, id uuid.UUID, in PaymentInput) (*models.Indemnification, error) {
	return s.advance(ctx, "indemnification.pay", id, domain.IndemnificationValidated, func(ctx context.Context, i *models.Indemnification) error {
		date, method, reference, err := in.resolve(models.NewDate(actor.Today(ctx)))
		if err != nil {
			return err
		}
		i.PaymentDate = &date
		i.PaymentMethod = &method
		i.PaymentReference = &reference
		i.Status = string(domain.IndemnificationPaid)
		return nil
	}, domain.EventIndemnificationPaid)
}

// advance runs one guarded step: the indemnification must be exactly in from
func (s *IndemnificationService) advance(ctx context.Context, operation string, id uuid.UUID, from domain.IndemnificationStatus, mutate func(context.Context, *models.Indemnification) error, eventType string) (*models.Indemnification, error) {
	var indemnification *models.Indemnification
	err := s.run(ctx, operation, func(ctx context.Context) error {
		var err error
		indemnification, err = s.indemnifications.GetByID(ctx, id)
		if err != nil {
			return err
		}
		current := domain.IndemnificationStatus(indemnification.Status)
		if current != from {
			return domain.InvalidState(domain.EntityIndemnification, current, from)
		}

		before := indemnification.Snapshot()
		if err := mutate(ctx, indemnification); err != nil {
			return err
		}
		next := domain.IndemnificationStatus(indemnification.Status)
		if err := domain.IndemnificationTransitions.Check(domain.EntityIndemnification, current, next); err != nil {
			return err
		}
		if err := s.indemnifications.Save(ctx, indemnification); err != nil {
			return err
		}
		_, err = s.audit.Updated(ctx, before, indemnification, eventType)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "indemnification advanced", "id_indemnisation", id, "statut", indemnification.Status)
	return indemnification, nil
}

// Get gets an indemnification
func (s *IndemnificationService) Get(ctx context.Context, id uuid.UUID) (*models.Indemnification, error) {
	return s.indemnifications.GetByID(ctx, id)
}

// ListByClaim lists the indemnifications of a claim
func (s *IndemnificationService) ListByClaim(ctx context.Context, claimID uuid.UUID) ([]*models.Indemnification, error) {
	if _, err := s.claims.GetByID(ctx, claimID); err != nil {
		return nil, err
	}
	return s.indemnifications.ListByClaim(ctx, claimID)
}

// List lists indemnifications
func (s *IndemnificationService) List(ctx context.Context, status string, page pagination.Page) ([]*models.Indemnification, int64, error) {
	return s.indemnifications.Search(ctx, status, page)
}
