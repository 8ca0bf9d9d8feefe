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

// ClaimService handles claim declaration and follow-up
type ClaimService struct {
	workflow
	claims           *repositories.ClaimRepository
	contracts        *repositories.ContractRepository
	folders          *repositories.FolderRepository
	indemnifications *repositories.IndemnificationRepository
	users            repositories.UserRepository
}

// NewClaimService creates a new claim service
func NewClaimService(repos *repositories.Set, audit *AuditService, m *metrics.Metrics) *ClaimService {
	return &ClaimService{
		workflow:         newWorkflow(repos, audit, m),
		claims:           repos.Claims,
		contracts:        repos.Contracts,
		folders:          repos.Folders,
		indemnifications: repos.Indemnifications,
		users:            repos.Users,
	}
}

// CreateClaimInput represents claim declaration input
type CreateClaimInput struct {
	Number          string           `json:"numero_sinistre"`
	DeclarationDate string           `json:"date_declaration"`
	IncidentDate    string           `json:"date_incident"`
	Description     string           `json:"description"`
	Type            string           `json:"type_sinistre"`
	EstimatedAmount *decimal.Decimal `json:"montant_estime"`
	ContractID      uuid.UUID        `json:"id_police"`
	FolderID        *uuid.UUID       `json:"id_dossier"`
	AssigneeID      *uuid.UUID       `json:"id_utilisateur"`
}

// UpdateClaimInput represents claim partial update input
type UpdateClaimInput struct {
	Number          *string          `json:"numero_sinistre"`
	DeclarationDate *string          `json:"date_declaration"`
	IncidentDate    *string          `json:"date_incident"`
	Description     *string          `json:"description"`
	Type            *string          `json:"type_sinistre"`
	Status          *string          `json:"statut"`
	EstimatedAmount *decimal.Decimal `json:"montant_estime"`
	SettledAmount   *decimal.Decimal `json:"montant_regle"`
	ResolutionDate  *string          `json:"date_resolution"`
	FolderID        *uuid.UUID       `json:"id_dossier"`
	AssigneeID      *uuid.UUID       `json:"id_utilisateur"`
}

// Create declares a claim against a contract. Status starts at Declared.
func (s *ClaimService) Create(ctx context.Context, in CreateClaimInput) (*models.Claim, error) {
	number := strings.TrimSpace(in.Number)
	if err := required("numero_sinistre", number); err != nil {
		return nil, err
	}
	if in.ContractID == uuid.Nil {
		return nil, domain.Invalid("id_police", "is required")
	}
	incident, err := parseDate("date_incident", in.IncidentDate)
	if err != nil {
		return nil, err
	}
	declared := models.NewDate(actor.Today(ctx))
	if strings.TrimSpace(in.DeclarationDate) != "" {
		if declared, err = parseDate("date_declaration", in.DeclarationDate); err != nil {
			return nil, err
		}
	}

	claim := &models.Claim{
		ID:              uuid.New(),
		Number:          number,
		DeclarationDate: declared,
		IncidentDate:    incident,
		Description:     strings.TrimSpace(in.Description),
		Type:            strings.TrimSpace(in.Type),
		Status:          string(domain.ClaimDeclared),
		ContractID:      in.ContractID,
		FolderID:        in.FolderID,
		AssigneeID:      in.AssigneeID,
	}
	if in.EstimatedAmount != nil {
		claim.EstimatedAmount = decimal.NewNullDecimal(*in.EstimatedAmount)
	}
	if err := validateClaim(claim); err != nil {
		return nil, err
	}

	err = s.run(ctx, "claim.create", func(ctx context.Context) error {
		exists, err := s.claims.Exists(ctx, "numero_sinistre", number)
		if err := ensureUnique(exists, err, domain.EntityClaim, "numero_sinistre", number); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, claim); err != nil {
			return err
		}
		if err := s.claims.Create(ctx, claim); err != nil {
			return duplicateAs(err, domain.EntityClaim, "numero_sinistre", number)
		}
		return s.audit.Created(ctx, claim, "")
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "claim declared", "id_sinistre", claim.ID, "numero_sinistre", claim.Number)
	return claim, nil
}

// Update applies a partial update. Closing a claim without a resolution date
// stamps today.
func (s *ClaimService) Update(ctx context.Context, id uuid.UUID, in UpdateClaimInput) (*models.Claim, error) {
	var claim *models.Claim
	err := s.run(ctx, "claim.update", func(ctx context.Context) error {
		var err error
		claim, err = s.claims.GetByID(ctx, id)
		if err != nil {
			return err
		}
		before := claim.Snapshot()

		if in.Number != nil {
			number := strings.TrimSpace(*in.Number)
			if err := required("numero_sinistre", number); err != nil {
				return err
			}
			if number != claim.Number {
				exists, err := s.claims.ExistsOther(ctx, "numero_sinistre", number, claim.ID)
				if err := ensureUnique(exists, err, domain.EntityClaim, "numero_sinistre", number); err != nil {
					return err
				}
				claim.Number = number
			}
		}
		if in.DeclarationDate != nil {
			if claim.DeclarationDate, err = parseDate("date_declaration", *in.DeclarationDate); err != nil {
				return err
			}
		}
		if in.IncidentDate != nil {
			if claim.IncidentDate, err = parseDate("date_incident", *in.IncidentDate); err != nil {
				return err
			}
		}
		if in.Description != nil {
			claim.Description = strings.TrimSpace(*in.Description)
		}
		if in.Type != nil {
			claim.Type = strings.TrimSpace(*in.Type)
		}
		if in.EstimatedAmount != nil {
			claim.EstimatedAmount = decimal.NewNullDecimal(*in.EstimatedAmount)
		}
		if in.SettledAmount != nil {
			claim.SettledAmount = decimal.NewNullDecimal(*in.SettledAmount)
		}
		if in.FolderID != nil {
			claim.FolderID = in.FolderID
		}
		if in.AssigneeID != nil {
			claim.AssigneeID = in.AssigneeID
		}
		if in.Status != nil {
			next := domain.ClaimStatus(*in.Status)
			if err := domain.ClaimTransitions.Check(domain.EntityClaim, domain.ClaimStatus(claim.Status), next); err != nil {
				return err
			}
			claim.Status = string(next)
		}
		if in.ResolutionDate != nil {
			resolved, err := parseDate("date_resolution", *in.ResolutionDate)
			if err != nil {
				return err
			}
			claim.ResolutionDate = &resolved
		}
		if claim.Status == string(domain.ClaimClosed) && claim.ResolutionDate == nil {
			today := models.NewDate(actor.Today(ctx))
			claim.ResolutionDate = &today
		}

		if err := validateClaim(claim); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, claim); err != nil {
			return err
		}

		if _, _, changed := Diff(before, claim.Snapshot()); len(changed) == 0 {
			return nil
		}
		if err := s.claims.Save(ctx, claim); err != nil {
			return duplicateAs(err, domain.EntityClaim, "numero_sinistre", claim.Number)
		}
		_, err = s.audit.Updated(ctx, before, claim, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// Delete deletes a claim that has no indemnification
func (s *ClaimService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.run(ctx, "claim.delete", func(ctx context.Context) error {
		claim, err := s.claims.GetByID(ctx, id)
		if err != nil {
			return err
		}
		indemnified, err := s.indemnifications.Exists(ctx, "id_sinistre", claim.ID)
		if err != nil {
			return err
		}
		if indemnified {
			return domain.Invalid("id_sinistre", "claim has an indemnification and cannot be deleted")
		}
		if err := s.claims.Delete(ctx, claim); err != nil {
			return err
		}
		return s.audit.Deleted(ctx, claim, "")
	})
}

// Get gets a claim with its contract
func (s *ClaimService) Get(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	return s.claims.GetByID(ctx, id, "Contract")
}

// List lists claims
func (s *ClaimService) List(ctx context.Context, f repositories.ClaimFilter, page pagination.Page) ([]*models.Claim, int64, error) {
	return s.claims.Search(ctx, f, page)
}

func (s *ClaimService) checkReferences(ctx context.Context, c *models.Claim) error {
	if _, err := s.contracts.GetByID(ctx, c.ContractID); err != nil {
		return err
	}
	if c.FolderID != nil {
		folder, err := s.folders.GetByID(ctx, *c.FolderID)
		if err != nil {
			return err
		}
		if folder.ContractID != c.ContractID {
			return domain.Invalid("id_dossier", "folder %s does not belong to contract %s", folder.Number, c.ContractID)
		}
	}
	if c.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *c.AssigneeID); err != nil {
			return err
		}
	}
	return nil
}

func validateClaim(c *models.Claim) error {
	if models.DateBefore(c.DeclarationDate, c.IncidentDate) {
		return domain.Invalid("date_incident", "must not be after date_declaration")
	}
	if c.EstimatedAmount.Valid {
		if err := nonNegative("montant_estime", c.EstimatedAmount.Decimal); err != nil {
			return err
		}
	}
	if c.SettledAmount.Valid {
		if err := nonNegative("montant_regle", c.SettledAmount.Decimal); err != nil {
			return err
		}
	}
	if c.ResolutionDate != nil {
		if c.Status != string(domain.ClaimClosed) {
			return domain.Invalid("date_resolution", "only a closed claim has a resolution date")
		}
		if models.DateBefore(*c.ResolutionDate, c.DeclarationDate) {
			return domain.Invalid("date_resolution", "must not be before date_declaration")
		}
	}
	return nil
}
