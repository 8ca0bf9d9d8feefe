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
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/metrics"
	"assurgest/internal/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractService handles the contract lifecycle
type ContractService struct {
	workflow
	contracts *repositories.ContractRepository
	clients   *repositories.ClientRepository
	types     *repositories.InsuranceTypeRepository
	companies *repositories.CompanyRepository
	users     repositories.UserRepository
}

// NewContractService creates a new contract service
func NewContractService(repos *repositories.Set, audit *AuditService, m *metrics.Metrics) *ContractService {
	return &ContractService{
		workflow:  newWorkflow(repos, audit, m),
		contracts: repos.Contracts,
		clients:   repos.Clients,
		types:     repos.InsuranceTypes,
		companies: repos.Companies,
		users:     repos.Users,
	}
}

// CreateContractInput represents contract create input
type CreateContractInput struct {
	Number          string           `json:"numero_contrat"`
	StartDate       string           `json:"date_debut"`
	EndDate         string           `json:"date_fin"`
	Premium         *decimal.Decimal `json:"montant_prime"`
	Status          string           `json:"statut"`
	ClientID        uuid.UUID        `json:"id_client"`
	InsuranceTypeID uuid.UUID        `json:"id_type_assurance"`
	CompanyID       uuid.UUID        `json:"id_compagnie"`
	ManagerID       *uuid.UUID       `json:"id_utilisateur"`
}

// UpdateContractInput represents contract partial update input
type UpdateContractInput struct {
	Number          *string          `json:"numero_contrat"`
	StartDate       *string          `json:"date_debut"`
	EndDate         *string          `json:"date_fin"`
	Premium         *decimal.Decimal `json:"montant_prime"`
	Status          *string          `json:"statut"`
	ClientID        *uuid.UUID       `json:"id_client"`
	InsuranceTypeID *uuid.UUID       `json:"id_type_assurance"`
	CompanyID       *uuid.UUID       `json:"id_compagnie"`
	ManagerID       *uuid.UUID       `json:"id_utilisateur"`
}

// RenewContractInput represents contract renewal input
type RenewContractInput struct {
	NewEndDate string           `json:"nouvelle_date_fin"`
	NewPremium *decimal.Decimal `json:"nouveau_montant_prime"`
}

// Create creates a contract. Status defaults to Active.
func (s *ContractService) Create(ctx context.Context, in CreateContractInput) (*models.Contract, error) {
	number := strings.TrimSpace(in.Number)
	if err := required("numero_contrat", number); err != nil {
		return nil, err
	}
	start, err := parseDate("date_debut", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("date_fin", in.EndDate)
	if err != nil {
		return nil, err
	}
	if in.Premium == nil {
		return nil, domain.Invalid("montant_prime", "is required")
	}
	for field, id := range map[string]uuid.UUID{
		"id_client":         in.ClientID,
		"id_type_assurance": in.InsuranceTypeID,
		"id_compagnie":      in.CompanyID,
	} {
		if id == uuid.Nil {
			return nil, domain.Invalid(field, "is required")
		}
	}

	status := domain.ContractActive
	if in.Status != "" {
		status = domain.ContractStatus(in.Status)
		if status != domain.ContractActive && status != domain.ContractPending {
			return nil, domain.Invalid("statut", "a new contract must be %q or %q", domain.ContractActive, domain.ContractPending)
		}
	}

	contract := &models.Contract{
		ID:              uuid.New(),
		Number:          number,
		StartDate:       start,
		EndDate:         end,
		Premium:         *in.Premium,
		Status:          string(status),
		ClientID:        in.ClientID,
		InsuranceTypeID: in.InsuranceTypeID,
		CompanyID:       in.CompanyID,
		ManagerID:       in.ManagerID,
	}
	if err := validateContract(contract); err != nil {
		return nil, err
	}

	err = s.run(ctx, "contract.create", func(ctx context.Context) error {
		exists, err := s.contracts.Exists(ctx, "numero_contrat", number)
		if err := ensureUnique(exists, err, domain.EntityContract, "numero_contrat", number); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, contract); err != nil {
			return err
		}
		if err := s.contracts.Create(ctx, contract); err != nil {
			return duplicateAs(err, domain.EntityContract, "numero_contrat", number)
		}
		return s.audit.Created(ctx, contract, "")
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "contract created", "id_police", contract.ID, "numero_contrat", contract.Number)
	return contract, nil
}

// Update applies a partial update. Status writes go through the transition table.
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, in UpdateContractInput) (*models.Contract, error) {
	var contract *models.Contract
	err := s.run(ctx, "contract.update", func(ctx context.Context) error {
		var err error
		contract, err = s.contracts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		before := contract.Snapshot()

		if in.Number != nil {
			number := strings.TrimSpace(*in.Number)
			if err := required("numero_contrat", number); err != nil {
				return err
			}
			if number != contract.Number {
				exists, err := s.contracts.ExistsOther(ctx, "numero_contrat", number, contract.ID)
				if err := ensureUnique(exists, err, domain.EntityContract, "numero_contrat", number); err != nil {
					return err
				}
				contract.Number = number
			}
		}
		if in.StartDate != nil {
			if contract.StartDate, err = parseDate("date_debut", *in.StartDate); err != nil {
				return err
			}
		}
		if in.EndDate != nil {
			if contract.EndDate, err = parseDate("date_fin", *in.EndDate); err != nil {
				return err
			}
		}
		if in.Premium != nil {
			contract.Premium = *in.Premium
		}
		if in.Status != nil {
			next := domain.ContractStatus(*in.Status)
			if string(next) != contract.Status {
				switch next {
				case domain.ContractRenewed:
					return domain.Invalid("statut", "use the renewal operation to renew a contract")
				case domain.ContractExpired:
					return domain.Invalid("statut", "contracts expire only when their end date has passed")
				}
			}
			if err := domain.ContractTransitions.Check(domain.EntityContract, domain.ContractStatus(contract.Status), next); err != nil {
				return err
			}
			contract.Status = string(next)
		}
		if in.ClientID != nil {
			contract.ClientID = *in.ClientID
		}
		if in.InsuranceTypeID != nil {
			contract.InsuranceTypeID = *in.InsuranceTypeID
		}
		if in.CompanyID != nil {
			contract.CompanyID = *in.CompanyID
		}
		if in.ManagerID != nil {
			contract.ManagerID = in.ManagerID
		}

		if err := validateContract(contract); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, contract); err != nil {
			return err
		}
		return s.save(ctx, before, contract, "")
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// Renew extends a contract. The new end date must be after the current one.
func (s *ContractService) Renew(ctx context.Context, id uuid.UUID, in RenewContractInput) (*models.Contract, error) {
	var contract *models.Contract
	err := s.run(ctx, "contract.renew", func(ctx context.Context) error {
		var err error
		contract, err = s.contracts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		newEnd, err := parseDate("nouvelle_date_fin", in.NewEndDate)
		if err != nil {
			return err
		}
		if !models.DateBefore(contract.EndDate, newEnd) {
			return domain.Invalid("nouvelle_date_fin", "must be after the current end date %s", models.FormatDate(contract.EndDate))
		}
		if in.NewPremium != nil {
			if err := nonNegative("nouveau_montant_prime", *in.NewPremium); err != nil {
				return err
			}
		}
		if err := domain.ContractTransitions.Check(domain.EntityContract, domain.ContractStatus(contract.Status), domain.ContractRenewed); err != nil {
			return err
		}

		before := contract.Snapshot()
		contract.EndDate = newEnd
		contract.Status = string(domain.ContractRenewed)
		if in.NewPremium != nil {
			contract.Premium = *in.NewPremium
		}
		return s.save(ctx, before, contract, domain.EventContractRenewed)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "contract renewed", "id_police", contract.ID, "date_fin", models.FormatDate(contract.EndDate))
	return contract, nil
}

// Cancel cancels a contract that is not already cancelled
func (s *ContractService) Cancel(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var contract *models.Contract
	err := s.run(ctx, "contract.cancel", func(ctx context.Context) error {
		var err error
		contract, err = s.contracts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if contract.Status == string(domain.ContractCancelled) {
			return domain.Invalid("statut", "contract is already cancelled")
		}
		if err := domain.ContractTransitions.Check(domain.EntityContract, domain.ContractStatus(contract.Status), domain.ContractCancelled); err != nil {
			return err
		}

		before := contract.Snapshot()
		contract.Status = string(domain.ContractCancelled)
		return s.save(ctx, before, contract, domain.EventContractCancelled)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "contract cancelled", "id_police", contract.ID)
	return contract, nil
}

// Delete deletes a contract that no folder, claim or premium references
func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.run(ctx, "contract.delete", func(ctx context.Context) error {
		contract, err := s.contracts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		dependents, err := s.contracts.CountDependents(ctx, id)
		if err != nil {
			return err
		}
		if dependents > 0 {
			return domain.Invalid("id_police", "contract is referenced by %d folder, claim or premium rows", dependents)
		}
		if err := s.contracts.Delete(ctx, contract); err != nil {
			return err
		}
		return s.audit.Deleted(ctx, contract, "")
	})
}

// Get gets a contract with its relations
func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	return s.contracts.GetWithRelations(ctx, id)
}

// List lists contracts
func (s *ContractService) List(ctx context.Context, f repositories.ContractFilter, page pagination.Page) ([]*models.Contract, int64, error) {
	return s.contracts.Search(ctx, f, page)
}

// ExpireLapsed moves every in-force contract whose end date is before day to
// Expired. Each contract is its own transaction so one failure does not block
// the others.
func (s *ContractService) ExpireLapsed(ctx context.Context, day time.Time) (int, error) {
	lapsed, err := s.contracts.FindLapsed(ctx, day)
	if err != nil {
		return 0, err
	}

	var errs []error
	expired := 0
	for _, c := range lapsed {
		id := c.ID
		err := s.run(ctx, "contract.expire", func(ctx context.Context) error {
			contract, err := s.contracts.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if err := domain.ContractTransitions.Check(domain.EntityContract, domain.ContractStatus(contract.Status), domain.ContractExpired); err != nil {
				return err
			}
			before := contract.Snapshot()
			contract.Status = string(domain.ContractExpired)
			return s.save(ctx, before, contract, domain.EventContractExpired)
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("expire %s: %w", c.Number, err))
			continue
		}
		expired++
	}
	return expired, errors.Join(errs...)
}

// save persists the contract and records the change, skipping both when nothing changed
func (s *ContractService) save(ctx context.Context, before map[string]any, contract *models.Contract, eventType string) error {
	if _, _, changed := Diff(before, contract.Snapshot()); len(changed) == 0 {
		return nil
	}
	if err := s.contracts.Save(ctx, contract); err != nil {
		return duplicateAs(err, domain.EntityContract, "numero_contrat", contract.Number)
	}
	_, err := s.audit.Updated(ctx, before, contract, eventType)
	return err
}

func (s *ContractService) checkReferences(ctx context.Context, c *models.Contract) error {
	if _, err := s.clients.GetByID(ctx, c.ClientID); err != nil {
		return err
	}
	if _, err := s.types.GetByID(ctx, c.InsuranceTypeID); err != nil {
		return err
	}
	if _, err := s.companies.GetByID(ctx, c.CompanyID); err != nil {
		return err
	}
	if c.ManagerID != nil {
		if _, err := s.users.GetByID(ctx, *c.ManagerID); err != nil {
			return err
		}
	}
	return nil
}

func validateContract(c *models.Contract) error {
	if !models.DateBefore(c.StartDate, c.EndDate) {
		return domain.Invalid("date_fin", "must be after date_debut")
	}
	return nonNegative("montant_prime", c.Premium)
}
