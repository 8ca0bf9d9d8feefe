package services

import (
	"context"
	"strings"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/metrics"

	"github.com/google/uuid"
)

// ReferenceService handles insurance types, companies and folder states
type ReferenceService struct {
	workflow
	types     *repositories.InsuranceTypeRepository
	companies *repositories.CompanyRepository
	states    *repositories.FolderStateRepository
	contracts *repositories.ContractRepository
	folders   *repositories.FolderRepository
}

// NewReferenceService creates a new reference service
func NewReferenceService(repos *repositories.Set, audit *AuditService, m *metrics.Metrics) *ReferenceService {
	return &ReferenceService{
		workflow:  newWorkflow(repos, audit, m),
		types:     repos.InsuranceTypes,
		companies: repos.Companies,
		states:    repos.FolderStates,
		contracts: repos.Contracts,
		folders:   repos.Folders,
	}
}

// NamedInput represents a name and description pair
type NamedInput struct {
	Name        string `json:"nom"`
	Description string `json:"description"`
}

// CompanyInput represents company input
type CompanyInput struct {
	Name    string `json:"nom_compagnie"`
	Address string `json:"adresse"`
	Phone   string `json:"telephone"`
	Email   string `json:"email"`
}

// ---- Insurance types ----

// ListInsuranceTypes lists insurance types
func (s *ReferenceService) ListInsuranceTypes(ctx context.Context) ([]*models.InsuranceType, error) {
	return s.types.ListAll(ctx)
}

// CreateInsuranceType creates an insurance type with a unique name
func (s *ReferenceService) CreateInsuranceType(ctx context.Context, in NamedInput) (*models.InsuranceType, error) {
	name := strings.TrimSpace(in.Name)
	if err := required("nom", name); err != nil {
		return nil, err
	}
	t := &models.InsuranceType{ID: uuid.New(), Name: name, Description: strings.TrimSpace(in.Description)}
	err := s.run(ctx, "insurance_type.create", func(ctx context.Context) error {
		exists, err := s.types.Exists(ctx, "nom", name)
		if err := ensureUnique(exists, err, domain.EntityInsuranceType, "nom", name); err != nil {
			return err
		}
		return duplicateAs(s.types.Create(ctx, t), domain.EntityInsuranceType, "nom", name)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateInsuranceType renames or redescribes an insurance type
func (s *ReferenceService) UpdateInsuranceType(ctx context.Context, id uuid.UUID, in NamedInput) (*models.InsuranceType, error) {
	name := strings.TrimSpace(in.Name)
	if err := required("nom", name); err != nil {
		return nil, err
	}
	var t *models.InsuranceType
	err := s.run(ctx, "insurance_type.update", func(ctx context.Context) error {
		var err error
		if t, err = s.types.GetByID(ctx, id); err != nil {
			return err
		}
		exists, err := s.types.ExistsOther(ctx, "nom", name, id)
		if err := ensureUnique(exists, err, domain.EntityInsuranceType, "nom", name); err != nil {
			return err
		}
		t.Name = name
		t.Description = strings.TrimSpace(in.Description)
		return duplicateAs(s.types.Save(ctx, t), domain.EntityInsuranceType, "nom", name)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteInsuranceType deletes an insurance type no contract uses
func (s *ReferenceService) DeleteInsuranceType(ctx context.Context, id uuid.UUID) error {
	return s.run(ctx, "insurance_type.delete", func(ctx context.Context) error {
		t, err := s.types.GetByID(ctx, id)
		if err != nil {
			return err
		}
		used, err := s.contracts.Exists(ctx, "id_type_assurance", id)
		if err != nil {
			return err
		}
		if used {
			return domain.Invalid("id_type_assurance", "insurance type %q is used by contracts", t.Name)
		}
		return s.types.Delete(ctx, t)
	})
}

// ---- Companies ----

// ListCompanies lists companies
func (s *ReferenceService) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	return s.companies.ListAll(ctx)
}

// CreateCompany creates a company
func (s *ReferenceService) CreateCompany(ctx context.Context, in CompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(in.Name)
	if err := required("nom_compagnie", name); err != nil {
		return nil, err
	}
	c := &models.Company{
		ID:      uuid.New(),
		Name:    name,
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
	}
	err := s.run(ctx, "company.create", func(ctx context.Context) error {
		return s.companies.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCompany replaces a company's details
func (s *ReferenceService) UpdateCompany(ctx context.Context, id uuid.UUID, in CompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(in.Name)
	if err := required("nom_compagnie", name); err != nil {
		return nil, err
	}
	var c *models.Company
	err := s.run(ctx, "company.update", func(ctx context.Context) error {
		var err error
		if c, err = s.companies.GetByID(ctx, id); err != nil {
			return err
		}
		c.Name = name
		c.Address = strings.TrimSpace(in.Address)
		c.Phone = strings.TrimSpace(in.Phone)
		c.Email = strings.TrimSpace(in.Email)
		return s.companies.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCompany deletes a company no contract uses
func (s *ReferenceService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return s.run(ctx, "company.delete", func(ctx context.Context) error {
		c, err := s.companies.GetByID(ctx, id)
		if err != nil {
			return err
		}
		used, err := s.contracts.Exists(ctx, "id_compagnie", id)
		if err != nil {
			return err
		}
		if used {
			return domain.Invalid("id_compagnie", "company %q is used by contracts", c.Name)
		}
		return s.companies.Delete(ctx, c)
	})
}

// ---- Folder states ----

// ListFolderStates lists folder states
func (s *ReferenceService) ListFolderStates(ctx context.Context) ([]*models.FolderState, error) {
	return s.states.ListAll(ctx)
}

// CreateFolderState creates a folder state with a unique name
func (s *ReferenceService) CreateFolderState(ctx context.Context, in NamedInput) (*models.FolderState, error) {
	name := strings.TrimSpace(in.Name)
	if err := required("nom_etat", name); err != nil {
		return nil, err
	}
	st := &models.FolderState{ID: uuid.New(), Name: name, Description: strings.TrimSpace(in.Description)}
	err := s.run(ctx, "folder_state.create", func(ctx context.Context) error {
		exists, err := s.states.Exists(ctx, "nom_etat", name)
		if err := ensureUnique(exists, err, domain.EntityFolderState, "nom_etat", name); err != nil {
			return err
		}
		return duplicateAs(s.states.Create(ctx, st), domain.EntityFolderState, "nom_etat", name)
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// DeleteFolderState deletes a folder state no folder uses
func (s *ReferenceService) DeleteFolderState(ctx context.Context, id uuid.UUID) error {
	return s.run(ctx, "folder_state.delete", func(ctx context.Context) error {
		st, err := s.states.GetByID(ctx, id)
		if err != nil {
			return err
		}
		used, err := s.folders.Exists(ctx, "id_etat_dossier", id)
		if err != nil {
			return err
		}
		if used {
			return domain.Invalid("id_etat_dossier", "folder state %q is used by folders", st.Name)
		}
		return s.states.Delete(ctx, st)
	})
}
