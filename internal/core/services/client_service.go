package services

import (
	"context"
	"strings"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/metrics"
	"assurgest/internal/pkg/pagination"

	"github.com/google/uuid"
)

// ClientService handles client business logic
type ClientService struct {
	workflow
	clients *repositories.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(repos *repositories.Set, audit *AuditService, m *metrics.Metrics) *ClientService {
	return &ClientService{
		workflow: newWorkflow(repos, audit, m),
		clients:  repos.Clients,
	}
}

// ClientInput represents client create input
type ClientInput struct {
	LastName   string `json:"nom"`
	FirstName  string `json:"prenom"`
	Email      string `json:"email"`
	Phone      string `json:"telephone"`
	NationalID string `json:"carte_identite"`
	Address    string `json:"adresse"`
}

// UpdateClientInput represents client partial update input
type UpdateClientInput struct {
	LastName   *string `json:"nom"`
	FirstName  *string `json:"prenom"`
	Email      *string `json:"email"`
	Phone      *string `json:"telephone"`
	NationalID *string `json:"carte_identite"`
	Address    *string `json:"adresse"`
}

// Create creates a client
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	client := &models.Client{
		ID:         uuid.New(),
		LastName:   strings.TrimSpace(in.LastName),
		FirstName:  strings.TrimSpace(in.FirstName),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      strings.TrimSpace(in.Phone),
		NationalID: strings.TrimSpace(in.NationalID),
		Address:    strings.TrimSpace(in.Address),
	}
	if err := validateClient(client); err != nil {
		return nil, err
	}

	err := s.run(ctx, "client.create", func(ctx context.Context) error {
		if err := s.checkUnique(ctx, client); err != nil {
			return err
		}
		if err := s.clients.Create(ctx, client); err != nil {
			return duplicateAs(err, domain.EntityClient, "email", client.Email)
		}
		return s.audit.Created(ctx, client, "")
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Update applies a partial update to a client
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, in UpdateClientInput) (*models.Client, error) {
	var client *models.Client
	err := s.run(ctx, "client.update", func(ctx context.Context) error {
		var err error
		client, err = s.clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		before := client.Snapshot()

		if in.LastName != nil {
			client.LastName = strings.TrimSpace(*in.LastName)
		}
		if in.FirstName != nil {
			client.FirstName = strings.TrimSpace(*in.FirstName)
		}
		if in.Email != nil {
			client.Email = strings.ToLower(strings.TrimSpace(*in.Email))
		}
		if in.Phone != nil {
			client.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.NationalID != nil {
			client.NationalID = strings.TrimSpace(*in.NationalID)
		}
		if in.Address != nil {
			client.Address = strings.TrimSpace(*in.Address)
		}
		if err := validateClient(client); err != nil {
			return err
		}
		if err := s.checkUnique(ctx, client); err != nil {
			return err
		}

		if _, _, changed := Diff(before, client.Snapshot()); len(changed) == 0 {
			return nil
		}
		if err := s.clients.Save(ctx, client); err != nil {
			return duplicateAs(err, domain.EntityClient, "email", client.Email)
		}
		_, err = s.audit.Updated(ctx, before, client, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Delete deletes a client without contracts
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.run(ctx, "client.delete", func(ctx context.Context) error {
		client, err := s.clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		used, err := s.clients.HasContracts(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return domain.Invalid("id_client", "client still holds contracts")
		}
		if err := s.clients.Delete(ctx, client); err != nil {
			return err
		}
		return s.audit.Deleted(ctx, client, "")
	})
}

// Get gets a client by ID
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// List lists clients matching q
func (s *ClientService) List(ctx context.Context, q string, page pagination.Page) ([]*models.Client, int64, error) {
	return s.clients.Search(ctx, strings.TrimSpace(q), page)
}

func (s *ClientService) checkUnique(ctx context.Context, client *models.Client) error {
	exists, err := s.clients.ExistsOther(ctx, "email", client.Email, client.ID)
	if err := ensureUnique(exists, err, domain.EntityClient, "email", client.Email); err != nil {
		return err
	}
	exists, err = s.clients.ExistsOther(ctx, "carte_identite", client.NationalID, client.ID)
	return ensureUnique(exists, err, domain.EntityClient, "carte_identite", client.NationalID)
}

func validateClient(c *models.Client) error {
	if err := required("nom", c.LastName); err != nil {
		return err
	}
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	return required("carte_identite", c.NationalID)
}
