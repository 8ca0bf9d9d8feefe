package services

import (
	"context"
	"strings"
	"time"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/metrics"
	"assurgest/internal/pkg/pagination"

	"github.com/google/uuid"
)

// VehicleService handles insured vehicles
type VehicleService struct {
	workflow
	vehicles  *repositories.VehicleRepository
	contracts *repositories.ContractRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(repos *repositories.Set, audit *AuditService, m *metrics.Metrics) *VehicleService {
	return &VehicleService{
		workflow:  newWorkflow(repos, audit, m),
		vehicles:  repos.Vehicles,
		contracts: repos.Contracts,
	}
}

// VehicleInput represents vehicle create input
type VehicleInput struct {
	Plate      string     `json:"immatriculation"`
	Brand      string     `json:"marque"`
	Model      string     `json:"modele"`
	Year       int        `json:"annee"`
	ContractID *uuid.UUID `json:"id_police"`
}

// UpdateVehicleInput represents vehicle partial update input. The plate is the key and cannot change.
type UpdateVehicleInput struct {
	Brand      *string    `json:"marque"`
	Model      *string    `json:"modele"`
	Year       *int       `json:"annee"`
	ContractID *uuid.UUID `json:"id_police"`
}

// Create registers a vehicle
func (s *VehicleService) Create(ctx context.Context, in VehicleInput) (*models.Vehicle, error) {
	plate := normalizePlate(in.Plate)
	if err := required("immatriculation", plate); err != nil {
		return nil, err
	}
	vehicle := &models.Vehicle{
		Plate:      plate,
		Brand:      strings.TrimSpace(in.Brand),
		Model:      strings.TrimSpace(in.Model),
		Year:       in.Year,
		ContractID: in.ContractID,
	}
	if err := validateVehicle(vehicle); err != nil {
		return nil, err
	}

	err := s.run(ctx, "vehicle.create", func(ctx context.Context) error {
		exists, err := s.vehicles.Exists(ctx, "immatriculation", plate)
		if err := ensureUnique(exists, err, domain.EntityVehicle, "immatriculation", plate); err != nil {
			return err
		}
		if err := s.checkContract(ctx, vehicle); err != nil {
			return err
		}
		if err := s.vehicles.Create(ctx, vehicle); err != nil {
			return duplicateAs(err, domain.EntityVehicle, "immatriculation", plate)
		}
		return s.audit.Created(ctx, vehicle, "")
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Update applies a partial update
func (s *VehicleService) Update(ctx context.Context, plate string, in UpdateVehicleInput) (*models.Vehicle, error) {
	var vehicle *models.Vehicle
	err := s.run(ctx, "vehicle.update", func(ctx context.Context) error {
		var err error
		vehicle, err = s.vehicles.GetByID(ctx, normalizePlate(plate))
		if err != nil {
			return err
		}
		before := vehicle.Snapshot()

		if in.Brand != nil {
			vehicle.Brand = strings.TrimSpace(*in.Brand)
		}
		if in.Model != nil {
			vehicle.Model = strings.TrimSpace(*in.Model)
		}
		if in.Year != nil {
			vehicle.Year = *in.Year
		}
		if in.ContractID != nil {
			vehicle.ContractID = in.ContractID
		}
		if err := validateVehicle(vehicle); err != nil {
			return err
		}
		if err := s.checkContract(ctx, vehicle); err != nil {
			return err
		}

		if _, _, changed := Diff(before, vehicle.Snapshot()); len(changed) == 0 {
			return nil
		}
		if err := s.vehicles.Save(ctx, vehicle); err != nil {
			return err
		}
		_, err = s.audit.Updated(ctx, before, vehicle, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Delete deletes a vehicle
func (s *VehicleService) Delete(ctx context.Context, plate string) error {
	return s.run(ctx, "vehicle.delete", func(ctx context.Context) error {
		vehicle, err := s.vehicles.GetByID(ctx, normalizePlate(plate))
		if err != nil {
			return err
		}
		if err := s.vehicles.Delete(ctx, vehicle); err != nil {
			return err
		}
		return s.audit.Deleted(ctx, vehicle, "")
	})
}

// Get gets a vehicle by plate
func (s *VehicleService) Get(ctx context.Context, plate string) (*models.Vehicle, error) {
	return s.vehicles.GetByID(ctx, normalizePlate(plate))
}

// List lists vehicles
func (s *VehicleService) List(ctx context.Context, contractID string, page pagination.Page) ([]*models.Vehicle, int64, error) {
	return s.vehicles.Search(ctx, contractID, page)
}

func (s *VehicleService) checkContract(ctx context.Context, v *models.Vehicle) error {
	if v.ContractID == nil {
		return nil
	}
	_, err := s.contracts.GetByID(ctx, *v.ContractID)
	return err
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func validateVehicle(v *models.Vehicle) error {
	if v.Year == 0 {
		return nil
	}
	if v.Year < 1900 || v.Year > time.Now().Year()+1 {
		return domain.Invalid("annee", "must be between 1900 and %d", time.Now().Year()+1)
	}
	return nil
}
