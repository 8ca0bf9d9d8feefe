package repositories

import (
	"context"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/pagination"

	"gorm.io/gorm"
)

// VehicleRepository handles vehicle data access
type VehicleRepository struct {
	Repository[models.Vehicle]
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{newRepository[models.Vehicle](db, domain.EntityVehicle, "immatriculation")}
}

// Search lists vehicles, optionally covered by one contract
func (r *VehicleRepository) Search(ctx context.Context, contractID string, page pagination.Page) ([]*models.Vehicle, int64, error) {
	scopes := []Scope{OrderBy("immatriculation ASC")}
	if contractID != "" {
		scopes = append(scopes, Where("id_police", contractID))
	}
	return r.List(ctx, page, scopes...)
}

// DocumentRepository handles document metadata access
type DocumentRepository struct {
	Repository[models.Document]
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{newRepository[models.Document](db, domain.EntityDocument, "id_document")}
}

// ListByOwner returns the documents attached to one entity
func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerType string, ownerID any) ([]*models.Document, error) {
	return r.Find(ctx, Where("type_entite", ownerType), Where("id_entite", ownerID), OrderBy("created_at DESC"))
}
