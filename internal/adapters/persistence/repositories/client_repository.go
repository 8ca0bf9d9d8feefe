package repositories

import (
	"context"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ClientRepository handles client data access
type ClientRepository struct {
	Repository[models.Client]
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{newRepository[models.Client](db, domain.EntityClient, "id_client")}
}

// Search lists clients whose name, email or id card matches q
func (r *ClientRepository) Search(ctx context.Context, q string, page pagination.Page) ([]*models.Client, int64, error) {
	scopes := []Scope{OrderBy("nom ASC, prenom ASC")}
	if q != "" {
		like := "%" + q + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("nom LIKE ? OR prenom LIKE ? OR email LIKE ? OR carte_identite LIKE ?", like, like, like, like)
		})
	}
	return r.List(ctx, page, scopes...)
}

// HasContracts reports whether any contract references the client
func (r *ClientRepository) HasContracts(ctx context.Context, clientID any) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Contract{}).Where("id_client = ?", clientID).Count(&count).Error
	return count > 0, err
}
