package repositories

import (
	"context"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ClaimFilter narrows claim listings
type ClaimFilter struct {
	Status     string
	ContractID string
	FolderID   string
	AssigneeID string
}

// ClaimRepository handles claim data access
type ClaimRepository struct {
	Repository[models.Claim]
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *gorm.DB) *ClaimRepository {
	return &ClaimRepository{newRepository[models.Claim](db, domain.EntityClaim, "id_sinistre")}
}

// Search lists claims with filters
func (r *ClaimRepository) Search(ctx context.Context, f ClaimFilter, page pagination.Page) ([]*models.Claim, int64, error) {
	scopes := []Scope{OrderBy("date_declaration DESC, created_at DESC")}
	if f.Status != "" {
		scopes = append(scopes, Where("statut", f.Status))
	}
	if f.ContractID != "" {
		scopes = append(scopes, Where("id_police", f.ContractID))
	}
	if f.FolderID != "" {
		scopes = append(scopes, Where("id_dossier", f.FolderID))
	}
	if f.AssigneeID != "" {
		scopes = append(scopes, Where("id_utilisateur", f.AssigneeID))
	}
	return r.List(ctx, page, scopes...)
}

// ListByFolder returns every claim filed under a folder
func (r *ClaimRepository) ListByFolder(ctx context.Context, folderID any) ([]*models.Claim, error) {
	return r.Find(ctx, Where("id_dossier", folderID), OrderBy("created_at ASC"))
}

// IndemnificationRepository handles indemnification data access
type IndemnificationRepository struct {
	Repository[models.Indemnification]
}

// NewIndemnificationRepository creates a new indemnification repository
func NewIndemnificationRepository(db *gorm.DB) *IndemnificationRepository {
	return &IndemnificationRepository{newRepository[models.Indemnification](db, domain.EntityIndemnification, "id_indemnisation")}
}

// ExistsForClaim reports whether the claim already has an indemnification in one of statuses
func (r *IndemnificationRepository) ExistsForClaim(ctx context.Context, claimID any, statuses ...domain.IndemnificationStatus) (bool, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return r.Exists(ctx, "id_sinistre", claimID, func(db *gorm.DB) *gorm.DB {
		return db.Where("statut IN ?", values)
	})
}

// ListByClaim returns the indemnifications of a claim
func (r *IndemnificationRepository) ListByClaim(ctx context.Context, claimID any) ([]*models.Indemnification, error) {
	return r.Find(ctx, Where("id_sinistre", claimID), OrderBy("created_at ASC"))
}

// Search lists indemnifications, optionally by status
func (r *IndemnificationRepository) Search(ctx context.Context, status string, page pagination.Page) ([]*models.Indemnification, int64, error) {
	scopes := []Scope{OrderBy("created_at DESC")}
	if status != "" {
		scopes = append(scopes, Where("statut", status))
	}
	return r.List(ctx, page, scopes...)
}
