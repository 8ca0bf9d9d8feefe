package repositories

import (
	"context"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"

	"gorm.io/gorm"
)

// CompanyRepository handles company data access
type CompanyRepository struct {
	Repository[models.Company]
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{newRepository[models.Company](db, domain.EntityCompany, "id_compagnie")}
}

// ListAll lists every company by name
func (r *CompanyRepository) ListAll(ctx context.Context) ([]*models.Company, error) {
	return r.Find(ctx, OrderBy("nom_compagnie ASC"))
}

// InsuranceTypeRepository handles insurance type data access
type InsuranceTypeRepository struct {
	Repository[models.InsuranceType]
}

// NewInsuranceTypeRepository creates a new insurance type repository
func NewInsuranceTypeRepository(db *gorm.DB) *InsuranceTypeRepository {
	return &InsuranceTypeRepository{newRepository[models.InsuranceType](db, domain.EntityInsuranceType, "id_type_assurance")}
}

// ListAll lists every insurance type by name
func (r *InsuranceTypeRepository) ListAll(ctx context.Context) ([]*models.InsuranceType, error) {
	return r.Find(ctx, OrderBy("nom ASC"))
}

// FolderStateRepository handles folder state data access
type FolderStateRepository struct {
	Repository[models.FolderState]
}

// NewFolderStateRepository creates a new folder state repository
func NewFolderStateRepository(db *gorm.DB) *FolderStateRepository {
	return &FolderStateRepository{newRepository[models.FolderState](db, domain.EntityFolderState, "id_etat_dossier")}
}

// ListAll lists every folder state by name
func (r *FolderStateRepository) ListAll(ctx context.Context) ([]*models.FolderState, error) {
	return r.Find(ctx, OrderBy("nom_etat ASC"))
}

// GetByName gets a folder state by name
func (r *FolderStateRepository) GetByName(ctx context.Context, name string) (*models.FolderState, error) {
	items, err := r.Find(ctx, Where("nom_etat", name))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.NotFound(domain.EntityFolderState, name)
	}
	return items[0], nil
}

// RoleRepository handles role data access
type RoleRepository struct {
	Repository[models.Role]
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{newRepository[models.Role](db, domain.EntityRole, "id_role")}
}

// ListAll lists every role by name
func (r *RoleRepository) ListAll(ctx context.Context) ([]*models.Role, error) {
	return r.Find(ctx, OrderBy("nom_role ASC"))
}

// GetByName gets a role by name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	items, err := r.Find(ctx, Where("nom_role", name))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.NotFound(domain.EntityRole, name)
	}
	return items[0], nil
}

// InUse reports whether any user holds the role
func (r *RoleRepository) InUse(ctx context.Context, roleID any) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.User{}).Where("id_role = ?", roleID).Count(&count).Error
	return count > 0, err
}
