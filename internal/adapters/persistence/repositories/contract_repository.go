package repositories

import (
	"context"
	"errors"
	"time"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ContractFilter narrows contract listings
type ContractFilter struct {
	Status   string
	ClientID string
	Number   string
}

// ContractRepository handles contract data access
type ContractRepository struct {
	Repository[models.Contract]
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{newRepository[models.Contract](db, domain.EntityContract, "id_police")}
}

// GetWithRelations loads a contract with client, type and company
func (r *ContractRepository) GetWithRelations(ctx context.Context, id any) (*models.Contract, error) {
	return r.GetByID(ctx, id, "Client", "InsuranceType", "Company")
}

// Search lists contracts with filters
func (r *ContractRepository) Search(ctx context.Context, f ContractFilter, page pagination.Page) ([]*models.Contract, int64, error) {
	scopes := []Scope{OrderBy("created_at DESC")}
	if f.Status != "" {
		scopes = append(scopes, Where("statut", f.Status))
	}
	if f.ClientID != "" {
		scopes = append(scopes, Where("id_client", f.ClientID))
	}
	if f.Number != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("numero_contrat LIKE ?", "%"+f.Number+"%")
		})
	}
	return r.List(ctx, page, scopes...)
}

// FindLapsed returns contracts still in force whose end date is before day
func (r *ContractRepository) FindLapsed(ctx context.Context, day time.Time) ([]*models.Contract, error) {
	return r.Find(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("statut IN ? AND date_fin < ?", []string{
			string(domain.ContractPending),
			string(domain.ContractActive),
			string(domain.ContractRenewed),
		}, models.NewDate(day))
	}, OrderBy("date_fin ASC"))
}

// CountDependents counts rows that reference the contract
func (r *ContractRepository) CountDependents(ctx context.Context, contractID any) (int64, error) {
	var total int64
	for _, model := range []any{&models.Folder{}, &models.Claim{}, &models.Premium{}} {
		var count int64
		if err := r.DB(ctx).Model(model).Where("id_police = ?", contractID).Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

// FolderRepository handles folder data access
type FolderRepository struct {
	Repository[models.Folder]
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{newRepository[models.Folder](db, domain.EntityFolder, "id_dossier")}
}

// Search lists folders, optionally by state
func (r *FolderRepository) Search(ctx context.Context, stateID string, page pagination.Page) ([]*models.Folder, int64, error) {
	scopes := []Scope{OrderBy("date_creation DESC, created_at DESC")}
	if stateID != "" {
		scopes = append(scopes, Where("id_etat_dossier", stateID))
	}
	return r.List(ctx, page, scopes...)
}

// ArchiveRepository handles archive data access. Archives are insert-only.
type ArchiveRepository struct {
	db *gorm.DB
}

// NewArchiveRepository creates a new archive repository
func NewArchiveRepository(db *gorm.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Create inserts an archive
func (r *ArchiveRepository) Create(ctx context.Context, archive *models.Archive) error {
	return translateError(conn(ctx, r.db).Create(archive).Error, domain.EntityArchive)
}

// GetByID gets an archive by ID
func (r *ArchiveRepository) GetByID(ctx context.Context, id any) (*models.Archive, error) {
	var archive models.Archive
	err := conn(ctx, r.db).Where("id_archive = ?", id).First(&archive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound(domain.EntityArchive, id)
		}
		return nil, err
	}
	return &archive, nil
}

// List lists archives newest first
func (r *ArchiveRepository) List(ctx context.Context, page pagination.Page) ([]*models.Archive, int64, error) {
	var archives []*models.Archive
	var total int64

	db := conn(ctx, r.db)
	if err := db.Model(&models.Archive{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("date_archivage DESC").Scopes(page.Scope).Find(&archives).Error
	return archives, total, err
}
