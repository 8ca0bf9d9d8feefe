package services

import (
	"context"
	"errors"
	"strings"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/metrics"
	"assurgest/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FolderService handles administrative folders and their archiving
type FolderService struct {
	workflow
	folders   *repositories.FolderRepository
	archives  *repositories.ArchiveRepository
	contracts *repositories.ContractRepository
	claims    *repositories.ClaimRepository
	states    *repositories.FolderStateRepository
}

// NewFolderService creates a new folder service
func NewFolderService(repos *repositories.Set, audit *AuditService, m *metrics.Metrics) *FolderService {
	return &FolderService{
		workflow:  newWorkflow(repos, audit, m),
		folders:   repos.Folders,
		archives:  repos.Archives,
		contracts: repos.Contracts,
		claims:    repos.Claims,
		states:    repos.FolderStates,
	}
}

// CreateFolderInput represents folder create input
type CreateFolderInput struct {
	Number      string     `json:"numero_dossier"`
	Title       string     `json:"titre"`
	Description string     `json:"description"`
	CreatedOn   string     `json:"date_creation"`
	ContractID  uuid.UUID  `json:"id_police"`
	StateID     *uuid.UUID `json:"id_etat_dossier"`
}

// UpdateFolderInput represents folder partial update input
type UpdateFolderInput struct {
	Number      *string    `json:"numero_dossier"`
	Title       *string    `json:"titre"`
	Description *string    `json:"description"`
	StateID     *uuid.UUID `json:"id_etat_dossier"`
}

// ArchiveFolderInput represents archive input
type ArchiveFolderInput struct {
	Reason string `json:"raison_archivage"`
}

// Create opens the folder of a contract. A contract has at most one folder.
func (s *FolderService) Create(ctx context.Context, in CreateFolderInput) (*models.Folder, error) {
	number := strings.TrimSpace(in.Number)
	if err := required("numero_dossier", number); err != nil {
		return nil, err
	}
	if err := required("titre", in.Title); err != nil {
		return nil, err
	}
	if in.ContractID == uuid.Nil {
		return nil, domain.Invalid("id_police", "is required")
	}
	createdOn := models.NewDate(actor.Today(ctx))
	if strings.TrimSpace(in.CreatedOn) != "" {
		d, err := parseDate("date_creation", in.CreatedOn)
		if err != nil {
			return nil, err
		}
		createdOn = d
	}

	folder := &models.Folder{
		ID:          uuid.New(),
		Number:      number,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CreatedOn:   createdOn,
		ContractID:  in.ContractID,
		StateID:     in.StateID,
	}

	err := s.run(ctx, "folder.create", func(ctx context.Context) error {
		exists, err := s.folders.Exists(ctx, "numero_dossier", number)
		if err := ensureUnique(exists, err, domain.EntityFolder, "numero_dossier", number); err != nil {
			return err
		}
		if _, err := s.contracts.GetByID(ctx, folder.ContractID); err != nil {
			return err
		}
		exists, err = s.folders.Exists(ctx, "id_police", folder.ContractID)
		if err := ensureUnique(exists, err, domain.EntityFolder, "id_police", folder.ContractID.String()); err != nil {
			return err
		}
		if err := s.resolveState(ctx, folder); err != nil {
			return err
		}
		if err := s.folders.Create(ctx, folder); err != nil {
			return duplicateAs(err, domain.EntityFolder, "numero_dossier", number)
		}
		return s.audit.Created(ctx, folder, "")
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "folder created", "id_dossier", folder.ID, "numero_dossier", folder.Number)
	return folder, nil
}

// Update applies a partial update
func (s *FolderService) Update(ctx context.Context, id uuid.UUID, in UpdateFolderInput) (*models.Folder, error) {
	var folder *models.Folder
	err := s.run(ctx, "folder.update", func(ctx context.Context) error {
		var err error
		folder, err = s.folders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		before := folder.Snapshot()

		if in.Number != nil {
			number := strings.TrimSpace(*in.Number)
			if err := required("numero_dossier", number); err != nil {
				return err
			}
			if number != folder.Number {
				exists, err := s.folders.ExistsOther(ctx, "numero_dossier", number, folder.ID)
				if err := ensureUnique(exists, err, domain.EntityFolder, "numero_dossier", number); err != nil {
					return err
				}
				folder.Number = number
			}
		}
		if in.Title != nil {
			if err := required("titre", *in.Title); err != nil {
				return err
			}
			folder.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			folder.Description = strings.TrimSpace(*in.Description)
		}
		if in.StateID != nil {
			if _, err := s.states.GetByID(ctx, *in.StateID); err != nil {
				return err
			}
			folder.StateID = in.StateID
		}

		if _, _, changed := Diff(before, folder.Snapshot()); len(changed) == 0 {
			return nil
		}
		if err := s.folders.Save(ctx, folder); err != nil {
			return duplicateAs(err, domain.EntityFolder, "numero_dossier", folder.Number)
		}
		_, err = s.audit.Updated(ctx, before, folder, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// Archive snapshots the folder into an archive row and removes the folder.
// Claims filed under the folder are detached first and stay on their contract.
// Everything happens in one transaction.
func (s *FolderService) Archive(ctx context.Context, id uuid.UUID, in ArchiveFolderInput) (*models.Archive, error) {
	var archive *models.Archive
	err := s.run(ctx, "folder.archive", func(ctx context.Context) error {
		folder, err := s.folders.GetByID(ctx, id)
		if err != nil {
			return err
		}

		claims, err := s.claims.ListByFolder(ctx, folder.ID)
		if err != nil {
			return err
		}
		claimNumbers := make([]any, 0, len(claims))
		for _, claim := range claims {
			claimNumbers = append(claimNumbers, claim.Number)
			before := claim.Snapshot()
			claim.FolderID = nil
			if err := s.claims.Save(ctx, claim); err != nil {
				return err
			}
			if _, err := s.audit.Updated(ctx, before, claim, ""); err != nil {
				return err
			}
		}

		content := folder.Snapshot()
		content["sinistres"] = claimNumbers
		archive = &models.Archive{
			ID:           uuid.New(),
			FolderID:     folder.ID,
			FolderNumber: folder.Number,
			ArchivedAt:   actor.Now(ctx),
			Reason:       strings.TrimSpace(in.Reason),
			Content:      datatypes.JSONMap(content),
			ArchivedBy:   actor.ID(ctx),
		}
		if err := s.archives.Create(ctx, archive); err != nil {
			return err
		}

		if err := s.folders.Delete(ctx, folder); err != nil {
			return err
		}
		folder.ArchiveID = &archive.ID
		return s.audit.Deleted(ctx, folder, domain.EventFolderArchived)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "folder archived", "id_dossier", id, "id_archive", archive.ID)
	return archive, nil
}

// Get gets a folder with its contract and state
func (s *FolderService) Get(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	return s.folders.GetByID(ctx, id, "Contract", "State")
}

// List lists folders
func (s *FolderService) List(ctx context.Context, stateID string, page pagination.Page) ([]*models.Folder, int64, error) {
	return s.folders.Search(ctx, stateID, page)
}

// GetArchive gets an archive
func (s *FolderService) GetArchive(ctx context.Context, id uuid.UUID) (*models.Archive, error) {
	return s.archives.GetByID(ctx, id)
}

// ListArchives lists archives
func (s *FolderService) ListArchives(ctx context.Context, page pagination.Page) ([]*models.Archive, int64, error) {
	return s.archives.List(ctx, page)
}

// resolveState checks the requested state or falls back to the open state when seeded
func (s *FolderService) resolveState(ctx context.Context, folder *models.Folder) error {
	if folder.StateID != nil {
		_, err := s.states.GetByID(ctx, *folder.StateID)
		return err
	}
	state, err := s.states.GetByName(ctx, domain.FolderStateOpen)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	folder.StateID = &state.ID
	return nil
}
