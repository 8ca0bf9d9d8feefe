package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/logger"
	"assurgest/internal/pkg/metrics"

	"github.com/google/uuid"
)

// BlobStore holds document bytes outside the database
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
}

// DocumentService attaches files to folders, contracts and claims
type DocumentService struct {
	workflow
	documents *repositories.DocumentRepository
	folders   *repositories.FolderRepository
	contracts *repositories.ContractRepository
	claims    *repositories.ClaimRepository
	store     BlobStore
}

// NewDocumentService creates a new document service. A nil store disables
// upload and download.
func NewDocumentService(repos *repositories.Set, audit *AuditService, m *metrics.Metrics, store BlobStore) *DocumentService {
	return &DocumentService{
		workflow:  newWorkflow(repos, audit, m),
		documents: repos.Documents,
		folders:   repos.Folders,
		contracts: repos.Contracts,
		claims:    repos.Claims,
		store:     store,
	}
}

// UploadInput describes an uploaded file
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	OwnerType   string
	OwnerID     uuid.UUID
}

// Upload stores the bytes then records the document. The object is removed
// again when the row cannot be written.
func (s *DocumentService) Upload(ctx context.Context, in UploadInput) (*models.Document, error) {
	if s.store == nil {
		return nil, domain.ErrStorageDisabled
	}
	name := filepath.Base(strings.TrimSpace(in.FileName))
	if name == "." || name == string(filepath.Separator) {
		return nil, domain.Invalid("nom_fichier", "is required")
	}
	if in.Size <= 0 {
		return nil, domain.Invalid("taille", "file is empty")
	}
	if err := s.checkOwner(ctx, in.OwnerType, in.OwnerID); err != nil {
		return nil, err
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	id := uuid.New()
	key := "documents/" + id.String() + strings.ToLower(filepath.Ext(name))

	if err := s.store.Put(ctx, key, in.Body, in.Size, contentType); err != nil {
		return nil, err
	}

	doc := &models.Document{
		ID:         id,
		FileName:   name,
		Path:       key,
		MimeType:   contentType,
		Size:       in.Size,
		OwnerType:  in.OwnerType,
		OwnerID:    in.OwnerID,
		UploadedBy: actor.ID(ctx),
	}
	err := s.run(ctx, "document.upload", func(ctx context.Context) error {
		if err := s.documents.Create(ctx, doc); err != nil {
			return err
		}
		return s.audit.Created(ctx, doc, "")
	})
	if err != nil {
		if rmErr := s.store.Remove(ctx, key); rmErr != nil {
			logger.Warn(ctx, "orphan document object", "key", key, "error", rmErr)
		}
		return nil, err
	}
	return doc, nil
}

// ListByOwner lists the documents of one entity
func (s *DocumentService) ListByOwner(ctx context.Context, ownerType string, ownerID uuid.UUID) ([]*models.Document, error) {
	if err := s.checkOwner(ctx, ownerType, ownerID); err != nil {
		return nil, err
	}
	return s.documents.ListByOwner(ctx, ownerType, ownerID)
}

// Get gets a document
func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return s.documents.GetByID(ctx, id)
}

// DownloadURL returns a presigned link to the document bytes
func (s *DocumentService) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	if s.store == nil {
		return "", domain.ErrStorageDisabled
	}
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignedURL(ctx, doc.Path)
}

// Delete removes the row, then the object
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	var doc *models.Document
	err := s.run(ctx, "document.delete", func(ctx context.Context) error {
		var err error
		if doc, err = s.documents.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.documents.Delete(ctx, doc); err != nil {
			return err
		}
		return s.audit.Deleted(ctx, doc, "")
	})
	if err != nil {
		return err
	}
	if s.store != nil {
		if err := s.store.Remove(ctx, doc.Path); err != nil {
			logger.Warn(ctx, "orphan document object", "key", doc.Path, "error", err)
		}
	}
	return nil
}

func (s *DocumentService) checkOwner(ctx context.Context, ownerType string, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return domain.Invalid("id_entite", "is required")
	}
	var err error
	switch ownerType {
	case domain.OwnerFolder:
		_, err = s.folders.GetByID(ctx, ownerID)
	case domain.OwnerContract:
		_, err = s.contracts.GetByID(ctx, ownerID)
	case domain.OwnerClaim:
		_, err = s.claims.GetByID(ctx, ownerID)
	default:
		return domain.Invalid("type_entite", "must be one of %s, %s, %s", domain.OwnerFolder, domain.OwnerContract, domain.OwnerClaim)
	}
	return err
}
