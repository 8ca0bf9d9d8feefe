package services

import (
	"context"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/pkg/pagination"
)

// HistoryService reads the audit trail. The trail is written only by AuditService.
type HistoryService struct {
	history *repositories.HistoryRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(history *repositories.HistoryRepository) *HistoryService {
	return &HistoryService{history: history}
}

// List lists events newest first
func (s *HistoryService) List(ctx context.Context, f repositories.HistoryFilter, page pagination.Page) ([]*models.HistoryEvent, int64, error) {
	return s.history.Search(ctx, f, page)
}

// Timeline returns the events of one entity oldest first
func (s *HistoryService) Timeline(ctx context.Context, entity, entityID string) ([]*models.HistoryEvent, error) {
	return s.history.Timeline(ctx, entity, entityID)
}
