package repositories

import (
	"context"
	"time"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/pkg/pagination"

	"gorm.io/gorm"
)

// HistoryFilter narrows history listings
type HistoryFilter struct {
	Entity    string
	EntityID  string
	UserID    string
	EventType string
	From      *time.Time
	To        *time.Time // exclusive
}

// HistoryRepository appends and reads history events. It has no update or
// delete path.
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create appends an event, joining the caller's transaction
func (r *HistoryRepository) Create(ctx context.Context, event *models.HistoryEvent) error {
	return conn(ctx, r.db).Create(event).Error
}

// Search lists events newest first
func (r *HistoryRepository) Search(ctx context.Context, f HistoryFilter, page pagination.Page) ([]*models.HistoryEvent, int64, error) {
	var events []*models.HistoryEvent
	var total int64

	q := conn(ctx, r.db).Model(&models.HistoryEvent{})
	if f.Entity != "" {
		q = q.Where("entite_affectee = ?", f.Entity)
	}
	if f.EntityID != "" {
		q = q.Where("id_entite_affectee = ?", f.EntityID)
	}
	if f.UserID != "" {
		q = q.Where("utilisateur_id = ?", f.UserID)
	}
	if f.EventType != "" {
		q = q.Where("type_evenement = ?", f.EventType)
	}
	if f.From != nil {
		q = q.Where("date_evenement >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date_evenement < ?", *f.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("date_evenement DESC").Scopes(page.Scope).Find(&events).Error
	return events, total, err
}

// Timeline returns every event of one entity oldest first
func (r *HistoryRepository) Timeline(ctx context.Context, entity, entityID string) ([]*models.HistoryEvent, error) {
	var events []*models.HistoryEvent
	err := conn(ctx, r.db).
		Where("entite_affectee = ? AND id_entite_affectee = ?", entity, entityID).
		Order("date_evenement ASC").
		Find(&events).Error
	return events, err
}
