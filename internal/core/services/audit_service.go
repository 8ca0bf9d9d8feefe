package services

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"assurgest/internal/adapters/persistence/models"
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/domain"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditService records entity mutations as history events. Every call writes
// through the transaction carried by ctx, so a failed write rolls back the
// mutation it describes.
type AuditService struct {
	history *repositories.HistoryRepository
	metrics *metrics.Metrics

	mu   sync.Mutex
	last time.Time
}

// NewAuditService creates a new audit service
func NewAuditService(history *repositories.HistoryRepository, m *metrics.Metrics) *AuditService {
	return &AuditService{history: history, metrics: m}
}

// Created records the full snapshot of a new entity
func (s *AuditService) Created(ctx context.Context, e models.Auditable, eventType string) error {
	if eventType == "" {
		eventType = domain.EventCreated
	}
	return s.write(ctx, &models.HistoryEvent{
		EventType:   eventType,
		Description: fmt.Sprintf("%s %s créé", e.AuditEntity(), e.AuditKey()),
		Entity:      e.AuditEntity(),
		EntityID:    e.AuditKey(),
		After:       datatypes.JSONMap(e.Snapshot()),
	})
}

// Updated records the fields that differ between before and the current
// state of e. It writes nothing and returns false when no field changed.
func (s *AuditService) Updated(ctx context.Context, before map[string]any, e models.Auditable, eventType string) (bool, error) {
	changedBefore, changedAfter, fields := Diff(before, e.Snapshot())
	if len(fields) == 0 {
		return false, nil
	}
	if eventType == "" {
		eventType = domain.EventUpdated
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s → %s", f, display(changedBefore[f]), display(changedAfter[f]))
	}

	err := s.write(ctx, &models.HistoryEvent{
		EventType:   eventType,
		Description: strings.Join(parts, ", "),
		Entity:      e.AuditEntity(),
		EntityID:    e.AuditKey(),
		Before:      datatypes.JSONMap(changedBefore),
		After:       datatypes.JSONMap(changedAfter),
	})
	return err == nil, err
}

// Deleted records the full snapshot of a removed entity
func (s *AuditService) Deleted(ctx context.Context, e models.Auditable, eventType string) error {
	if eventType == "" {
		eventType = domain.EventDeleted
	}
	return s.write(ctx, &models.HistoryEvent{
		EventType:   eventType,
		Description: fmt.Sprintf("%s %s supprimé", e.AuditEntity(), e.AuditKey()),
		Entity:      e.AuditEntity(),
		EntityID:    e.AuditKey(),
		Before:      datatypes.JSONMap(e.Snapshot()),
	})
}

func (s *AuditService) write(ctx context.Context, event *models.HistoryEvent) error {
	event.ID = uuid.New()
	event.UserID = actor.ID(ctx)
	event.OccurredAt = s.stamp()

	if err := s.history.Create(ctx, event); err != nil {
		return fmt.Errorf("record %s event for %s %s: %w", event.EventType, event.Entity, event.EntityID, err)
	}
	s.metrics.ObserveHistoryEvent(event.Entity, event.EventType)
	return nil
}

// stamp returns a strictly increasing microsecond timestamp so events of one
// entity keep their order even on coarse clocks.
func (s *AuditService) stamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

// Diff returns the before and after values of every key whose value changed,
// plus the sorted list of those keys.
func Diff(before, after map[string]any) (map[string]any, map[string]any, []string) {
	changedBefore := map[string]any{}
	changedAfter := map[string]any{}
	var fields []string

	keys := make(map[string]struct{}, len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}

	for k := range keys {
		if reflect.DeepEqual(before[k], after[k]) {
			continue
		}
		changedBefore[k] = before[k]
		changedAfter[k] = after[k]
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return changedBefore, changedAfter, fields
}

func display(v any) string {
	if v == nil {
		return "∅"
	}
	return fmt.Sprint(v)
}
