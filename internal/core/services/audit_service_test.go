package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	before := map[string]any{"statut": "Actif", "prime": "250", "id_dossier": "d-1"}
	after := map[string]any{"statut": "Renouvelé", "prime": "250", "id_dossier": nil, "date_fin": "2026-01-01"}

	changedBefore, changedAfter, fields := Diff(before, after)

	assert.Equal(t, []string{"date_fin", "id_dossier", "statut"}, fields)
	assert.Equal(t, map[string]any{"statut": "Actif", "id_dossier": "d-1", "date_fin": nil}, changedBefore)
	assert.Equal(t, map[string]any{"statut": "Renouvelé", "id_dossier": nil, "date_fin": "2026-01-01"}, changedAfter)
}

func TestDiffNoChange(t *testing.T) {
	snap := map[string]any{"statut": "Actif"}
	changedBefore, changedAfter, fields := Diff(snap, map[string]any{"statut": "Actif"})
	assert.Empty(t, fields)
	assert.Empty(t, changedBefore)
	assert.Empty(t, changedAfter)
}

func TestStampIsStrictlyIncreasing(t *testing.T) {
	audit := NewAuditService(nil, nil)
	prev := audit.stamp()
	for i := 0; i < 1000; i++ {
		next := audit.stamp()
		assert.True(t, next.After(prev))
		prev = next
	}
}
