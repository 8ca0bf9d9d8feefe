package services

import (
	"testing"

	"assurgest/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestAmountRules(t *testing.T) {
	tests := []struct {
		amount      string
		positiveErr bool
		nonNegErr   bool
	}{
		{"0", true, false},
		{"12.5", false, false},
		{"1000.56", false, false},
		{"1000.550", false, false},
		{"1000.555", true, true},
		{"0.001", true, true},
		{"-3", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := positive("montant", dec(tt.amount))
			assert.Equal(t, tt.positiveErr, err != nil)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrValidation)
			}
			assert.Equal(t, tt.nonNegErr, nonNegative("montant", dec(tt.amount)) != nil)
		})
	}
}
