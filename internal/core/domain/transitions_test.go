package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ContractStatus
		to      ContractStatus
		wantErr error
	}{
		{"pending to active", ContractPending, ContractActive, nil},
		{"active to renewed", ContractActive, ContractRenewed, nil},
		{"renewed renewed again", ContractRenewed, ContractRenewed, nil},
		{"active to expired", ContractActive, ContractExpired, nil},
		{"expired to renewed", ContractExpired, ContractRenewed, nil},
		{"cancelled is terminal", ContractCancelled, ContractActive, ErrInvalidState},
		{"active back to pending", ContractActive, ContractPending, ErrInvalidState},
		{"unknown status", ContractActive, "Suspendu", ErrValidation},
		{"same status", ContractActive, ContractActive, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ContractTransitions.Check(EntityContract, tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClaimTransitionsHaveNoExitFromClosed(t *testing.T) {
	for status := range ClaimTransitions {
		if status == ClaimClosed {
			continue
		}
		assert.Error(t, ClaimTransitions.Check(EntityClaim, ClaimClosed, status), "Clos -> %s", status)
	}
	assert.NoError(t, ClaimTransitions.Check(EntityClaim, ClaimApproved, ClaimClosed))
	assert.NoError(t, ClaimTransitions.Check(EntityClaim, ClaimRejected, ClaimClosed))
	assert.Error(t, ClaimTransitions.Check(EntityClaim, ClaimDeclared, ClaimClosed))
}

func TestIndemnificationTransitionsAreForwardOnly(t *testing.T) {
	assert.True(t, IndemnificationTransitions.Allows(IndemnificationPending, IndemnificationValidated))
	assert.True(t, IndemnificationTransitions.Allows(IndemnificationValidated, IndemnificationPaid))
	assert.False(t, IndemnificationTransitions.Allows(IndemnificationPending, IndemnificationPaid))
	assert.False(t, IndemnificationTransitions.Allows(IndemnificationPaid, IndemnificationValidated))
	assert.False(t, IndemnificationTransitions.Allows(IndemnificationValidated, IndemnificationPending))
}

func TestInvalidStateErrorMessage(t *testing.T) {
	err := ContractTransitions.Check(EntityContract, ContractActive, ContractPending)

	var stateErr *InvalidStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, string(ContractActive), stateErr.Current)
	assert.Contains(t, err.Error(), string(ContractRenewed))
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	assert.ErrorIs(t, NotFound(EntityClaim, "x"), ErrNotFound)
	assert.ErrorIs(t, Duplicate(EntityContract, "numero_contrat", "POL-001"), ErrDuplicate)
	assert.ErrorIs(t, Invalid("date_fin", "must be after date_debut"), ErrValidation)
	assert.ErrorIs(t, InvalidState(EntityIndemnification, IndemnificationPaid), ErrInvalidState)
	assert.NotErrorIs(t, NotFound(EntityClaim, "x"), ErrDuplicate)
	assert.Equal(t, `ContratAssurance with numero_contrat "POL-001" already exists`,
		Duplicate(EntityContract, "numero_contrat", "POL-001").Error())
}
