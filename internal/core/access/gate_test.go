package access

import (
	"errors"
	"testing"

	"assurgest/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)

	for _, role := range domain.Roles {
		assert.True(t, g.KnownRole(role), "role %s missing from table", role)
	}

	assert.True(t, g.Allows(domain.RoleAdmin, RoleManage))
	assert.True(t, g.Allows(domain.RoleManager, IndemnificationValidate))
	assert.True(t, g.Allows(domain.RoleAgent, IndemnificationPropose))
	assert.False(t, g.Allows(domain.RoleAgent, IndemnificationValidate))
	assert.False(t, g.Allows(domain.RoleAgent, FolderArchive))
	assert.False(t, g.Allows(domain.RoleClient, ContractRead))
	assert.Len(t, g.Operations(domain.RoleAdmin), len(All))
}

func TestAuthorize(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)

	assert.NoError(t, g.Authorize(domain.RoleManager, ContractCancel))
	assert.ErrorIs(t, g.Authorize("", ContractCancel), domain.ErrUnauthorized)

	err = g.Authorize(domain.RoleAgent, ContractDelete)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	assert.ErrorIs(t, g.Authorize("stranger", ContractRead), domain.ErrForbidden)
}

func TestLoadRejectsUnknownOperation(t *testing.T) {
	_, err := Load([]byte("roles:\n  agent:\n    - contract.launch\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract.launch")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load([]byte("roles: [::"))
	assert.Error(t, err)
}
