package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testRoles() []RoleInput {
	return []RoleInput{
		{Email: strPtr("a@x.com"), Name: "A"},
		{Email: strPtr("b@x.com"), Name: "B"},
		{Email: nil, Name: "C"},
	}
}

func testTokens() []string {
	return []string{"token-1", "token-2", "token-3"}
}

func TestNewWorkflow(t *testing.T) {
	w, err := NewWorkflow("doc-1", "NDA signing", "three party NDA", "a@x.com", testRoles(), testTokens())
	require.NoError(t, err)

	assert.NotEmpty(t, w.ID)
	assert.Equal(t, WorkflowStatusDraft, w.Status)
	assert.Equal(t, 1, w.CurrentRole)
	assert.Equal(t, 1, w.Version)
	assert.Equal(t, RoleCount, w.Metadata.TotalSignatures)
	assert.Equal(t, 0, w.Metadata.CompletedSignatures)

	require.Len(t, w.Roles, RoleCount)
	for i, role := range w.Roles {
		assert.Equal(t, i+1, role.RoleNumber)
		assert.Equal(t, RoleStatusPending, role.Status)
		assert.Equal(t, testTokens()[i], role.AccessToken)
		assert.Nil(t, role.SignedAt)
	}
	assert.Equal(t, "a@x.com", *w.Roles[0].Email)
	assert.Nil(t, w.Roles[2].Email)
}

func TestNewWorkflowDefaultsRoleNames(t *testing.T) {
	roles := testRoles()
	roles[2].Name = ""

	w, err := NewWorkflow("doc-1", "n", "", "a@x.com", roles, testTokens())
	require.NoError(t, err)
	assert.Equal(t, "Role 3", w.Roles[2].Name)
}

func TestNewWorkflowValidation(t *testing.T) {
	tests := []struct {
		name   string
		roles  []RoleInput
		tokens []string
	}{
		{
			name:   "too few roles",
			roles:  testRoles()[:2],
			tokens: testTokens(),
		},
		{
			name: "too many roles",
			roles: append(testRoles(),
				RoleInput{Email: strPtr("d@x.com"), Name: "D"}),
			tokens: testTokens(),
		},
		{
			name: "missing role 1 email",
			roles: []RoleInput{
				{Email: nil, Name: "A"},
				{Email: strPtr("b@x.com"), Name: "B"},
				{Email: nil, Name: "C"},
			},
			tokens: testTokens(),
		},
		{
			name: "missing role 2 email",
			roles: []RoleInput{
				{Email: strPtr("a@x.com"), Name: "A"},
				{Email: strPtr(""), Name: "B"},
				{Email: nil, Name: "C"},
			},
			tokens: testTokens(),
		},
		{
			name:   "missing tokens",
			roles:  testRoles(),
			tokens: []string{"token-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorkflow("doc-1", "n", "", "a@x.com", tt.roles, tt.tokens)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRoleByNumber(t *testing.T) {
	w, err := NewWorkflow("doc-1", "n", "", "a@x.com", testRoles(), testTokens())
	require.NoError(t, err)

	assert.Equal(t, 2, w.RoleByNumber(2).RoleNumber)
	assert.Nil(t, w.RoleByNumber(4))
	assert.Equal(t, 1, w.CurrentRoleEntry().RoleNumber)
}
