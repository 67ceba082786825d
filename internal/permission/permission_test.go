package permission

import (
	"testing"

	"churchadmin/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAllowed_WorkflowGates(t *testing.T) {
	cases := []struct {
		entity, action, role string
		want                 bool
	}{
		{Income, Verify, model.RoleAdministrator, true},
		{Income, Verify, model.RolePastor, true},
		{Income, Verify, model.RoleFinanceOfficer, true},
		{Income, Verify, model.RoleSecretary, false},
		{Income, Verify, model.RoleMember, false},
		{Income, Delete, model.RoleAdministrator, true},
		{Income, Delete, model.RolePastor, false},
		{Income, Create, model.RoleMember, true},
		{Income, View, model.RoleMember, false},

		{Expense, Approve, model.RoleAdministrator, true},
		{Expense, Approve, model.RolePastor, true},
		{Expense, Approve, model.RoleFinanceOfficer, false},
		{Expense, Pay, model.RoleAdministrator, true},
		{Expense, Pay, model.RoleFinanceOfficer, true},
		{Expense, Pay, model.RolePastor, false},
		{Expense, Delete, model.RoleAdministrator, true},
		{Expense, Delete, model.RoleFinanceOfficer, false},

		{ExpenseCategory, Delete, model.RoleAdministrator, true},
		{ExpenseCategory, Delete, model.RolePastor, false},
		{IncomeCategory, Delete, model.RoleFinanceOfficer, false},

		{Report, View, model.RoleSecretary, false},
		{"unknown", View, model.RoleAdministrator, false},
		{Income, "unknown", model.RoleAdministrator, false},
	}

	for _, tc := range cases {
		got := Allowed(tc.entity, tc.action, tc.role)
		assert.Equalf(t, tc.want, got, "%s.%s for %s", tc.entity, tc.action, tc.role)
	}
}

func TestRoles_ReturnsCopy(t *testing.T) {
	roles := Roles(Expense, Delete)
	assert.Equal(t, []string{model.RoleAdministrator}, roles)

	roles[0] = model.RoleMember
	assert.True(t, Allowed(Expense, Delete, model.RoleAdministrator))
	assert.False(t, Allowed(Expense, Delete, model.RoleMember))
}

func TestTrustedSubmitter(t *testing.T) {
	assert.True(t, TrustedSubmitter(model.RoleAdministrator))
	assert.True(t, TrustedSubmitter(model.RolePastor))
	assert.False(t, TrustedSubmitter(model.RoleFinanceOfficer))
	assert.False(t, TrustedSubmitter(model.RoleSecretary))
}
