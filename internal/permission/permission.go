// Package permission holds the role capability table consulted by every
// finance operation. Route middleware uses it for coarse gates and the
// services consult it again before touching the store.
package permission

import "churchadmin/internal/model"

// Entities
const (
	Income          = "income"
	Expense         = "expense"
	IncomeCategory  = "income_category"
	ExpenseCategory = "expense_category"
	Report          = "report"
	Activity        = "activity"
)

// Actions
const (
	View    = "view"
	Create  = "create"
	Update  = "update"
	Verify  = "verify"
	Approve = "approve"
	Reject  = "reject"
	Pay     = "pay"
	Delete  = "delete"
	Manage  = "manage"
	Export  = "export"
)

var (
	staff   = []string{model.RoleAdministrator, model.RolePastor, model.RoleFinanceOfficer, model.RoleSecretary}
	finance = []string{model.RoleAdministrator, model.RolePastor, model.RoleFinanceOfficer}
	leaders = []string{model.RoleAdministrator, model.RolePastor}
	admin   = []string{model.RoleAdministrator}
	members = []string{model.RoleAdministrator, model.RolePastor, model.RoleFinanceOfficer, model.RoleSecretary, model.RoleMember}
)

var table = map[string]map[string][]string{
	Income: {
		View:   staff,
		Create: members,
		Update: staff,
		Verify: finance,
		Reject: finance,
		Delete: admin,
	},
	Expense: {
		View:    staff,
		Create:  staff,
		Update:  staff,
		Approve: leaders,
		Reject:  leaders,
		Pay:     {model.RoleAdministrator, model.RoleFinanceOfficer},
		Delete:  admin,
	},
	IncomeCategory: {
		View:   staff,
		Manage: finance,
		Delete: admin,
	},
	ExpenseCategory: {
		View:   staff,
		Manage: finance,
		Delete: admin,
	},
	Report: {
		View:   finance,
		Export: finance,
	},
	Activity: {
		View: leaders,
	},
}

// Roles whose submissions skip the pending state (income verified, expense approved)
var trustedSubmitters = leaders

// Allowed reports whether role may perform action on entity.
// Unknown entities or actions are denied.
func Allowed(entity, action, role string) bool {
	for _, r := range table[entity][action] {
		if r == role {
			return true
		}
	}
	return false
}

// Roles returns a copy of the roles granted action on entity
func Roles(entity, action string) []string {
	roles := table[entity][action]
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}

// TrustedSubmitter reports whether records created by role start out already
// verified (income) or approved (expense).
func TrustedSubmitter(role string) bool {
	for _, r := range trustedSubmitters {
		if r == role {
			return true
		}
	}
	return false
}
