package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"churchadmin/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportFixture() (ExportService, *incomeFixture, *expenseFixture) {
	in := newIncomeFixture()
	ex := newExpenseFixture()
	return NewExportService(in.svc, ex.svc, WithClock(clock)), in, ex
}

func TestExportIncomes_CSVHidesAnonymousDonor(t *testing.T) {
	svc, in, _ := newExportFixture()
	tithes := in.tithes

	in.incomes.add(model.IncomeRecord{
		TransactionID: "INC-20261004-00001", CategoryID: tithes.ID, Category: &tithes,
		Amount: decimal.RequireFromString("1250.5"), Currency: "USD", TransactionDate: day("2026-10-04"),
		DonorName: "Grace Hopper", PaymentMethod: model.PaymentCash, Status: model.IncomeVerified,
	})
	in.incomes.add(model.IncomeRecord{
		TransactionID: "INC-20261005-00002", CategoryID: tithes.ID, Category: &tithes,
		Amount: decimal.NewFromInt(40), Currency: "USD", TransactionDate: day("2026-10-05"),
		DonorName: "should not leak", IsAnonymous: true, PaymentMethod: model.PaymentCash, Status: model.IncomePending,
	})

	var buf bytes.Buffer
	require.NoError(t, svc.Incomes(context.Background(), actor(model.RoleFinanceOfficer), IncomeFilter{}, FormatCSV, &buf))

	out := buf.String()
	assert.Contains(t, out, "INC-20261004-00001,2026-10-04,Tithes,Grace Hopper,cash,,,verified,USD,1250.50")
	assert.Contains(t, out, ",Anonymous,")
	assert.NotContains(t, out, "should not leak")
}

func TestExportExpenses_HTML(t *testing.T) {
	svc, _, ex := newExportFixture()
	paidOn := day("2026-10-12")
	ex.expenses.add(model.ExpenseRecord{
		TransactionID: "EXP-20261010-00001", CategoryID: ex.utilities.ID, Category: &ex.utilities,
		Amount: decimal.NewFromInt(2400), Currency: "USD", ExpenseDate: day("2026-10-10"),
		VendorName: "City <Power>", Description: "Electricity", Status: model.ExpensePaid, PaymentDate: &paidOn,
	})

	var buf bytes.Buffer
	require.NoError(t, svc.Expenses(context.Background(), actor(model.RoleAdministrator), ExpenseFilter{}, FormatHTML, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<!DOCTYPE html>"))
	assert.Contains(t, out, "Expense Records")
	assert.Contains(t, out, "City &lt;Power&gt;")
	assert.Contains(t, out, "2,400.00")
	assert.Contains(t, out, "2026-10-12")
}

func TestExport_Guards(t *testing.T) {
	svc, _, _ := newExportFixture()
	var buf bytes.Buffer

	err := svc.Incomes(context.Background(), actor(model.RoleSecretary), IncomeFilter{}, FormatCSV, &buf)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.Expenses(context.Background(), actor(model.RolePastor), ExpenseFilter{}, "pdf", &buf)
	assert.Equal(t, "Format must be csv or html", validationFields(t, err)["format"])

	err = svc.Incomes(context.Background(), actor(model.RolePastor), IncomeFilter{DateFrom: "10/01/2026"}, FormatCSV, &buf)
	assert.Contains(t, validationFields(t, err), "date_from")
	assert.Zero(t, buf.Len())
}
