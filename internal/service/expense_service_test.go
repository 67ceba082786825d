package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"churchadmin/internal/model"
	"churchadmin/internal/repository"
	"churchadmin/internal/upload"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expenseFixture struct {
	svc        ExpenseService
	expenses   *fakeExpenses
	categories *fakeCategories
	activity   *fakeActivity
	events     *fakePublisher
	receipts   *fakeReceipts

	utilities model.ExpenseCategory // budget 10000, no approval needed
	travel    model.ExpenseCategory // approval required, unlimited
	supplies  model.ExpenseCategory // no approval needed, unlimited
}

func newExpenseFixture() *expenseFixture {
	f := &expenseFixture{
		expenses:   newFakeExpenses(),
		categories: newFakeCategories(),
		activity:   &fakeActivity{},
		events:     &fakePublisher{},
		receipts:   &fakeReceipts{},
	}
	f.utilities = f.categories.addExpense("Utilities", 10000, false)
	f.travel = f.categories.addExpense("Travel", 0, true)
	f.supplies = f.categories.addExpense("Supplies", 0, false)
	f.svc = NewExpenseService(f.expenses, f.categories, f.activity, newFakeTxids(), &fakeTx{}, f.receipts, DefaultSettings(),
		WithClock(clock), WithPublisher(f.events))
	return f
}

func expenseForm(category model.ExpenseCategory, amount string) ExpenseForm {
	return ExpenseForm{
		CategoryID:    category.ID.String(),
		Amount:        amount,
		VendorName:    "City Power",
		PaymentMethod: model.PaymentBankTransfer,
		Description:   "October electricity bill",
		ExpenseDate:   "2026-10-12",
	}
}

// seed puts an existing expense straight into the store
func (f *expenseFixture) seed(category model.ExpenseCategory, amount int64, date, status string) model.ExpenseRecord {
	return f.expenses.add(model.ExpenseRecord{
		CategoryID:  category.ID,
		Amount:      decimal.NewFromInt(amount),
		Currency:    "USD",
		ExpenseDate: day(date),
		Description: "seeded expense",
		Status:      status,
		RequestedBy: uuid.New(),
	})
}

func TestExpenseSubmit_UnderThresholdWithoutApprovalIsAutoApproved(t *testing.T) {
	f := newExpenseFixture()
	secretary := actor(model.RoleSecretary)

	res, err := f.svc.Submit(context.Background(), secretary, expenseForm(f.utilities, "3000"), nil)
	require.NoError(t, err)

	assert.Equal(t, model.ExpenseApproved, res.Status)
	require.NotNil(t, res.ApprovedBy)
	assert.Equal(t, secretary.ID.String(), *res.ApprovedBy)
	assert.NotNil(t, res.ApprovalDate)
	assert.Equal(t, "EXP-20261017-00001", res.TransactionID)
	assert.Equal(t, []string{model.EventExpenseSubmitted}, f.events.types())
}

func TestExpenseSubmit_CategoryRequiringApprovalStaysPending(t *testing.T) {
	f := newExpenseFixture()

	res, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), expenseForm(f.travel, "500"), nil)
	require.NoError(t, err)

	assert.Equal(t, model.ExpensePending, res.Status)
	assert.Nil(t, res.ApprovedBy)
	assert.Nil(t, res.ApprovalDate)
}

func TestExpenseSubmit_AboveAutoApprovalLimitStaysPending(t *testing.T) {
	f := newExpenseFixture()

	res, err := f.svc.Submit(context.Background(), actor(model.RoleFinanceOfficer), expenseForm(f.supplies, "5000.01"), nil)
	require.NoError(t, err)
	assert.Equal(t, model.ExpensePending, res.Status)

	res, err = f.svc.Submit(context.Background(), actor(model.RoleFinanceOfficer), expenseForm(f.supplies, "5000"), nil)
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseApproved, res.Status)
}

func TestExpenseSubmit_LeadersAreAlwaysApproved(t *testing.T) {
	f := newExpenseFixture()

	res, err := f.svc.Submit(context.Background(), actor(model.RolePastor), expenseForm(f.travel, "9000"), nil)
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseApproved, res.Status)
}

func TestExpenseSubmit_BudgetExceeded(t *testing.T) {
	f := newExpenseFixture()
	f.seed(f.utilities, 7000, "2026-10-02", model.ExpenseApproved)
	f.seed(f.utilities, 1000, "2026-10-05", model.ExpensePaid)
	// neither of these count toward October
	f.seed(f.utilities, 5000, "2026-10-06", model.ExpensePending)
	f.seed(f.utilities, 9000, "2026-09-30", model.ExpensePaid)

	_, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), expenseForm(f.utilities, "2500"), nil)

	fields := validationFields(t, err)
	assert.Equal(t, "Amount exceeds the monthly budget for Utilities. Remaining budget: USD 2,000.00", fields["amount"])
	assert.Len(t, f.expenses.records, 4, "nothing inserted")

	// exactly the remaining amount fits
	res, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), expenseForm(f.utilities, "2000"), nil)
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseApproved, res.Status)
}

func TestExpenseSubmit_BudgetUsesExpenseMonth(t *testing.T) {
	f := newExpenseFixture()
	f.seed(f.utilities, 9500, "2026-09-10", model.ExpensePaid)

	form := expenseForm(f.utilities, "1000")
	form.ExpenseDate = "2026-09-28"
	_, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), form, nil)
	assert.Contains(t, validationFields(t, err)["amount"], "Remaining budget: USD 500.00")

	form.ExpenseDate = "2026-10-01"
	_, err = f.svc.Submit(context.Background(), actor(model.RoleSecretary), form, nil)
	assert.NoError(t, err)
}

func TestExpenseSubmit_FieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ExpenseForm)
		field  string
		msg    string
	}{
		{"zero amount", func(f *ExpenseForm) { f.Amount = "0" }, "amount", "Amount must be greater than zero"},
		{"sub-cent amount", func(f *ExpenseForm) { f.Amount = "0.004" }, "amount", "Amount must be greater than zero"},
		{"amount beyond column range", func(f *ExpenseForm) { f.Amount = "10000000000000000" }, "amount", "Amount cannot exceed 999,999,999,999.99"},
		{"future date", func(f *ExpenseForm) { f.ExpenseDate = "2026-11-01" }, "expense_date", "Expense date cannot be in the future"},
		{"short description", func(f *ExpenseForm) { f.Description = "fee" }, "description", "Description must be at least 5 characters"},
		{"bad vendor email", func(f *ExpenseForm) { f.VendorEmail = "power.example.org" }, "vendor_email", "Vendor email must be a valid email address"},
		{"missing payment method", func(f *ExpenseForm) { f.PaymentMethod = "" }, "payment_method", "Payment method is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newExpenseFixture()
			form := expenseForm(f.supplies, "100")
			tc.mutate(&form)

			_, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), form, nil)
			assert.Equal(t, tc.msg, validationFields(t, err)[tc.field])
			assert.Empty(t, f.expenses.records)
		})
	}
}

func TestExpenseSubmit_DuplicateReference(t *testing.T) {
	f := newExpenseFixture()
	ref := "INV-9"
	f.expenses.add(model.ExpenseRecord{CategoryID: f.supplies.ID, ReferenceNumber: &ref, Status: model.ExpensePaid, ExpenseDate: day("2026-10-01")})

	form := expenseForm(f.supplies, "100")
	form.ReferenceNumber = "INV-9"
	_, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), form, nil)
	assert.Equal(t, "Reference number already exists", validationFields(t, err)["reference_number"])
}

func TestExpenseSubmit_ReferenceRaceBecomesFieldError(t *testing.T) {
	f := newExpenseFixture()
	// the pre-check passes; the unique index catches a concurrent insert
	f.expenses.createErrs = []error{repository.ErrDuplicateReference}

	form := expenseForm(f.supplies, "100")
	form.ReferenceNumber = "INV-10"
	_, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), form, nil)

	assert.Equal(t, "Reference number already exists", validationFields(t, err)["reference_number"])
	assert.Empty(t, f.expenses.records)
	assert.Empty(t, f.events.events)
}

func TestExpenseSubmit_RetriesTransactionIDCollisionOnce(t *testing.T) {
	f := newExpenseFixture()
	f.expenses.createErrs = []error{repository.ErrDuplicateTransactionID}

	res, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), expenseForm(f.supplies, "100"), nil)
	require.NoError(t, err)
	assert.Equal(t, "EXP-20261017-00002", res.TransactionID)
	assert.Len(t, f.expenses.records, 1)
	assert.Equal(t, []string{model.ActionSubmitExpense}, f.activity.actions())
}

func TestExpenseSubmit_SecondCollisionIsSaveError(t *testing.T) {
	f := newExpenseFixture()
	f.expenses.createErrs = []error{repository.ErrDuplicateTransactionID, repository.ErrDuplicateTransactionID}
	f.receipts.result = upload.Result{Success: true, Filename: "receipts/3_aaaa1111.pdf"}

	_, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), expenseForm(f.supplies, "100"), &multipart.FileHeader{Filename: "r.pdf"})

	var se *SaveError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, SaveFailedMessage, err.Error())
	assert.Empty(t, f.expenses.records)
	assert.Equal(t, []string{"receipts/3_aaaa1111.pdf"}, f.receipts.removed)
}

func TestExpenseSubmit_Receipt(t *testing.T) {
	f := newExpenseFixture()
	fh := &multipart.FileHeader{Filename: "bill.pdf", Size: 1024}

	f.receipts.result = upload.Result{Error: "File type is not allowed"}
	_, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), expenseForm(f.supplies, "100"), fh)
	assert.Equal(t, "File type is not allowed", validationFields(t, err)["receipt"])
	assert.Empty(t, f.expenses.records)

	f.receipts.result = upload.Result{Success: true, Filename: "receipts/1_abcd1234.pdf"}
	res, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), expenseForm(f.supplies, "100"), fh)
	require.NoError(t, err)
	assert.Equal(t, "receipts/1_abcd1234.pdf", res.ReceiptPath)
}

func TestExpenseSubmit_FailedSaveDiscardsReceipt(t *testing.T) {
	f := newExpenseFixture()
	f.expenses.createErrs = []error{errors.New("disk full")}
	f.receipts.result = upload.Result{Success: true, Filename: "receipts/2_ffff0000.png"}

	_, err := f.svc.Submit(context.Background(), actor(model.RoleSecretary), expenseForm(f.supplies, "100"), &multipart.FileHeader{Filename: "r.png"})

	var se *SaveError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, []string{"receipts/2_ffff0000.png"}, f.receipts.removed)
}

func TestExpenseApprove_OnlyOnce(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	pending := f.seed(f.travel, 800, "2026-10-10", model.ExpensePending)
	pastor := actor(model.RolePastor)

	res, err := f.svc.Approve(ctx, pastor, pending.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseApproved, res.Status)
	assert.Equal(t, pastor.ID.String(), *res.ApprovedBy)

	_, err = f.svc.Approve(ctx, pastor, pending.ID.String())
	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, model.ExpenseApproved, te.From)

	assert.Equal(t, []string{model.ActionApproveExpense}, f.activity.actions())
	assert.Equal(t, []string{model.EventExpenseApproved}, f.events.types())
}

func TestExpenseStateMachine(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	admin := actor(model.RoleAdministrator)

	pending := f.seed(f.travel, 100, "2026-10-10", model.ExpensePending)
	_, err := f.svc.MarkPaid(ctx, admin, pending.ID.String(), PaymentDetails{})
	var te *TransitionError
	require.True(t, errors.As(err, &te), "markPaid on pending")

	paid := f.seed(f.travel, 100, "2026-10-10", model.ExpensePaid)
	_, err = f.svc.Approve(ctx, admin, paid.ID.String())
	assert.True(t, errors.As(err, &te), "approve on paid")

	rejected := f.seed(f.travel, 100, "2026-10-10", model.ExpenseRejected)
	_, err = f.svc.MarkPaid(ctx, admin, rejected.ID.String(), PaymentDetails{})
	assert.True(t, errors.As(err, &te), "markPaid on rejected")

	assert.Equal(t, model.ExpensePending, f.expenses.records[pending.ID].Status)
	assert.Equal(t, model.ExpensePaid, f.expenses.records[paid.ID].Status)
}

func TestExpenseRoleGates(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	pending := f.seed(f.travel, 100, "2026-10-10", model.ExpensePending)
	approved := f.seed(f.travel, 100, "2026-10-10", model.ExpenseApproved)

	for _, role := range []string{model.RoleFinanceOfficer, model.RoleSecretary, model.RoleMember} {
		_, err := f.svc.Approve(ctx, actor(role), pending.ID.String())
		assert.ErrorIs(t, err, ErrPermissionDenied, "approve as %s", role)
	}
	for _, role := range []string{model.RolePastor, model.RoleSecretary, model.RoleMember} {
		_, err := f.svc.MarkPaid(ctx, actor(role), approved.ID.String(), PaymentDetails{})
		assert.ErrorIs(t, err, ErrPermissionDenied, "pay as %s", role)
	}
	for _, role := range []string{model.RolePastor, model.RoleFinanceOfficer} {
		assert.ErrorIs(t, f.svc.Delete(ctx, actor(role), pending.ID.String()), ErrPermissionDenied, "delete as %s", role)
	}
	_, err := f.svc.Submit(ctx, actor(model.RoleMember), expenseForm(f.supplies, "10"), nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExpenseReject(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	pending := f.seed(f.travel, 100, "2026-10-10", model.ExpensePending)

	_, err := f.svc.Reject(ctx, actor(model.RolePastor), pending.ID.String(), RejectExpenseRequest{Reason: "  "})
	assert.Contains(t, validationFields(t, err), "reason")

	res, err := f.svc.Reject(ctx, actor(model.RolePastor), pending.ID.String(), RejectExpenseRequest{Reason: "Not budgeted"})
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseRejected, res.Status)
	assert.Equal(t, "Not budgeted", res.RejectionReason)

	_, err = f.svc.Approve(ctx, actor(model.RolePastor), pending.ID.String())
	var te *TransitionError
	assert.True(t, errors.As(err, &te))
}

func TestExpenseMarkPaid(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	approved := f.seed(f.travel, 100, "2026-10-10", model.ExpenseApproved)
	officer := actor(model.RoleFinanceOfficer)

	_, err := f.svc.MarkPaid(ctx, officer, approved.ID.String(), PaymentDetails{PaymentDate: "2026-10-20"})
	assert.Equal(t, "Payment date cannot be in the future", validationFields(t, err)["payment_date"])

	_, err = f.svc.MarkPaid(ctx, officer, approved.ID.String(), PaymentDetails{PaymentDate: "2026-10-09"})
	assert.Equal(t, "Payment date cannot be before the expense date", validationFields(t, err)["payment_date"])
	assert.Equal(t, model.ExpenseApproved, f.expenses.records[approved.ID].Status)

	res, err := f.svc.MarkPaid(ctx, officer, approved.ID.String(), PaymentDetails{Reference: "CHQ 1102", Notes: "collected"})
	require.NoError(t, err)
	assert.Equal(t, model.ExpensePaid, res.Status)
	assert.Equal(t, officer.ID.String(), *res.PaidBy)
	assert.Equal(t, "2026-10-17", *res.PaymentDate)
	assert.Equal(t, "CHQ 1102", res.PaymentReference)
}

func TestExpenseBulkMarkPaid_IsPerRecord(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	approved := f.seed(f.travel, 100, "2026-10-10", model.ExpenseApproved)
	pending := f.seed(f.travel, 200, "2026-10-10", model.ExpensePending)

	res, err := f.svc.BulkMarkPaid(ctx, actor(model.RoleAdministrator), []string{approved.ID.String(), pending.ID.String()}, PaymentDetails{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	assert.Contains(t, res.Failed, pending.ID.String())
	assert.Equal(t, model.ExpensePaid, f.expenses.records[approved.ID].Status)
	assert.Equal(t, model.ExpensePending, f.expenses.records[pending.ID].Status)
}

func TestExpenseBulkApprove(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	a := f.seed(f.travel, 100, "2026-10-10", model.ExpensePending)
	b := f.seed(f.travel, 100, "2026-10-11", model.ExpensePending)

	res, err := f.svc.BulkApprove(ctx, actor(model.RolePastor), []string{a.ID.String(), b.ID.String(), a.ID.String(), "bogus"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, map[string]string{"bogus": ErrNotFound.Error()}, res.Failed)

	_, err = f.svc.BulkApprove(ctx, actor(model.RolePastor), nil)
	assert.Contains(t, validationFields(t, err), "ids")

	_, err = f.svc.BulkApprove(ctx, actor(model.RoleSecretary), []string{a.ID.String()})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExpenseDelete(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	admin := actor(model.RoleAdministrator)
	approved := f.seed(f.travel, 100, "2026-10-10", model.ExpenseApproved)
	pending := f.expenses.add(model.ExpenseRecord{CategoryID: f.travel.ID, Status: model.ExpensePending, ReceiptPath: "receipts/x.pdf"})

	err := f.svc.Delete(ctx, admin, approved.ID.String())
	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, f.expenses.records, approved.ID)

	require.NoError(t, f.svc.Delete(ctx, admin, pending.ID.String()))
	assert.NotContains(t, f.expenses.records, pending.ID)
	assert.Equal(t, []string{"receipts/x.pdf"}, f.receipts.removed)
	assert.Equal(t, []string{model.EventExpenseDeleted}, f.events.types())
}

func TestExpenseUpdate(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	secretary := actor(model.RoleSecretary)

	created, err := f.svc.Submit(ctx, secretary, expenseForm(f.travel, "300"), nil)
	require.NoError(t, err)
	require.Equal(t, model.ExpensePending, created.Status)

	res, err := f.svc.Update(ctx, secretary, created.ID, expenseForm(f.travel, "350"), nil)
	require.NoError(t, err)
	assert.Equal(t, "350.00", res.Amount)
	assert.Equal(t, model.ExpensePending, res.Status)

	_, err = f.svc.Update(ctx, actor(model.RoleFinanceOfficer), created.ID, expenseForm(f.travel, "350"), nil)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.svc.Approve(ctx, actor(model.RolePastor), created.ID)
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, secretary, created.ID, expenseForm(f.travel, "400"), nil)
	var te *TransitionError
	assert.True(t, errors.As(err, &te))
}
