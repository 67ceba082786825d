package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"churchadmin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReports returns canned rows and remembers the last range and limit asked for
type fakeReports struct {
	incomeByCategory []model.CategoryTotal
	monthlyIncome    []model.MonthlyAmount
	monthlyExpense   []model.MonthlyAmount
	incomeTotal      decimal.Decimal
	expenseTotal     decimal.Decimal

	from, to   time.Time
	donorLimit int
	lastStatus []string

	// err fails every income query
	err error
}

func (f *fakeReports) IncomeByCategory(_ context.Context, status string, from, to time.Time) ([]model.CategoryTotal, error) {
	f.from, f.to, f.lastStatus = from, to, []string{status}
	return f.incomeByCategory, f.err
}

func (f *fakeReports) ExpenseByCategory(_ context.Context, statuses []string, from, to time.Time) ([]model.CategoryTotal, error) {
	f.from, f.to, f.lastStatus = from, to, statuses
	return nil, nil
}

func (f *fakeReports) MonthlyIncome(_ context.Context, _ string, from, to time.Time) ([]model.MonthlyAmount, error) {
	f.from, f.to = from, to
	return f.monthlyIncome, f.err
}

func (f *fakeReports) MonthlyExpense(_ context.Context, _ []string, _, _ time.Time) ([]model.MonthlyAmount, error) {
	return f.monthlyExpense, nil
}

func (f *fakeReports) TopDonors(_ context.Context, from, to time.Time, limit int) ([]model.DonorRanking, error) {
	f.from, f.to, f.donorLimit = from, to, limit
	return nil, nil
}

func (f *fakeReports) IncomeTotal(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, error) {
	return f.incomeTotal, f.err
}

func (f *fakeReports) ExpenseTotal(_ context.Context, _ []string, _, _ time.Time) (decimal.Decimal, error) {
	return f.expenseTotal, nil
}

type reportFixture struct {
	svc        ReportService
	reports    *fakeReports
	incomes    *fakeIncomes
	expenses   *fakeExpenses
	categories *fakeCategories
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		reports:    &fakeReports{},
		incomes:    newFakeIncomes(),
		expenses:   newFakeExpenses(),
		categories: newFakeCategories(),
	}
	f.svc = NewReportService(f.reports, f.incomes, f.expenses, f.categories, WithClock(clock))
	return f
}

func TestFillTrend_ZeroFillsMissingMonths(t *testing.T) {
	income := []model.MonthlyAmount{
		{Period: "2026-01", Total: decimal.NewFromInt(1200)},
		{Period: "2026-03", Total: decimal.NewFromInt(800)},
	}
	expense := []model.MonthlyAmount{
		{Period: "2026-02", Total: decimal.NewFromInt(300)},
		{Period: "2026-03", Total: decimal.NewFromInt(1000)},
	}

	points := fillTrend(day("2026-01-15"), day("2026-04-02"), income, expense)
	require.Len(t, points, 4)

	periods := make([]string, len(points))
	for i, p := range points {
		periods[i] = p.Period
	}
	assert.Equal(t, []string{"2026-01", "2026-02", "2026-03", "2026-04"}, periods)

	assert.True(t, points[1].Income.IsZero())
	assert.True(t, points[1].Net.Equal(decimal.NewFromInt(-300)))
	assert.True(t, points[2].Net.Equal(decimal.NewFromInt(-200)))
	assert.True(t, points[3].Income.IsZero() && points[3].Expense.IsZero())
}

func TestFillTrend_SingleDay(t *testing.T) {
	points := fillTrend(day("2026-10-17"), day("2026-10-17"), nil, nil)
	require.Len(t, points, 1)
	assert.Equal(t, "2026-10", points[0].Period)
}

func TestReportPeriod_Defaults(t *testing.T) {
	f := newReportFixture()

	_, err := f.svc.CategoryTotals(context.Background(), actor(model.RoleFinanceOfficer), ReportIncome, ReportPeriod{})
	require.NoError(t, err)
	assert.Equal(t, day("2026-10-01"), f.reports.from)
	assert.Equal(t, day("2026-10-17"), f.reports.to)
	assert.Equal(t, []string{model.IncomeVerified}, f.reports.lastStatus)
}

func TestReportPeriod_Invalid(t *testing.T) {
	f := newReportFixture()
	user := actor(model.RolePastor)

	_, err := f.svc.MonthlyTrend(context.Background(), user, ReportPeriod{From: "2026-10-10", To: "2026-10-01"})
	assert.Equal(t, "From must not be after To", validationFields(t, err)["from"])

	_, err = f.svc.MonthlyTrend(context.Background(), user, ReportPeriod{To: "yesterday"})
	assert.Contains(t, validationFields(t, err), "to")

	_, err = f.svc.MonthlyTrend(context.Background(), user, ReportPeriod{From: "0001-01-01", To: "9999-12-31"})
	assert.Equal(t, "Period cannot span more than 10 years", validationFields(t, err)["from"])
	assert.True(t, f.reports.from.IsZero(), "store not queried")
}

func TestReportPeriod_TenYearsIsAllowed(t *testing.T) {
	f := newReportFixture()

	points, err := f.svc.MonthlyTrend(context.Background(), actor(model.RolePastor), ReportPeriod{From: "2016-10-17", To: "2026-10-17"})
	require.NoError(t, err)
	assert.Len(t, points, 121)
}

func TestReports_StoreFailureIsSaveError(t *testing.T) {
	f := newReportFixture()
	f.reports.err = errors.New("canceling statement due to statement timeout")
	user := actor(model.RoleFinanceOfficer)

	_, err := f.svc.CategoryTotals(context.Background(), user, ReportIncome, ReportPeriod{})
	var se *SaveError
	require.True(t, errors.As(err, &se))
	assert.NotContains(t, err.Error(), "statement timeout")

	_, err = f.svc.MonthlyTrend(context.Background(), user, ReportPeriod{})
	assert.True(t, errors.As(err, &se))

	_, err = f.svc.Dashboard(context.Background(), user)
	assert.True(t, errors.As(err, &se))
}

func TestCategoryTotals(t *testing.T) {
	f := newReportFixture()
	user := actor(model.RoleAdministrator)

	rows, err := f.svc.CategoryTotals(context.Background(), user, ReportExpense, ReportPeriod{From: "2026-01-01", To: "2026-06-30"})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Equal(t, []string{model.ExpensePaid}, f.reports.lastStatus)

	_, err = f.svc.CategoryTotals(context.Background(), user, "assets", ReportPeriod{})
	assert.Contains(t, validationFields(t, err), "kind")
}

func TestTopDonors_LimitClamp(t *testing.T) {
	f := newReportFixture()
	user := actor(model.RoleFinanceOfficer)

	for _, tc := range []struct{ in, want int }{{0, 10}, {-3, 10}, {25, 25}, {500, 50}} {
		rows, err := f.svc.TopDonors(context.Background(), user, ReportPeriod{}, tc.in)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Equal(t, tc.want, f.reports.donorLimit, "limit %d", tc.in)
	}
}

func TestReports_Permissions(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()

	for _, role := range []string{model.RoleSecretary, model.RoleMember, "visitor"} {
		user := actor(role)
		_, err := f.svc.CategoryTotals(ctx, user, ReportIncome, ReportPeriod{})
		assert.ErrorIs(t, err, ErrPermissionDenied)
		_, err = f.svc.MonthlyTrend(ctx, user, ReportPeriod{})
		assert.ErrorIs(t, err, ErrPermissionDenied)
		_, err = f.svc.TopDonors(ctx, user, ReportPeriod{}, 5)
		assert.ErrorIs(t, err, ErrPermissionDenied)
		_, err = f.svc.Dashboard(ctx, user)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}
}

func TestDashboard(t *testing.T) {
	f := newReportFixture()
	f.reports.incomeTotal = decimal.NewFromInt(12000)
	f.reports.expenseTotal = decimal.NewFromInt(4500)

	utilities := f.categories.addExpense("Utilities", 10000, false)
	f.categories.addExpense("Travel", 0, true)

	f.incomes.add(model.IncomeRecord{Status: model.IncomePending})
	f.incomes.add(model.IncomeRecord{Status: model.IncomeVerified})
	f.expenses.add(model.ExpenseRecord{CategoryID: utilities.ID, Amount: decimal.NewFromInt(2500), Status: model.ExpenseApproved, ExpenseDate: day("2026-10-05")})
	f.expenses.add(model.ExpenseRecord{CategoryID: utilities.ID, Amount: decimal.NewFromInt(500), Status: model.ExpenseApproved, ExpenseDate: day("2026-09-29")})
	f.expenses.add(model.ExpenseRecord{CategoryID: utilities.ID, Amount: decimal.NewFromInt(100), Status: model.ExpensePending, ExpenseDate: day("2026-10-06")})
	f.expenses.add(model.ExpenseRecord{CategoryID: uuid.New(), Amount: decimal.NewFromInt(100), Status: model.ExpensePending, ExpenseDate: day("2026-10-06")})

	sum, err := f.svc.Dashboard(context.Background(), actor(model.RolePastor))
	require.NoError(t, err)

	assert.Equal(t, day("2026-10-01"), sum.PeriodStart)
	assert.Equal(t, day("2026-10-31"), sum.PeriodEnd)
	assert.True(t, sum.Net.Equal(decimal.NewFromInt(7500)))
	assert.Equal(t, int64(1), sum.PendingIncomeCount)
	assert.Equal(t, int64(2), sum.PendingExpenseCount)
	assert.Equal(t, int64(2), sum.ApprovedUnpaidCount)
	assert.True(t, sum.ApprovedUnpaidAmount.Equal(decimal.NewFromInt(3000)))

	require.Len(t, sum.Budgets, 1)
	b := sum.Budgets[0]
	assert.Equal(t, "Utilities", b.CategoryName)
	assert.True(t, b.Spent.Equal(decimal.NewFromInt(2500)))
	assert.True(t, b.Remaining.Equal(decimal.NewFromInt(7500)))
}
