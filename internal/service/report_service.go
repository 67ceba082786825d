package service

import (
	"context"
	"time"

	"churchadmin/internal/model"
	"churchadmin/internal/permission"
	"churchadmin/internal/repository"

	"github.com/shopspring/decimal"
)

// Report kinds accepted by CategoryTotals
const (
	ReportIncome  = "income"
	ReportExpense = "expense"
)

const (
	defaultTopDonors = 10
	maxTopDonors     = 50
	maxPeriodYears   = 10
)

// ReportPeriod is an inclusive YYYY-MM-DD range; empty bounds default to
// the first day of the current month and today
type ReportPeriod struct {
	From string
	To   string
}

type ReportService interface {
	CategoryTotals(ctx context.Context, user model.ActingUser, kind string, period ReportPeriod) ([]model.CategoryTotal, error)
	MonthlyTrend(ctx context.Context, user model.ActingUser, period ReportPeriod) ([]model.TrendPoint, error)
	TopDonors(ctx context.Context, user model.ActingUser, period ReportPeriod, limit int) ([]model.DonorRanking, error)
	Dashboard(ctx context.Context, user model.ActingUser) (model.DashboardSummary, error)
}

type reportService struct {
	reportRepo   repository.ReportRepository
	incomeRepo   repository.IncomeRepository
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.CategoryRepository
	opts         options
}

func NewReportService(
	reportRepo repository.ReportRepository,
	incomeRepo repository.IncomeRepository,
	expenseRepo repository.ExpenseRepository,
	categoryRepo repository.CategoryRepository,
	opts ...Option,
) ReportService {
	return &reportService{
		reportRepo:   reportRepo,
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		opts:         buildOptions(opts),
	}
}

func (s *reportService) resolve(p ReportPeriod) (time.Time, time.Time, error) {
	today := dateOnly(s.opts.now().In(time.Local))
	from, _ := monthBounds(today)
	to := today

	errs := map[string]string{}
	if p.From != "" {
		d, err := parseDate(p.From, time.Local)
		if err != nil {
			errs["from"] = "From must be a valid date (YYYY-MM-DD)"
		} else {
			from = d
		}
	}
	if p.To != "" {
		d, err := parseDate(p.To, time.Local)
		if err != nil {
			errs["to"] = "To must be a valid date (YYYY-MM-DD)"
		} else {
			to = d
		}
	}
	if len(errs) == 0 && from.After(to) {
		errs["from"] = "From must not be after To"
	}
	if len(errs) == 0 && from.AddDate(maxPeriodYears, 0, 0).Before(to) {
		errs["from"] = "Period cannot span more than 10 years"
	}
	if len(errs) > 0 {
		return from, to, &ValidationError{Fields: errs}
	}
	return from, to, nil
}

func (s *reportService) CategoryTotals(ctx context.Context, user model.ActingUser, kind string, period ReportPeriod) ([]model.CategoryTotal, error) {
	if !permission.Allowed(permission.Report, permission.View, user.Role) {
		return nil, ErrPermissionDenied
	}
	from, to, err := s.resolve(period)
	if err != nil {
		return nil, boundary("category totals", err)
	}

	var rows []model.CategoryTotal
	switch kind {
	case ReportIncome:
		rows, err = s.reportRepo.IncomeByCategory(ctx, model.IncomeVerified, from, to)
	case ReportExpense:
		rows, err = s.reportRepo.ExpenseByCategory(ctx, []string{model.ExpensePaid}, from, to)
	default:
		return nil, fieldError("kind", "Kind must be income or expense")
	}
	if err != nil {
		return nil, boundary("category totals", err)
	}
	if rows == nil {
		rows = []model.CategoryTotal{}
	}
	return rows, nil
}

// MonthlyTrend returns one point per calendar month in the period, zero
// filled, comparing verified income with paid expenses
func (s *reportService) MonthlyTrend(ctx context.Context, user model.ActingUser, period ReportPeriod) ([]model.TrendPoint, error) {
	if !permission.Allowed(permission.Report, permission.View, user.Role) {
		return nil, ErrPermissionDenied
	}
	from, to, err := s.resolve(period)
	if err != nil {
		return nil, boundary("monthly trend", err)
	}

	income, err := s.reportRepo.MonthlyIncome(ctx, model.IncomeVerified, from, to)
	if err != nil {
		return nil, boundary("monthly trend", err)
	}
	expense, err := s.reportRepo.MonthlyExpense(ctx, []string{model.ExpensePaid}, from, to)
	if err != nil {
		return nil, boundary("monthly trend", err)
	}
	return fillTrend(from, to, income, expense), nil
}

func fillTrend(from, to time.Time, income, expense []model.MonthlyAmount) []model.TrendPoint {
	byMonth := func(rows []model.MonthlyAmount) map[string]decimal.Decimal {
		m := make(map[string]decimal.Decimal, len(rows))
		for _, r := range rows {
			m[r.Period] = r.Total
		}
		return m
	}
	in, out := byMonth(income), byMonth(expense)

	points := []model.TrendPoint{}
	start, _ := monthBounds(from)
	for m := start; !m.After(to); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		p := model.TrendPoint{Period: key, Income: decimal.Zero, Expense: decimal.Zero}
		if v, ok := in[key]; ok {
			p.Income = v
		}
		if v, ok := out[key]; ok {
			p.Expense = v
		}
		p.Net = p.Income.Sub(p.Expense)
		points = append(points, p)
	}
	return points
}

func (s *reportService) TopDonors(ctx context.Context, user model.ActingUser, period ReportPeriod, limit int) ([]model.DonorRanking, error) {
	if !permission.Allowed(permission.Report, permission.View, user.Role) {
		return nil, ErrPermissionDenied
	}
	from, to, err := s.resolve(period)
	if err != nil {
		return nil, boundary("top donors", err)
	}
	if limit <= 0 {
		limit = defaultTopDonors
	}
	if limit > maxTopDonors {
		limit = maxTopDonors
	}
	rows, err := s.reportRepo.TopDonors(ctx, from, to, limit)
	if err != nil {
		return nil, boundary("top donors", err)
	}
	if rows == nil {
		rows = []model.DonorRanking{}
	}
	return rows, nil
}

func (s *reportService) Dashboard(ctx context.Context, user model.ActingUser) (model.DashboardSummary, error) {
	if !permission.Allowed(permission.Report, permission.View, user.Role) {
		return model.DashboardSummary{}, ErrPermissionDenied
	}
	today := dateOnly(s.opts.now().In(time.Local))
	start, next := monthBounds(today)
	end := next.AddDate(0, 0, -1)

	var sum model.DashboardSummary
	var err error
	sum.PeriodStart, sum.PeriodEnd = start, end

	if sum.IncomeVerified, err = s.reportRepo.IncomeTotal(ctx, model.IncomeVerified, start, end); err != nil {
		return sum, boundary("dashboard", err)
	}
	if sum.ExpensePaid, err = s.reportRepo.ExpenseTotal(ctx, []string{model.ExpensePaid}, start, end); err != nil {
		return sum, boundary("dashboard", err)
	}
	sum.Net = sum.IncomeVerified.Sub(sum.ExpensePaid)

	if sum.PendingIncomeCount, err = s.incomeRepo.CountByStatus(ctx, model.IncomePending); err != nil {
		return sum, boundary("dashboard", err)
	}
	if sum.PendingExpenseCount, err = s.expenseRepo.CountByStatus(ctx, model.ExpensePending); err != nil {
		return sum, boundary("dashboard", err)
	}
	if sum.ApprovedUnpaidAmount, sum.ApprovedUnpaidCount, err = s.expenseRepo.SumByStatus(ctx, model.ExpenseApproved); err != nil {
		return sum, boundary("dashboard", err)
	}

	categories, err := s.categoryRepo.ListExpenseCategories(ctx, true)
	if err != nil {
		return sum, boundary("dashboard", err)
	}
	sum.Budgets = []model.BudgetUsage{}
	for _, c := range categories {
		if !c.HasBudget() {
			continue
		}
		spent, err := s.expenseRepo.SumForCategory(ctx, c.ID, start, next, spentStatuses)
		if err != nil {
			return sum, boundary("dashboard", err)
		}
		sum.Budgets = append(sum.Budgets, model.BudgetUsage{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			BudgetLimit:  c.BudgetLimit,
			Spent:        spent,
			Remaining:    c.BudgetLimit.Sub(spent),
		})
	}
	return sum, nil
}
