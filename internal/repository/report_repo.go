package repository

import (
	"context"
	"fmt"
	"time"

	"churchadmin/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Period bounds are inclusive business dates.
type ReportRepository interface {
	IncomeByCategory(ctx context.Context, status string, from, to time.Time) ([]model.CategoryTotal, error)
	ExpenseByCategory(ctx context.Context, statuses []string, from, to time.Time) ([]model.CategoryTotal, error)
	MonthlyIncome(ctx context.Context, status string, from, to time.Time) ([]model.MonthlyAmount, error)
	MonthlyExpense(ctx context.Context, statuses []string, from, to time.Time) ([]model.MonthlyAmount, error)
	TopDonors(ctx context.Context, from, to time.Time, limit int) ([]model.DonorRanking, error)
	IncomeTotal(ctx context.Context, status string, from, to time.Time) (decimal.Decimal, error)
	ExpenseTotal(ctx context.Context, statuses []string, from, to time.Time) (decimal.Decimal, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

const dateLayout = "2006-01-02"

func (r *reportRepository) IncomeByCategory(ctx context.Context, status string, from, to time.Time) ([]model.CategoryTotal, error) {
	var rows []model.CategoryTotal
	if err := GetDB(ctx, r.db).Table("income_records AS i").
		Select("c.id AS category_id, c.name AS category_name, COALESCE(SUM(i.amount), 0) AS total, COUNT(i.id) AS count").
		Joins("JOIN income_categories c ON c.id = i.category_id").
		Where("i.status = ? AND i.transaction_date BETWEEN ? AND ?", status, from.Format(dateLayout), to.Format(dateLayout)).
		Group("c.id, c.name").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query income by category: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) ExpenseByCategory(ctx context.Context, statuses []string, from, to time.Time) ([]model.CategoryTotal, error) {
	var rows []model.CategoryTotal
	if err := GetDB(ctx, r.db).Table("expense_records AS e").
		Select("c.id AS category_id, c.name AS category_name, COALESCE(SUM(e.amount), 0) AS total, COUNT(e.id) AS count").
		Joins("JOIN expense_categories c ON c.id = e.category_id").
		Where("e.status IN ? AND e.expense_date BETWEEN ? AND ?", statuses, from.Format(dateLayout), to.Format(dateLayout)).
		Group("c.id, c.name").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query expenses by category: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) MonthlyIncome(ctx context.Context, status string, from, to time.Time) ([]model.MonthlyAmount, error) {
	var rows []model.MonthlyAmount
	if err := GetDB(ctx, r.db).Table("income_records").
		Select("TO_CHAR(DATE_TRUNC('month', transaction_date), 'YYYY-MM') AS period, COALESCE(SUM(amount), 0) AS total").
		Where("status = ? AND transaction_date BETWEEN ? AND ?", status, from.Format(dateLayout), to.Format(dateLayout)).
		Group("period").
		Order("period ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query monthly income: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) MonthlyExpense(ctx context.Context, statuses []string, from, to time.Time) ([]model.MonthlyAmount, error) {
	var rows []model.MonthlyAmount
	if err := GetDB(ctx, r.db).Table("expense_records").
		Select("TO_CHAR(DATE_TRUNC('month', expense_date), 'YYYY-MM') AS period, COALESCE(SUM(amount), 0) AS total").
		Where("status IN ? AND expense_date BETWEEN ? AND ?", statuses, from.Format(dateLayout), to.Format(dateLayout)).
		Group("period").
		Order("period ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query monthly expenses: %w", err)
	}
	return rows, nil
}

// TopDonors ranks named, non-anonymous donors by verified giving
func (r *reportRepository) TopDonors(ctx context.Context, from, to time.Time, limit int) ([]model.DonorRanking, error) {
	var rows []model.DonorRanking
	if err := GetDB(ctx, r.db).Table("income_records").
		Select("donor_name, SUM(amount) AS total, COUNT(*) AS count").
		Where("status = ? AND is_anonymous = ? AND donor_name <> '' AND transaction_date BETWEEN ? AND ?",
			model.IncomeVerified, false, from.Format(dateLayout), to.Format(dateLayout)).
		Group("donor_name").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query top donors: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) IncomeTotal(ctx context.Context, status string, from, to time.Time) (decimal.Decimal, error) {
	var result struct{ Total decimal.Decimal }
	if err := GetDB(ctx, r.db).Table("income_records").
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ? AND transaction_date BETWEEN ? AND ?", status, from.Format(dateLayout), to.Format(dateLayout)).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum income: %w", err)
	}
	return result.Total, nil
}

func (r *reportRepository) ExpenseTotal(ctx context.Context, statuses []string, from, to time.Time) (decimal.Decimal, error) {
	var result struct{ Total decimal.Decimal }
	if err := GetDB(ctx, r.db).Table("expense_records").
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status IN ? AND expense_date BETWEEN ? AND ?", statuses, from.Format(dateLayout), to.Format(dateLayout)).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return result.Total, nil
}
