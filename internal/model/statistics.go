package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryTotal is one row of a category breakdown
type CategoryTotal struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

// MonthlyAmount is a per-month sum as returned by the store; Period is "YYYY-MM"
type MonthlyAmount struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

// TrendPoint is one month of the income vs expense series
type TrendPoint struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// DonorRanking represents a donor ranked by summed verified giving
type DonorRanking struct {
	DonorName string          `json:"donor_name"`
	Total     decimal.Decimal `json:"total"`
	Count     int64           `json:"count"`
}

// BudgetUsage reports month-to-date spending against a category ceiling
type BudgetUsage struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	BudgetLimit  decimal.Decimal `json:"budget_limit"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
}

// DashboardSummary aggregates the current month's figures
type DashboardSummary struct {
	PeriodStart          time.Time       `json:"period_start"`
	PeriodEnd            time.Time       `json:"period_end"`
	IncomeVerified       decimal.Decimal `json:"income_verified"`
	ExpensePaid          decimal.Decimal `json:"expense_paid"`
	Net                  decimal.Decimal `json:"net"`
	PendingIncomeCount   int64           `json:"pending_income_count"`
	PendingExpenseCount  int64           `json:"pending_expense_count"`
	ApprovedUnpaidCount  int64           `json:"approved_unpaid_count"`
	ApprovedUnpaidAmount decimal.Decimal `json:"approved_unpaid_amount"`
	Budgets              []BudgetUsage   `json:"budgets"`
}
