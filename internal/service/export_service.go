package service

import (
	"context"
	"io"

	"churchadmin/internal/export"
	"churchadmin/internal/model"
	"churchadmin/internal/permission"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatHTML = "html"
)

type ExportService interface {
	Incomes(ctx context.Context, user model.ActingUser, filter IncomeFilter, format string, w io.Writer) error
	Expenses(ctx context.Context, user model.ActingUser, filter ExpenseFilter, format string, w io.Writer) error
}

type exportService struct {
	incomes  IncomeService
	expenses ExpenseService
	opts     options
}

func NewExportService(incomes IncomeService, expenses ExpenseService, opts ...Option) ExportService {
	return &exportService{incomes: incomes, expenses: expenses, opts: buildOptions(opts)}
}

// CheckFormat validates a requested export format before any output is written
func CheckFormat(format string) error {
	if format != FormatCSV && format != FormatHTML {
		return fieldError("format", "Format must be csv or html")
	}
	return nil
}

func write(w io.Writer, format string, t export.Table) error {
	if format == FormatHTML {
		return export.WriteHTML(w, t)
	}
	return export.WriteCSV(w, t)
}

var incomeColumns = []export.Column{
	{Title: "Transaction ID", Kind: export.Text},
	{Title: "Date", Kind: export.Date},
	{Title: "Category", Kind: export.Text},
	{Title: "Donor", Kind: export.Text},
	{Title: "Payment Method", Kind: export.Text},
	{Title: "Reference", Kind: export.Text},
	{Title: "Description", Kind: export.Text},
	{Title: "Status", Kind: export.Text},
	{Title: "Currency", Kind: export.Currency},
	{Title: "Amount", Kind: export.Money},
}

func (s *exportService) Incomes(ctx context.Context, user model.ActingUser, filter IncomeFilter, format string, w io.Writer) error {
	if !permission.Allowed(permission.Report, permission.Export, user.Role) {
		return ErrPermissionDenied
	}
	if err := CheckFormat(format); err != nil {
		return err
	}
	records, err := s.incomes.ListAll(ctx, user, filter)
	if err != nil {
		return err
	}

	t := export.Table{Title: "Income Records", Columns: incomeColumns, GeneratedAt: s.opts.now()}
	for _, r := range records {
		rec := r.record
		donor := rec.DonorName
		if rec.IsAnonymous {
			donor = "Anonymous"
		}
		t.Rows = append(t.Rows, []interface{}{
			rec.TransactionID, rec.TransactionDate, r.CategoryName, donor, rec.PaymentMethod,
			rec.ReferenceNumber, rec.Description, rec.Status, rec.Currency, rec.Amount,
		})
	}
	return write(w, format, t)
}

var expenseColumns = []export.Column{
	{Title: "Transaction ID", Kind: export.Text},
	{Title: "Date", Kind: export.Date},
	{Title: "Category", Kind: export.Text},
	{Title: "Vendor", Kind: export.Text},
	{Title: "Payment Method", Kind: export.Text},
	{Title: "Reference", Kind: export.Text},
	{Title: "Description", Kind: export.Text},
	{Title: "Status", Kind: export.Text},
	{Title: "Paid On", Kind: export.Date},
	{Title: "Currency", Kind: export.Currency},
	{Title: "Amount", Kind: export.Money},
}

func (s *exportService) Expenses(ctx context.Context, user model.ActingUser, filter ExpenseFilter, format string, w io.Writer) error {
	if !permission.Allowed(permission.Report, permission.Export, user.Role) {
		return ErrPermissionDenied
	}
	if err := CheckFormat(format); err != nil {
		return err
	}
	records, err := s.expenses.ListAll(ctx, user, filter)
	if err != nil {
		return err
	}

	t := export.Table{Title: "Expense Records", Columns: expenseColumns, GeneratedAt: s.opts.now()}
	for _, r := range records {
		rec := r.record
		t.Rows = append(t.Rows, []interface{}{
			rec.TransactionID, rec.ExpenseDate, r.CategoryName, rec.VendorName, rec.PaymentMethod,
			rec.ReferenceNumber, rec.Description, rec.Status, rec.PaymentDate, rec.Currency, rec.Amount,
		})
	}
	return write(w, format, t)
}
