package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"sync"
	"time"

	"churchadmin/internal/model"
	"churchadmin/internal/repository"
	"churchadmin/internal/upload"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fixed clock used by every workflow test: Saturday 17 October 2026, 10:00
var testNow = time.Date(2026, 10, 17, 10, 0, 0, 0, time.Local)

func clock() time.Time { return testNow }

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return d
}

func actor(role string) model.ActingUser {
	return model.ActingUser{ID: uuid.New(), Role: role}
}

// --- transaction manager ---

type fakeTx struct{ calls int }

func (f *fakeTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// --- transaction ids ---

type fakeTxids struct {
	mu  sync.Mutex
	seq map[string]int
}

func newFakeTxids() *fakeTxids { return &fakeTxids{seq: map[string]int{}} }

func (f *fakeTxids) Generate(_ context.Context, prefix string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq[prefix]++
	return repository.FormatTransactionID(prefix, testNow, int64(f.seq[prefix])), nil
}

// --- activity ---

type fakeActivity struct {
	entries []model.ActivityLog
}

func (f *fakeActivity) Log(_ context.Context, entry *model.ActivityLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivity) List(_ context.Context, filter repository.ActivityFilter) ([]model.ActivityLog, int64, error) {
	var out []model.ActivityLog
	for _, e := range f.entries {
		if filter.EntityTable != "" && e.EntityTable != filter.EntityTable {
			continue
		}
		if filter.EntityID != "" && e.EntityID != filter.EntityID {
			continue
		}
		if filter.UserID != nil && (e.UserID == nil || *e.UserID != *filter.UserID) {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeActivity) actions() []string {
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

// --- publisher ---

type fakePublisher struct {
	events []model.Event
}

func (f *fakePublisher) Publish(e model.Event) { f.events = append(f.events, e) }

func (f *fakePublisher) types() []string {
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

// --- categories ---

type fakeCategories struct {
	expense map[uuid.UUID]model.ExpenseCategory
	income  map[uuid.UUID]model.IncomeCategory
	// createErr is returned by the next Create call
	createErr error
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{expense: map[uuid.UUID]model.ExpenseCategory{}, income: map[uuid.UUID]model.IncomeCategory{}}
}

func (f *fakeCategories) addExpense(name string, budget int64, requiresApproval bool) model.ExpenseCategory {
	c := model.ExpenseCategory{ID: uuid.New(), Name: name, BudgetLimit: decimal.NewFromInt(budget), RequiresApproval: requiresApproval, IsActive: true}
	f.expense[c.ID] = c
	return c
}

func (f *fakeCategories) addIncome(name string) model.IncomeCategory {
	c := model.IncomeCategory{ID: uuid.New(), Name: name, IsActive: true}
	f.income[c.ID] = c
	return c
}

func (f *fakeCategories) ListExpenseCategories(_ context.Context, activeOnly bool) ([]model.ExpenseCategory, error) {
	var out []model.ExpenseCategory
	for _, c := range f.expense {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategories) FindExpenseCategory(_ context.Context, id uuid.UUID) (*model.ExpenseCategory, error) {
	c, ok := f.expense[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCategories) CreateExpenseCategory(_ context.Context, c *model.ExpenseCategory) error {
	if err := f.createErr; err != nil {
		f.createErr = nil
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.expense[c.ID] = *c
	return nil
}

func (f *fakeCategories) UpdateExpenseCategory(_ context.Context, c *model.ExpenseCategory) error {
	f.expense[c.ID] = *c
	return nil
}

func (f *fakeCategories) DeleteExpenseCategory(_ context.Context, id uuid.UUID) error {
	if _, ok := f.expense[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.expense, id)
	return nil
}

func (f *fakeCategories) ListIncomeCategories(_ context.Context, activeOnly bool) ([]model.IncomeCategory, error) {
	var out []model.IncomeCategory
	for _, c := range f.income {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategories) FindIncomeCategory(_ context.Context, id uuid.UUID) (*model.IncomeCategory, error) {
	c, ok := f.income[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCategories) CreateIncomeCategory(_ context.Context, c *model.IncomeCategory) error {
	if err := f.createErr; err != nil {
		f.createErr = nil
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.income[c.ID] = *c
	return nil
}

func (f *fakeCategories) UpdateIncomeCategory(_ context.Context, c *model.IncomeCategory) error {
	f.income[c.ID] = *c
	return nil
}

func (f *fakeCategories) DeleteIncomeCategory(_ context.Context, id uuid.UUID) error {
	if _, ok := f.income[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.income, id)
	return nil
}

// --- income records ---

type fakeIncomes struct {
	records map[uuid.UUID]model.IncomeRecord
	// createErrs are returned by successive Create calls before any insert succeeds
	createErrs []error
	listErr    error
}

func newFakeIncomes() *fakeIncomes {
	return &fakeIncomes{records: map[uuid.UUID]model.IncomeRecord{}}
}

func (f *fakeIncomes) add(r model.IncomeRecord) model.IncomeRecord {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.records[r.ID] = r
	return r
}

func (f *fakeIncomes) Create(_ context.Context, r *model.IncomeRecord) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return err
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = testNow
	f.records[r.ID] = *r
	return nil
}

func (f *fakeIncomes) Update(_ context.Context, r *model.IncomeRecord) error {
	f.records[r.ID] = *r
	return nil
}

func (f *fakeIncomes) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeIncomes) FindByID(_ context.Context, id uuid.UUID) (*model.IncomeRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (f *fakeIncomes) LockByID(ctx context.Context, id uuid.UUID) (*model.IncomeRecord, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeIncomes) ReferenceExists(_ context.Context, ref string, exclude *uuid.UUID) (bool, error) {
	for _, r := range f.records {
		if r.ReferenceNumber != nil && *r.ReferenceNumber == ref && (exclude == nil || *exclude != r.ID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeIncomes) List(_ context.Context, filter repository.RecordFilter) ([]model.IncomeRecord, int64, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []model.IncomeRecord
	for _, r := range f.records {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID < out[j].TransactionID })
	return out, int64(len(out)), nil
}

func (f *fakeIncomes) CountByCategory(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.CategoryID == id {
			n++
		}
	}
	return n, nil
}

func (f *fakeIncomes) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

// --- expense records ---

type fakeExpenses struct {
	records    map[uuid.UUID]model.ExpenseRecord
	createErrs []error
}

func newFakeExpenses() *fakeExpenses {
	return &fakeExpenses{records: map[uuid.UUID]model.ExpenseRecord{}}
}

func (f *fakeExpenses) add(e model.ExpenseRecord) model.ExpenseRecord {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.TransactionID == "" {
		e.TransactionID = fmt.Sprintf("EXP-SEED-%05d", len(f.records)+1)
	}
	f.records[e.ID] = e
	return e
}

func (f *fakeExpenses) Create(_ context.Context, e *model.ExpenseRecord) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = testNow
	f.records[e.ID] = *e
	return nil
}

func (f *fakeExpenses) Update(_ context.Context, e *model.ExpenseRecord) error {
	f.records[e.ID] = *e
	return nil
}

func (f *fakeExpenses) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeExpenses) FindByID(_ context.Context, id uuid.UUID) (*model.ExpenseRecord, error) {
	e, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (f *fakeExpenses) LockByID(ctx context.Context, id uuid.UUID) (*model.ExpenseRecord, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeExpenses) ReferenceExists(_ context.Context, ref string, exclude *uuid.UUID) (bool, error) {
	for _, e := range f.records {
		if e.ReferenceNumber != nil && *e.ReferenceNumber == ref && (exclude == nil || *exclude != e.ID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeExpenses) List(_ context.Context, filter repository.RecordFilter) ([]model.ExpenseRecord, int64, error) {
	var out []model.ExpenseRecord
	for _, e := range f.records {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID < out[j].TransactionID })
	return out, int64(len(out)), nil
}

func (f *fakeExpenses) SumForCategory(_ context.Context, categoryID uuid.UUID, from, to time.Time, statuses []string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range f.records {
		if e.CategoryID != categoryID || e.ExpenseDate.Before(from) || !e.ExpenseDate.Before(to) {
			continue
		}
		for _, s := range statuses {
			if e.Status == s {
				sum = sum.Add(e.Amount)
			}
		}
	}
	return sum, nil
}

func (f *fakeExpenses) SumByStatus(_ context.Context, status string) (decimal.Decimal, int64, error) {
	sum := decimal.Zero
	var n int64
	for _, e := range f.records {
		if e.Status == status {
			sum = sum.Add(e.Amount)
			n++
		}
	}
	return sum, n, nil
}

func (f *fakeExpenses) CountByCategory(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, e := range f.records {
		if e.CategoryID == id {
			n++
		}
	}
	return n, nil
}

func (f *fakeExpenses) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, e := range f.records {
		if e.Status == status {
			n++
		}
	}
	return n, nil
}

// --- receipts ---

type fakeReceipts struct {
	result  upload.Result
	removed []string
}

func (f *fakeReceipts) Upload(_ context.Context, _ *multipart.FileHeader, dir string, _ []string, _ int64) (upload.Result, error) {
	return f.result, nil
}

func (f *fakeReceipts) Remove(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}
