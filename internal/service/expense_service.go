package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"churchadmin/internal/export"
	"churchadmin/internal/model"
	"churchadmin/internal/permission"
	"churchadmin/internal/repository"
	"churchadmin/internal/upload"
	"churchadmin/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type ExpenseForm struct {
	CategoryID      string `json:"category_id" form:"category_id"`
	Amount          string `json:"amount" form:"amount"`
	Currency        string `json:"currency" form:"currency"`
	VendorName      string `json:"vendor_name" form:"vendor_name"`
	VendorContact   string `json:"vendor_contact" form:"vendor_contact"`
	VendorPhone     string `json:"vendor_phone" form:"vendor_phone"`
	VendorEmail     string `json:"vendor_email" form:"vendor_email"`
	PaymentMethod   string `json:"payment_method" form:"payment_method"`
	ReferenceNumber string `json:"reference_number" form:"reference_number"`
	Description     string `json:"description" form:"description"`
	ExpenseDate     string `json:"expense_date" form:"expense_date"`
	EventID         string `json:"event_id" form:"event_id"`
	ReceiptNumber   string `json:"receipt_number" form:"receipt_number"`
}

func (f ExpenseForm) values() map[string]string {
	return map[string]string{
		"category_id":      f.CategoryID,
		"amount":           f.Amount,
		"currency":         f.Currency,
		"vendor_name":      f.VendorName,
		"vendor_contact":   f.VendorContact,
		"vendor_phone":     f.VendorPhone,
		"vendor_email":     f.VendorEmail,
		"payment_method":   f.PaymentMethod,
		"reference_number": f.ReferenceNumber,
		"description":      f.Description,
		"expense_date":     f.ExpenseDate,
		"event_id":         f.EventID,
		"receipt_number":   f.ReceiptNumber,
	}
}

var expenseRules = map[string][]string{
	"category_id":      {validation.Required, validation.UUID},
	"amount":           {validation.Required, validation.Numeric},
	"currency":         {"max:10"},
	"vendor_name":      {"max:150"},
	"vendor_contact":   {"max:150"},
	"vendor_phone":     {validation.Phone},
	"vendor_email":     {validation.Email, "max:150"},
	"payment_method":   {validation.Required, validation.OneOf(model.PaymentMethods)},
	"reference_number": {"max:100"},
	"description":      {validation.Required, "min:5", "max:1000"},
	"expense_date":     {validation.Required, validation.Date},
	"event_id":         {validation.UUID},
	"receipt_number":   {"max:50"},
}

type RejectExpenseRequest struct {
	Reason string `json:"reason"`
}

// PaymentDetails describes a payout; PaymentDate defaults to today
type PaymentDetails struct {
	PaymentDate string `json:"payment_date"`
	Reference   string `json:"payment_reference"`
	Notes       string `json:"payment_notes"`
}

type BulkRequest struct {
	IDs []string `json:"ids"`
}

type BulkPayRequest struct {
	IDs []string `json:"ids"`
	PaymentDetails
}

// BulkResult reports how many records moved and why the others did not
type BulkResult struct {
	Processed int               `json:"processed"`
	Failed    map[string]string `json:"failed"`
}

type ExpenseFilter struct {
	Status        string
	CategoryID    string
	PaymentMethod string
	DateFrom      string
	DateTo        string
	Search        string
	Page          int
	Limit         int
}

type ExpenseResponse struct {
	ID               string  `json:"id"`
	TransactionID    string  `json:"transaction_id"`
	CategoryID       string  `json:"category_id"`
	CategoryName     string  `json:"category_name"`
	Amount           string  `json:"amount"`
	Currency         string  `json:"currency"`
	VendorName       string  `json:"vendor_name"`
	VendorContact    string  `json:"vendor_contact"`
	VendorPhone      string  `json:"vendor_phone"`
	VendorEmail      string  `json:"vendor_email"`
	PaymentMethod    string  `json:"payment_method"`
	ReferenceNumber  string  `json:"reference_number"`
	Description      string  `json:"description"`
	ExpenseDate      string  `json:"expense_date"`
	EventID          *string `json:"event_id"`
	ReceiptNumber    string  `json:"receipt_number"`
	ReceiptPath      string  `json:"receipt_path"`
	RequestedBy      string  `json:"requested_by"`
	Status           string  `json:"status"`
	ApprovedBy       *string `json:"approved_by"`
	ApprovalDate     *string `json:"approval_date"`
	RejectionReason  string  `json:"rejection_reason"`
	PaidBy           *string `json:"paid_by"`
	PaymentDate      *string `json:"payment_date"`
	PaymentReference string  `json:"payment_reference"`
	PaymentNotes     string  `json:"payment_notes"`
	CreatedAt        string  `json:"created_at"`

	record model.ExpenseRecord
}

// ReceiptStore is the file-upload collaborator used for receipts
type ReceiptStore interface {
	Upload(ctx context.Context, fh *multipart.FileHeader, dir string, allowed []string, maxSize int64) (upload.Result, error)
	Remove(ctx context.Context, key string) error
}

// --- Interface ---

type ExpenseService interface {
	Submit(ctx context.Context, user model.ActingUser, form ExpenseForm, receipt *multipart.FileHeader) (ExpenseResponse, error)
	Approve(ctx context.Context, user model.ActingUser, id string) (ExpenseResponse, error)
	Reject(ctx context.Context, user model.ActingUser, id string, req RejectExpenseRequest) (ExpenseResponse, error)
	MarkPaid(ctx context.Context, user model.ActingUser, id string, details PaymentDetails) (ExpenseResponse, error)
	BulkApprove(ctx context.Context, user model.ActingUser, ids []string) (BulkResult, error)
	BulkMarkPaid(ctx context.Context, user model.ActingUser, ids []string, details PaymentDetails) (BulkResult, error)
	Update(ctx context.Context, user model.ActingUser, id string, form ExpenseForm, receipt *multipart.FileHeader) (ExpenseResponse, error)
	Delete(ctx context.Context, user model.ActingUser, id string) error
	Get(ctx context.Context, user model.ActingUser, id string) (ExpenseResponse, error)
	List(ctx context.Context, user model.ActingUser, filter ExpenseFilter) ([]ExpenseResponse, int64, error)
	ListAll(ctx context.Context, user model.ActingUser, filter ExpenseFilter) ([]ExpenseResponse, error)
}

type expenseService struct {
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.CategoryRepository
	activityRepo repository.ActivityRepository
	txids        repository.TransactionIDGenerator
	txManager    repository.TransactionManager
	receipts     ReceiptStore
	settings     Settings
	opts         options
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	categoryRepo repository.CategoryRepository,
	activityRepo repository.ActivityRepository,
	txids repository.TransactionIDGenerator,
	txManager repository.TransactionManager,
	receipts ReceiptStore,
	settings Settings,
	opts ...Option,
) ExpenseService {
	return &expenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		activityRepo: activityRepo,
		txids:        txids,
		txManager:    txManager,
		receipts:     receipts,
		settings:     settings,
		opts:         buildOptions(opts),
	}
}

// spentStatuses count toward a category's monthly budget
var spentStatuses = []string{model.ExpenseApproved, model.ExpensePaid}

type validExpense struct {
	categoryID uuid.UUID
	amount     decimal.Decimal
	date       time.Time
	eventID    *uuid.UUID
	currency   string
	data       map[string]string
}

// --- Implementation ---

func (s *expenseService) today() time.Time {
	return dateOnly(s.opts.now().In(time.Local))
}

func (s *expenseService) check(form ExpenseForm) (validExpense, error) {
	res := validation.Validate(form.values(), expenseRules)
	errs := res.Errors

	v := validExpense{data: res.Data}
	if _, bad := errs["amount"]; !bad {
		var msg string
		if v.amount, msg = parseAmount(res.Data["amount"]); msg != "" {
			errs["amount"] = msg
		}
	}
	if _, bad := errs["expense_date"]; !bad {
		v.date, _ = parseDate(res.Data["expense_date"], time.Local)
		if v.date.After(s.today()) {
			errs["expense_date"] = "Expense date cannot be in the future"
		}
	}
	if _, bad := errs["category_id"]; !bad {
		v.categoryID, _ = uuid.Parse(res.Data["category_id"])
	}
	if _, bad := errs["event_id"]; !bad && res.Data["event_id"] != "" {
		id, _ := uuid.Parse(res.Data["event_id"])
		v.eventID = &id
	}
	v.currency = strings.ToUpper(res.Data["currency"])
	if v.currency == "" {
		v.currency = s.settings.DefaultCurrency
	}

	if len(errs) > 0 {
		return v, &ValidationError{Fields: errs}
	}
	return v, nil
}

// precheck runs the store-backed rules: active category, unique reference
// and the monthly budget. Inside a transaction it sees a consistent view.
func (s *expenseService) precheck(ctx context.Context, v validExpense, exclude *uuid.UUID) (*model.ExpenseCategory, error) {
	category, err := s.categoryRepo.FindExpenseCategory(ctx, v.categoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fieldError("category_id", "Category does not exist")
	}
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, fieldError("category_id", "Category is not active")
	}

	if ref := v.data["reference_number"]; ref != "" {
		exists, err := s.expenseRepo.ReferenceExists(ctx, ref, exclude)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fieldError("reference_number", "Reference number already exists")
		}
	}

	if err := s.checkBudget(ctx, category, v); err != nil {
		return nil, err
	}
	return category, nil
}

// checkBudget refuses an amount that would push the category's approved and
// paid spending for the expense's calendar month past its limit
func (s *expenseService) checkBudget(ctx context.Context, category *model.ExpenseCategory, v validExpense) error {
	if !category.HasBudget() {
		return nil
	}
	from, to := monthBounds(v.date)
	spent, err := s.expenseRepo.SumForCategory(ctx, category.ID, from, to, spentStatuses)
	if err != nil {
		return err
	}
	if spent.Add(v.amount).GreaterThan(category.BudgetLimit) {
		remaining := category.BudgetLimit.Sub(spent)
		return fieldError("amount", fmt.Sprintf("Amount exceeds the monthly budget for %s. Remaining budget: %s",
			category.Name, export.FormatCurrency(v.currency, remaining)))
	}
	return nil
}

// autoApproved decides whether a new expense skips the pending state
func (s *expenseService) autoApproved(user model.ActingUser, category *model.ExpenseCategory, amount decimal.Decimal) bool {
	if permission.TrustedSubmitter(user.Role) {
		return true
	}
	return !category.RequiresApproval && amount.LessThanOrEqual(s.settings.AutoApprovalLimit)
}

// storeReceipt uploads an optional receipt; a rejected file becomes a field error
func (s *expenseService) storeReceipt(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}
	if s.receipts == nil {
		return "", fieldError("receipt", "Receipt uploads are not available")
	}
	res, err := s.receipts.Upload(ctx, fh, s.settings.ReceiptDir, s.settings.ReceiptTypes, s.settings.ReceiptMaxBytes)
	if err != nil {
		log.Printf("receipt upload failed: %v", err)
		return "", fieldError("receipt", "Receipt could not be uploaded")
	}
	if !res.Success {
		return "", fieldError("receipt", res.Error)
	}
	return res.Filename, nil
}

func (s *expenseService) discardReceipt(path string) {
	if path == "" || s.receipts == nil {
		return
	}
	if err := s.receipts.Remove(context.Background(), path); err != nil {
		log.Printf("failed to remove receipt %s: %v", path, err)
	}
}

func applyExpense(rec *model.ExpenseRecord, v validExpense) {
	rec.CategoryID = v.categoryID
	rec.Amount = v.amount
	rec.Currency = v.currency
	rec.VendorName = v.data["vendor_name"]
	rec.VendorContact = v.data["vendor_contact"]
	rec.VendorPhone = v.data["vendor_phone"]
	rec.VendorEmail = v.data["vendor_email"]
	rec.PaymentMethod = v.data["payment_method"]
	rec.ReferenceNumber = optionalString(v.data["reference_number"])
	rec.Description = v.data["description"]
	rec.ExpenseDate = v.date
	rec.EventID = v.eventID
	rec.ReceiptNumber = v.data["receipt_number"]
}

func (s *expenseService) Submit(ctx context.Context, user model.ActingUser, form ExpenseForm, receipt *multipart.FileHeader) (ExpenseResponse, error) {
	if !permission.Allowed(permission.Expense, permission.Create, user.Role) {
		return ExpenseResponse{}, ErrPermissionDenied
	}

	v, err := s.check(form)
	if err != nil {
		return ExpenseResponse{}, err
	}
	if _, err := s.precheck(ctx, v, nil); err != nil {
		return ExpenseResponse{}, boundary("check expense", err)
	}

	receiptPath, err := s.storeReceipt(ctx, receipt)
	if err != nil {
		return ExpenseResponse{}, err
	}

	var rec model.ExpenseRecord
	var category *model.ExpenseCategory
	submit := func(txCtx context.Context) error {
		category, err = s.precheck(txCtx, v, nil)
		if err != nil {
			return err
		}

		rec = model.ExpenseRecord{RequestedBy: user.ID, Status: model.ExpensePending, ReceiptPath: receiptPath}
		applyExpense(&rec, v)
		if s.autoApproved(user, category, rec.Amount) {
			now := s.opts.now()
			rec.Status = model.ExpenseApproved
			rec.ApprovedBy = &user.ID
			rec.ApprovalDate = &now
		}

		txid, err := s.txids.Generate(txCtx, model.ExpensePrefix)
		if err != nil {
			return err
		}
		rec.TransactionID = txid
		if err := s.expenseRepo.Create(txCtx, &rec); err != nil {
			return err
		}
		desc := fmt.Sprintf("Submitted expense %s of %s %s (%s)", rec.TransactionID, rec.Currency, rec.Amount.StringFixed(2), rec.Status)
		return recordActivity(txCtx, s.activityRepo, user, model.ActionSubmitExpense, model.TableExpense, rec.ID.String(), desc, nil, rec)
	}

	err = s.txManager.RunInTx(ctx, submit)
	if errors.Is(err, repository.ErrDuplicateTransactionID) {
		err = s.txManager.RunInTx(ctx, submit)
	}
	if err != nil {
		s.discardReceipt(receiptPath)
		return ExpenseResponse{}, boundary("submit expense", err)
	}

	rec.Category = category
	s.opts.publisher.Publish(model.Event{Type: model.EventExpenseSubmitted, Entity: model.TableExpense, EntityID: rec.ID.String(), Status: rec.Status})
	return toExpenseResponse(rec), nil
}

// transition locks the record, checks it is in from, lets mutate change it
// and writes it back with an activity entry
func (s *expenseService) transition(ctx context.Context, user model.ActingUser, id, action, from, activity string,
	mutate func(rec *model.ExpenseRecord) error) (*model.ExpenseRecord, error) {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var rec *model.ExpenseRecord
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err = s.expenseRepo.LockByID(txCtx, expenseID)
		if err != nil {
			return err
		}
		if rec.Status != from {
			return &TransitionError{Entity: "expense", From: rec.Status, Action: action}
		}
		if err := mutate(rec); err != nil {
			return err
		}
		if err := s.expenseRepo.Update(txCtx, rec); err != nil {
			return err
		}
		desc := fmt.Sprintf("Expense %s %s -> %s", rec.TransactionID, from, rec.Status)
		return recordActivity(txCtx, s.activityRepo, user, activity, model.TableExpense, rec.ID.String(), desc,
			map[string]string{"status": from}, map[string]string{"status": rec.Status})
	})
	if err != nil {
		return nil, boundary(action+" expense", err)
	}
	return rec, nil
}

func (s *expenseService) Approve(ctx context.Context, user model.ActingUser, id string) (ExpenseResponse, error) {
	if !permission.Allowed(permission.Expense, permission.Approve, user.Role) {
		return ExpenseResponse{}, ErrPermissionDenied
	}
	rec, err := s.transition(ctx, user, id, permission.Approve, model.ExpensePending, model.ActionApproveExpense,
		func(rec *model.ExpenseRecord) error {
			now := s.opts.now()
			rec.Status = model.ExpenseApproved
			rec.ApprovedBy = &user.ID
			rec.ApprovalDate = &now
			return nil
		})
	if err != nil {
		return ExpenseResponse{}, err
	}
	s.opts.publisher.Publish(model.Event{Type: model.EventExpenseApproved, Entity: model.TableExpense, EntityID: rec.ID.String(), Status: rec.Status})
	return s.reload(ctx, *rec), nil
}

func (s *expenseService) Reject(ctx context.Context, user model.ActingUser, id string, req RejectExpenseRequest) (ExpenseResponse, error) {
	if !permission.Allowed(permission.Expense, permission.Reject, user.Role) {
		return ExpenseResponse{}, ErrPermissionDenied
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ExpenseResponse{}, fieldError("reason", "Rejection reason is required")
	}
	rec, err := s.transition(ctx, user, id, permission.Reject, model.ExpensePending, model.ActionRejectExpense,
		func(rec *model.ExpenseRecord) error {
			now := s.opts.now()
			rec.Status = model.ExpenseRejected
			rec.ApprovedBy = &user.ID
			rec.ApprovalDate = &now
			rec.RejectionReason = reason
			return nil
		})
	if err != nil {
		return ExpenseResponse{}, err
	}
	s.opts.publisher.Publish(model.Event{Type: model.EventExpenseRejected, Entity: model.TableExpense, EntityID: rec.ID.String(), Status: rec.Status})
	return s.reload(ctx, *rec), nil
}

// paymentDate parses an optional YYYY-MM-DD, defaulting to today
func (s *expenseService) paymentDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.today(), nil
	}
	d, err := parseDate(raw, time.Local)
	if err != nil {
		return time.Time{}, fieldError("payment_date", "Payment date must be a valid date (YYYY-MM-DD)")
	}
	if d.After(s.today()) {
		return time.Time{}, fieldError("payment_date", "Payment date cannot be in the future")
	}
	return d, nil
}

func (s *expenseService) MarkPaid(ctx context.Context, user model.ActingUser, id string, details PaymentDetails) (ExpenseResponse, error) {
	if !permission.Allowed(permission.Expense, permission.Pay, user.Role) {
		return ExpenseResponse{}, ErrPermissionDenied
	}
	paidOn, err := s.paymentDate(details.PaymentDate)
	if err != nil {
		return ExpenseResponse{}, err
	}
	rec, err := s.transition(ctx, user, id, permission.Pay, model.ExpenseApproved, model.ActionPayExpense,
		func(rec *model.ExpenseRecord) error {
			if paidOn.Before(dateOnly(rec.ExpenseDate)) {
				return fieldError("payment_date", "Payment date cannot be before the expense date")
			}
			rec.Status = model.ExpensePaid
			rec.PaidBy = &user.ID
			rec.PaymentDate = &paidOn
			rec.PaymentReference = strings.TrimSpace(details.Reference)
			rec.PaymentNotes = strings.TrimSpace(details.Notes)
			return nil
		})
	if err != nil {
		return ExpenseResponse{}, err
	}
	s.opts.publisher.Publish(model.Event{Type: model.EventExpensePaid, Entity: model.TableExpense, EntityID: rec.ID.String(), Status: rec.Status})
	return s.reload(ctx, *rec), nil
}

// bulk applies op to every distinct id. Each record commits on its own, so
// a failure never undoes earlier successes.
func bulk(ids []string, op func(id string) error) (BulkResult, error) {
	res := BulkResult{Failed: map[string]string{}}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if err := op(id); err != nil {
			res.Failed[id] = err.Error()
			continue
		}
		res.Processed++
	}
	if len(seen) == 0 {
		return res, fieldError("ids", "Select at least one expense")
	}
	return res, nil
}

func (s *expenseService) BulkApprove(ctx context.Context, user model.ActingUser, ids []string) (BulkResult, error) {
	if !permission.Allowed(permission.Expense, permission.Approve, user.Role) {
		return BulkResult{}, ErrPermissionDenied
	}
	return bulk(ids, func(id string) error {
		_, err := s.Approve(ctx, user, id)
		return err
	})
}

func (s *expenseService) BulkMarkPaid(ctx context.Context, user model.ActingUser, ids []string, details PaymentDetails) (BulkResult, error) {
	if !permission.Allowed(permission.Expense, permission.Pay, user.Role) {
		return BulkResult{}, ErrPermissionDenied
	}
	if _, err := s.paymentDate(details.PaymentDate); err != nil {
		return BulkResult{}, err
	}
	return bulk(ids, func(id string) error {
		_, err := s.MarkPaid(ctx, user, id, details)
		return err
	})
}

// Update edits a pending expense; only its requester or an administrator may
func (s *expenseService) Update(ctx context.Context, user model.ActingUser, id string, form ExpenseForm, receipt *multipart.FileHeader) (ExpenseResponse, error) {
	if !permission.Allowed(permission.Expense, permission.Update, user.Role) {
		return ExpenseResponse{}, ErrPermissionDenied
	}
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return ExpenseResponse{}, ErrNotFound
	}

	current, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return ExpenseResponse{}, boundary("load expense", err)
	}
	if !user.IsAdministrator() && current.RequestedBy != user.ID {
		return ExpenseResponse{}, ErrPermissionDenied
	}
	if current.Status != model.ExpensePending {
		return ExpenseResponse{}, &TransitionError{Entity: "expense", From: current.Status, Action: permission.Update}
	}

	v, err := s.check(form)
	if err != nil {
		return ExpenseResponse{}, err
	}
	if _, err := s.precheck(ctx, v, &expenseID); err != nil {
		return ExpenseResponse{}, boundary("check expense", err)
	}
	newReceipt, err := s.storeReceipt(ctx, receipt)
	if err != nil {
		return ExpenseResponse{}, err
	}

	var rec *model.ExpenseRecord
	var oldReceipt string
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err = s.expenseRepo.LockByID(txCtx, expenseID)
		if err != nil {
			return err
		}
		if rec.Status != model.ExpensePending {
			return &TransitionError{Entity: "expense", From: rec.Status, Action: permission.Update}
		}
		if _, err := s.precheck(txCtx, v, &expenseID); err != nil {
			return err
		}
		old := *rec
		applyExpense(rec, v)
		if newReceipt != "" {
			oldReceipt = rec.ReceiptPath
			rec.ReceiptPath = newReceipt
		}
		if err := s.expenseRepo.Update(txCtx, rec); err != nil {
			return err
		}
		desc := fmt.Sprintf("Updated expense %s", rec.TransactionID)
		return recordActivity(txCtx, s.activityRepo, user, model.ActionUpdateExpense, model.TableExpense, rec.ID.String(), desc, old, rec)
	})
	if err != nil {
		s.discardReceipt(newReceipt)
		return ExpenseResponse{}, boundary("update expense", err)
	}
	s.discardReceipt(oldReceipt)

	s.opts.publisher.Publish(model.Event{Type: model.EventExpenseUpdated, Entity: model.TableExpense, EntityID: rec.ID.String(), Status: rec.Status})
	return s.reload(ctx, *rec), nil
}

// Delete removes a pending expense; administrators only
func (s *expenseService) Delete(ctx context.Context, user model.ActingUser, id string) error {
	if !permission.Allowed(permission.Expense, permission.Delete, user.Role) {
		return ErrPermissionDenied
	}
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	var receipt string
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.expenseRepo.LockByID(txCtx, expenseID)
		if err != nil {
			return err
		}
		if rec.Status != model.ExpensePending {
			return &TransitionError{Entity: "expense", From: rec.Status, Action: permission.Delete}
		}
		receipt = rec.ReceiptPath
		if err := s.expenseRepo.Delete(txCtx, rec.ID); err != nil {
			return err
		}
		desc := fmt.Sprintf("Deleted expense %s", rec.TransactionID)
		return recordActivity(txCtx, s.activityRepo, user, model.ActionDeleteExpense, model.TableExpense, rec.ID.String(), desc, rec, nil)
	})
	if err != nil {
		return boundary("delete expense", err)
	}
	s.discardReceipt(receipt)

	s.opts.publisher.Publish(model.Event{Type: model.EventExpenseDeleted, Entity: model.TableExpense, EntityID: expenseID.String()})
	return nil
}

func (s *expenseService) Get(ctx context.Context, user model.ActingUser, id string) (ExpenseResponse, error) {
	if !permission.Allowed(permission.Expense, permission.View, user.Role) {
		return ExpenseResponse{}, ErrPermissionDenied
	}
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return ExpenseResponse{}, ErrNotFound
	}
	rec, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return ExpenseResponse{}, boundary("get expense", err)
	}
	return toExpenseResponse(*rec), nil
}

func (s *expenseService) List(ctx context.Context, user model.ActingUser, filter ExpenseFilter) ([]ExpenseResponse, int64, error) {
	if !permission.Allowed(permission.Expense, permission.View, user.Role) {
		return nil, 0, ErrPermissionDenied
	}
	rf, err := buildRecordFilter(filter.Status, filter.CategoryID, filter.PaymentMethod, filter.DateFrom, filter.DateTo, filter.Search, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, boundary("list expenses", err)
	}
	if rf.Limit <= 0 {
		rf.Limit = 20
	}
	expenses, total, err := s.expenseRepo.List(ctx, rf)
	if err != nil {
		return nil, 0, boundary("list expenses", err)
	}
	res := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		res = append(res, toExpenseResponse(e))
	}
	return res, total, nil
}

func (s *expenseService) ListAll(ctx context.Context, user model.ActingUser, filter ExpenseFilter) ([]ExpenseResponse, error) {
	filter.Page, filter.Limit = 1, maxExportRows
	res, _, err := s.List(ctx, user, filter)
	return res, err
}

func (s *expenseService) reload(ctx context.Context, rec model.ExpenseRecord) ExpenseResponse {
	if fresh, err := s.expenseRepo.FindByID(ctx, rec.ID); err == nil {
		return toExpenseResponse(*fresh)
	}
	return toExpenseResponse(rec)
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toExpenseResponse(e model.ExpenseRecord) ExpenseResponse {
	res := ExpenseResponse{
		ID:               e.ID.String(),
		TransactionID:    e.TransactionID,
		CategoryID:       e.CategoryID.String(),
		Amount:           e.Amount.StringFixed(2),
		Currency:         e.Currency,
		VendorName:       e.VendorName,
		VendorContact:    e.VendorContact,
		VendorPhone:      e.VendorPhone,
		VendorEmail:      e.VendorEmail,
		PaymentMethod:    e.PaymentMethod,
		ReferenceNumber:  derefString(e.ReferenceNumber),
		Description:      e.Description,
		ExpenseDate:      e.ExpenseDate.Format(validation.DateLayout),
		EventID:          uuidString(e.EventID),
		ReceiptNumber:    e.ReceiptNumber,
		ReceiptPath:      e.ReceiptPath,
		RequestedBy:      e.RequestedBy.String(),
		Status:           e.Status,
		ApprovedBy:       uuidString(e.ApprovedBy),
		ApprovalDate:     formatTimePtr(e.ApprovalDate, time.RFC3339),
		RejectionReason:  e.RejectionReason,
		PaidBy:           uuidString(e.PaidBy),
		PaymentDate:      formatTimePtr(e.PaymentDate, validation.DateLayout),
		PaymentReference: e.PaymentReference,
		PaymentNotes:     e.PaymentNotes,
		CreatedAt:        e.CreatedAt.Format("2006-01-02 15:04:05"),
		record:           e,
	}
	if e.Category != nil {
		res.CategoryName = e.Category.Name
	}
	return res
}
