package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"churchadmin/internal/model"
	"churchadmin/internal/permission"
	"churchadmin/internal/repository"
	"churchadmin/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// IncomeForm is the raw submission; values are validated before any use
type IncomeForm struct {
	CategoryID      string `json:"category_id" form:"category_id"`
	Amount          string `json:"amount" form:"amount"`
	Currency        string `json:"currency" form:"currency"`
	DonorName       string `json:"donor_name" form:"donor_name"`
	DonorPhone      string `json:"donor_phone" form:"donor_phone"`
	DonorEmail      string `json:"donor_email" form:"donor_email"`
	PaymentMethod   string `json:"payment_method" form:"payment_method"`
	ReferenceNumber string `json:"reference_number" form:"reference_number"`
	Description     string `json:"description" form:"description"`
	TransactionDate string `json:"transaction_date" form:"transaction_date"`
	EventID         string `json:"event_id" form:"event_id"`
	ReceiptNumber   string `json:"receipt_number" form:"receipt_number"`
	IsAnonymous     bool   `json:"is_anonymous" form:"is_anonymous"`
	IsPledge        bool   `json:"is_pledge" form:"is_pledge"`
	PledgePeriod    string `json:"pledge_period" form:"pledge_period"`
}

func (f IncomeForm) values() map[string]string {
	return map[string]string{
		"category_id":      f.CategoryID,
		"amount":           f.Amount,
		"currency":         f.Currency,
		"donor_name":       f.DonorName,
		"donor_phone":      f.DonorPhone,
		"donor_email":      f.DonorEmail,
		"payment_method":   f.PaymentMethod,
		"reference_number": f.ReferenceNumber,
		"description":      f.Description,
		"transaction_date": f.TransactionDate,
		"event_id":         f.EventID,
		"receipt_number":   f.ReceiptNumber,
		"pledge_period":    f.PledgePeriod,
	}
}

var incomeRules = map[string][]string{
	"category_id":      {validation.Required, validation.UUID},
	"amount":           {validation.Required, validation.Numeric},
	"currency":         {"max:10"},
	"donor_name":       {"max:150"},
	"donor_phone":      {validation.Phone},
	"donor_email":      {validation.Email, "max:150"},
	"payment_method":   {validation.Required, validation.OneOf(model.PaymentMethods)},
	"reference_number": {"max:100"},
	"description":      {validation.Required, "min:5", "max:1000"},
	"transaction_date": {validation.Required, validation.Date},
	"event_id":         {validation.UUID},
	"receipt_number":   {"max:50"},
	"pledge_period":    {validation.OneOf(model.PledgePeriods)},
}

// DecisionRequest carries the verifier's optional note
type DecisionRequest struct {
	Note string `json:"note"`
}

type IncomeFilter struct {
	Status        string
	CategoryID    string
	PaymentMethod string
	DateFrom      string
	DateTo        string
	Search        string
	Page          int
	Limit         int
}

type IncomeResponse struct {
	ID               string  `json:"id"`
	TransactionID    string  `json:"transaction_id"`
	CategoryID       string  `json:"category_id"`
	CategoryName     string  `json:"category_name"`
	Amount           string  `json:"amount"`
	Currency         string  `json:"currency"`
	DonorName        string  `json:"donor_name"`
	DonorPhone       string  `json:"donor_phone"`
	DonorEmail       string  `json:"donor_email"`
	PaymentMethod    string  `json:"payment_method"`
	ReferenceNumber  string  `json:"reference_number"`
	Description      string  `json:"description"`
	TransactionDate  string  `json:"transaction_date"`
	EventID          *string `json:"event_id"`
	ReceiptNumber    string  `json:"receipt_number"`
	IsAnonymous      bool    `json:"is_anonymous"`
	IsPledge         bool    `json:"is_pledge"`
	PledgePeriod     string  `json:"pledge_period"`
	RecordedBy       string  `json:"recorded_by"`
	Status           string  `json:"status"`
	VerifiedBy       *string `json:"verified_by"`
	VerificationDate *string `json:"verification_date"`
	DecisionNote     string  `json:"decision_note"`
	CreatedAt        string  `json:"created_at"`

	// kept for export; not serialised
	record model.IncomeRecord
}

// --- Interface ---

type IncomeService interface {
	Submit(ctx context.Context, user model.ActingUser, form IncomeForm) (IncomeResponse, error)
	Decide(ctx context.Context, user model.ActingUser, id string, decision string, req DecisionRequest) (IncomeResponse, error)
	Update(ctx context.Context, user model.ActingUser, id string, form IncomeForm) (IncomeResponse, error)
	Delete(ctx context.Context, user model.ActingUser, id string) error
	Get(ctx context.Context, user model.ActingUser, id string) (IncomeResponse, error)
	List(ctx context.Context, user model.ActingUser, filter IncomeFilter) ([]IncomeResponse, int64, error)
	ListAll(ctx context.Context, user model.ActingUser, filter IncomeFilter) ([]IncomeResponse, error)
}

type incomeService struct {
	incomeRepo   repository.IncomeRepository
	categoryRepo repository.CategoryRepository
	activityRepo repository.ActivityRepository
	txids        repository.TransactionIDGenerator
	txManager    repository.TransactionManager
	settings     Settings
	opts         options
}

func NewIncomeService(
	incomeRepo repository.IncomeRepository,
	categoryRepo repository.CategoryRepository,
	activityRepo repository.ActivityRepository,
	txids repository.TransactionIDGenerator,
	txManager repository.TransactionManager,
	settings Settings,
	opts ...Option,
) IncomeService {
	return &incomeService{
		incomeRepo:   incomeRepo,
		categoryRepo: categoryRepo,
		activityRepo: activityRepo,
		txids:        txids,
		txManager:    txManager,
		settings:     settings,
		opts:         buildOptions(opts),
	}
}

// maxExportRows caps ListAll
const maxExportRows = 10000

// validIncome is an IncomeForm after validation
type validIncome struct {
	categoryID uuid.UUID
	amount     decimal.Decimal
	date       time.Time
	eventID    *uuid.UUID
	data       map[string]string
	anonymous  bool
	pledge     bool
}

// --- Implementation ---

// check runs field rules and the business rules that need no store access
func (s *incomeService) check(form IncomeForm) (validIncome, error) {
	res := validation.Validate(form.values(), incomeRules)
	errs := res.Errors

	v := validIncome{data: res.Data, anonymous: form.IsAnonymous, pledge: form.IsPledge}
	if _, bad := errs["amount"]; !bad {
		var msg string
		if v.amount, msg = parseAmount(res.Data["amount"]); msg != "" {
			errs["amount"] = msg
		}
	}
	if _, bad := errs["transaction_date"]; !bad {
		v.date, _ = parseDate(res.Data["transaction_date"], time.Local)
		if v.date.After(dateOnly(s.opts.now().In(time.Local))) {
			errs["transaction_date"] = "Transaction date cannot be in the future"
		}
	}
	if _, bad := errs["category_id"]; !bad {
		v.categoryID, _ = uuid.Parse(res.Data["category_id"])
	}
	if _, bad := errs["event_id"]; !bad && res.Data["event_id"] != "" {
		id, _ := uuid.Parse(res.Data["event_id"])
		v.eventID = &id
	}
	if form.IsPledge && res.Data["pledge_period"] == "" {
		if _, bad := errs["pledge_period"]; !bad {
			errs["pledge_period"] = "Pledge period is required for pledges"
		}
	}

	if len(errs) > 0 {
		return v, &ValidationError{Fields: errs}
	}
	return v, nil
}

// activeCategory rejects unknown or retired categories as a field error
func (s *incomeService) activeCategory(ctx context.Context, id uuid.UUID) (*model.IncomeCategory, error) {
	c, err := s.categoryRepo.FindIncomeCategory(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fieldError("category_id", "Category does not exist")
	}
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, fieldError("category_id", "Category is not active")
	}
	return c, nil
}

func (s *incomeService) uniqueReference(ctx context.Context, ref string, exclude *uuid.UUID) error {
	if ref == "" {
		return nil
	}
	exists, err := s.incomeRepo.ReferenceExists(ctx, ref, exclude)
	if err != nil {
		return err
	}
	if exists {
		return fieldError("reference_number", "Reference number already exists")
	}
	return nil
}

// apply copies validated values onto rec. Anonymous gifts never keep donor details.
func (s *incomeService) apply(rec *model.IncomeRecord, v validIncome) {
	rec.CategoryID = v.categoryID
	rec.Amount = v.amount
	rec.Currency = strings.ToUpper(v.data["currency"])
	if rec.Currency == "" {
		rec.Currency = s.settings.DefaultCurrency
	}
	rec.DonorName = v.data["donor_name"]
	rec.DonorPhone = v.data["donor_phone"]
	rec.DonorEmail = v.data["donor_email"]
	if v.anonymous {
		rec.DonorName, rec.DonorPhone, rec.DonorEmail = "", "", ""
	}
	rec.PaymentMethod = v.data["payment_method"]
	rec.ReferenceNumber = optionalString(v.data["reference_number"])
	rec.Description = v.data["description"]
	rec.TransactionDate = v.date
	rec.EventID = v.eventID
	rec.ReceiptNumber = v.data["receipt_number"]
	rec.IsAnonymous = v.anonymous
	rec.IsPledge = v.pledge
	rec.PledgePeriod = ""
	if v.pledge {
		rec.PledgePeriod = v.data["pledge_period"]
	}
}

func (s *incomeService) Submit(ctx context.Context, user model.ActingUser, form IncomeForm) (IncomeResponse, error) {
	if !permission.Allowed(permission.Income, permission.Create, user.Role) {
		return IncomeResponse{}, ErrPermissionDenied
	}

	v, err := s.check(form)
	if err != nil {
		return IncomeResponse{}, err
	}
	category, err := s.activeCategory(ctx, v.categoryID)
	if err != nil {
		return IncomeResponse{}, boundary("load income category", err)
	}

	rec := model.IncomeRecord{RecordedBy: user.ID, Status: model.IncomePending}
	s.apply(&rec, v)
	if permission.TrustedSubmitter(user.Role) {
		now := s.opts.now()
		rec.Status = model.IncomeVerified
		rec.VerifiedBy = &user.ID
		rec.VerificationDate = &now
	}

	err = s.createWithRetry(ctx, func(txCtx context.Context) error {
		rec.ID = uuid.Nil
		if err := s.uniqueReference(txCtx, derefString(rec.ReferenceNumber), nil); err != nil {
			return err
		}
		txid, err := s.txids.Generate(txCtx, model.IncomePrefix)
		if err != nil {
			return err
		}
		rec.TransactionID = txid
		if err := s.incomeRepo.Create(txCtx, &rec); err != nil {
			return err
		}
		desc := fmt.Sprintf("Recorded income %s of %s %s", rec.TransactionID, rec.Currency, rec.Amount.StringFixed(2))
		return recordActivity(txCtx, s.activityRepo, user, model.ActionSubmitIncome, model.TableIncome, rec.ID.String(), desc, nil, rec)
	})
	if err != nil {
		return IncomeResponse{}, boundary("submit income", err)
	}

	rec.Category = category
	s.opts.publisher.Publish(model.Event{Type: model.EventIncomeSubmitted, Entity: model.TableIncome, EntityID: rec.ID.String(), Status: rec.Status})
	return toIncomeResponse(rec), nil
}

// createWithRetry runs fn in a transaction and repeats it once when the
// generated transaction id collided with a concurrent insert
func (s *incomeService) createWithRetry(ctx context.Context, fn func(txCtx context.Context) error) error {
	err := s.txManager.RunInTx(ctx, fn)
	if errors.Is(err, repository.ErrDuplicateTransactionID) {
		err = s.txManager.RunInTx(ctx, fn)
	}
	return err
}

func (s *incomeService) Decide(ctx context.Context, user model.ActingUser, id string, decision string, req DecisionRequest) (IncomeResponse, error) {
	action := permission.Verify
	activity := model.ActionVerifyIncome
	switch decision {
	case model.IncomeVerified:
	case model.IncomeRejected:
		action = permission.Reject
		activity = model.ActionRejectIncome
	default:
		return IncomeResponse{}, fieldError("decision", "Decision must be verified or rejected")
	}
	if !permission.Allowed(permission.Income, action, user.Role) {
		return IncomeResponse{}, ErrPermissionDenied
	}
	incomeID, err := uuid.Parse(id)
	if err != nil {
		return IncomeResponse{}, ErrNotFound
	}

	var rec *model.IncomeRecord
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err = s.incomeRepo.LockByID(txCtx, incomeID)
		if err != nil {
			return err
		}
		if rec.Status != model.IncomePending {
			return &TransitionError{Entity: "income", From: rec.Status, Action: action}
		}
		old := *rec

		now := s.opts.now()
		rec.Status = decision
		rec.VerifiedBy = &user.ID
		rec.VerificationDate = &now
		rec.DecisionNote = strings.TrimSpace(req.Note)
		if err := s.incomeRepo.Update(txCtx, rec); err != nil {
			return err
		}
		desc := fmt.Sprintf("Income %s marked %s", rec.TransactionID, decision)
		return recordActivity(txCtx, s.activityRepo, user, activity, model.TableIncome, rec.ID.String(), desc,
			map[string]string{"status": old.Status}, map[string]string{"status": rec.Status, "note": rec.DecisionNote})
	})
	if err != nil {
		return IncomeResponse{}, boundary("decide income", err)
	}

	s.opts.publisher.Publish(model.Event{Type: model.EventIncomeDecided, Entity: model.TableIncome, EntityID: rec.ID.String(), Status: rec.Status})
	return s.reload(ctx, *rec), nil
}

// Update edits a record. Administrators may edit anything; other editors
// only pending records they recorded themselves.
func (s *incomeService) Update(ctx context.Context, user model.ActingUser, id string, form IncomeForm) (IncomeResponse, error) {
	if !permission.Allowed(permission.Income, permission.Update, user.Role) {
		return IncomeResponse{}, ErrPermissionDenied
	}
	incomeID, err := uuid.Parse(id)
	if err != nil {
		return IncomeResponse{}, ErrNotFound
	}

	v, err := s.check(form)
	if err != nil {
		return IncomeResponse{}, err
	}
	if _, err := s.activeCategory(ctx, v.categoryID); err != nil {
		return IncomeResponse{}, boundary("load income category", err)
	}

	var rec *model.IncomeRecord
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err = s.incomeRepo.LockByID(txCtx, incomeID)
		if err != nil {
			return err
		}
		if !user.IsAdministrator() {
			if rec.RecordedBy != user.ID {
				return ErrPermissionDenied
			}
			if rec.Status != model.IncomePending {
				return &TransitionError{Entity: "income", From: rec.Status, Action: permission.Update}
			}
		}
		if err := s.uniqueReference(txCtx, v.data["reference_number"], &rec.ID); err != nil {
			return err
		}
		old := *rec
		s.apply(rec, v)
		if err := s.incomeRepo.Update(txCtx, rec); err != nil {
			return err
		}
		desc := fmt.Sprintf("Updated income %s", rec.TransactionID)
		return recordActivity(txCtx, s.activityRepo, user, model.ActionUpdateIncome, model.TableIncome, rec.ID.String(), desc, old, rec)
	})
	if err != nil {
		return IncomeResponse{}, boundary("update income", err)
	}

	s.opts.publisher.Publish(model.Event{Type: model.EventIncomeUpdated, Entity: model.TableIncome, EntityID: rec.ID.String(), Status: rec.Status})
	return s.reload(ctx, *rec), nil
}

// Delete removes a record in any status; administrators only
func (s *incomeService) Delete(ctx context.Context, user model.ActingUser, id string) error {
	if !permission.Allowed(permission.Income, permission.Delete, user.Role) {
		return ErrPermissionDenied
	}
	incomeID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.incomeRepo.LockByID(txCtx, incomeID)
		if err != nil {
			return err
		}
		if err := s.incomeRepo.Delete(txCtx, rec.ID); err != nil {
			return err
		}
		desc := fmt.Sprintf("Deleted income %s", rec.TransactionID)
		return recordActivity(txCtx, s.activityRepo, user, model.ActionDeleteIncome, model.TableIncome, rec.ID.String(), desc, rec, nil)
	})
	if err != nil {
		return boundary("delete income", err)
	}

	s.opts.publisher.Publish(model.Event{Type: model.EventIncomeDeleted, Entity: model.TableIncome, EntityID: incomeID.String()})
	return nil
}

func (s *incomeService) Get(ctx context.Context, user model.ActingUser, id string) (IncomeResponse, error) {
	if !permission.Allowed(permission.Income, permission.View, user.Role) {
		return IncomeResponse{}, ErrPermissionDenied
	}
	incomeID, err := uuid.Parse(id)
	if err != nil {
		return IncomeResponse{}, ErrNotFound
	}
	rec, err := s.incomeRepo.FindByID(ctx, incomeID)
	if err != nil {
		return IncomeResponse{}, boundary("get income", err)
	}
	return toIncomeResponse(*rec), nil
}

func (s *incomeService) List(ctx context.Context, user model.ActingUser, filter IncomeFilter) ([]IncomeResponse, int64, error) {
	if !permission.Allowed(permission.Income, permission.View, user.Role) {
		return nil, 0, ErrPermissionDenied
	}
	rf, err := buildRecordFilter(filter.Status, filter.CategoryID, filter.PaymentMethod, filter.DateFrom, filter.DateTo, filter.Search, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, boundary("list incomes", err)
	}
	if rf.Limit <= 0 {
		rf.Limit = 20
	}
	records, total, err := s.incomeRepo.List(ctx, rf)
	if err != nil {
		return nil, 0, boundary("list incomes", err)
	}
	res := make([]IncomeResponse, 0, len(records))
	for _, r := range records {
		res = append(res, toIncomeResponse(r))
	}
	return res, total, nil
}

// ListAll returns every matching record up to maxExportRows, ignoring paging
func (s *incomeService) ListAll(ctx context.Context, user model.ActingUser, filter IncomeFilter) ([]IncomeResponse, error) {
	filter.Page, filter.Limit = 1, maxExportRows
	res, _, err := s.List(ctx, user, filter)
	return res, err
}

// reload fetches the record with its category after a write; the write
// already succeeded so a failed reload falls back to what we have
func (s *incomeService) reload(ctx context.Context, rec model.IncomeRecord) IncomeResponse {
	if fresh, err := s.incomeRepo.FindByID(ctx, rec.ID); err == nil {
		return toIncomeResponse(*fresh)
	}
	return toIncomeResponse(rec)
}

func toIncomeResponse(r model.IncomeRecord) IncomeResponse {
	res := IncomeResponse{
		ID:               r.ID.String(),
		TransactionID:    r.TransactionID,
		CategoryID:       r.CategoryID.String(),
		Amount:           r.Amount.StringFixed(2),
		Currency:         r.Currency,
		DonorName:        r.DonorName,
		DonorPhone:       r.DonorPhone,
		DonorEmail:       r.DonorEmail,
		PaymentMethod:    r.PaymentMethod,
		ReferenceNumber:  derefString(r.ReferenceNumber),
		Description:      r.Description,
		TransactionDate:  r.TransactionDate.Format(validation.DateLayout),
		ReceiptNumber:    r.ReceiptNumber,
		IsAnonymous:      r.IsAnonymous,
		IsPledge:         r.IsPledge,
		PledgePeriod:     r.PledgePeriod,
		RecordedBy:       r.RecordedBy.String(),
		Status:           r.Status,
		VerificationDate: formatTimePtr(r.VerificationDate, time.RFC3339),
		DecisionNote:     r.DecisionNote,
		CreatedAt:        r.CreatedAt.Format("2006-01-02 15:04:05"),
		record:           r,
	}
	if r.Category != nil {
		res.CategoryName = r.Category.Name
	}
	res.EventID = uuidString(r.EventID)
	res.VerifiedBy = uuidString(r.VerifiedBy)
	return res
}

// buildRecordFilter parses listing query values shared by income and expense
func buildRecordFilter(status, categoryID, paymentMethod, dateFrom, dateTo, search string, page, limit int) (repository.RecordFilter, error) {
	rf := repository.RecordFilter{
		Status:        strings.TrimSpace(status),
		PaymentMethod: strings.TrimSpace(paymentMethod),
		Search:        search,
		Page:          page,
		Limit:         limit,
	}
	errs := map[string]string{}
	if categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			errs["category_id"] = "Category is invalid"
		} else {
			rf.CategoryID = &id
		}
	}
	for key, raw := range map[string]string{"date_from": dateFrom, "date_to": dateTo} {
		if raw == "" {
			continue
		}
		d, err := parseDate(raw, time.Local)
		if err != nil {
			errs[key] = validation.Label(key) + " must be a valid date (YYYY-MM-DD)"
			continue
		}
		if key == "date_from" {
			rf.DateFrom = &d
		} else {
			rf.DateTo = &d
		}
	}
	if len(errs) > 0 {
		return rf, &ValidationError{Fields: errs}
	}
	return rf, nil
}
