package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"churchadmin/internal/model"
	"churchadmin/internal/repository"
	"churchadmin/internal/validation"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Publisher receives dashboard events after a successful commit
type Publisher interface {
	Publish(event model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}

// Settings carries the workflow knobs read from configuration
type Settings struct {
	DefaultCurrency   string
	AutoApprovalLimit decimal.Decimal
	ReceiptDir        string
	ReceiptMaxBytes   int64
	ReceiptTypes      []string
}

// DefaultSettings mirrors the configuration defaults
func DefaultSettings() Settings {
	return Settings{
		DefaultCurrency:   "USD",
		AutoApprovalLimit: decimal.NewFromInt(5000),
		ReceiptDir:        "receipts",
		ReceiptMaxBytes:   5 << 20,
		ReceiptTypes:      []string{"image/jpeg", "image/png", "application/pdf"},
	}
}

// Option tweaks a workflow service at construction
type Option func(*options)

type options struct {
	now       func() time.Time
	publisher Publisher
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithPublisher sets where dashboard events go
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		if p != nil {
			o.publisher = p
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, publisher: nopPublisher{}}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// maxAmount is the largest value a decimal(14,2) column holds
var maxAmount = decimal.RequireFromString("999999999999.99")

// parseAmount rounds to cents before range checks; the message is empty when amount is usable
func parseAmount(raw string) (decimal.Decimal, string) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, "Amount must be a number"
	}
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return amount, "Amount must be greater than zero"
	}
	if amount.GreaterThan(maxAmount) {
		return amount, "Amount cannot exceed 999,999,999,999.99"
	}
	return amount, ""
}

// dateOnly truncates t to midnight in its own location
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(validation.DateLayout, s, loc)
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTimePtr(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}

func snapshot(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("activity snapshot failed: %v", err)
		return nil
	}
	return datatypes.JSON(b)
}

// recordActivity appends an entry in the caller's transaction
func recordActivity(ctx context.Context, repo repository.ActivityRepository, user model.ActingUser,
	action, table, entityID, description string, oldValue, newValue interface{}) error {
	uid := user.ID
	entry := &model.ActivityLog{
		UserID:      &uid,
		Action:      action,
		Description: description,
		EntityTable: table,
		EntityID:    entityID,
		OldValue:    snapshot(oldValue),
		NewValue:    snapshot(newValue),
	}
	return repo.Log(ctx, entry)
}
