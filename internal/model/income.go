package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeStatus enum constants
const (
	IncomePending  = "pending"
	IncomeVerified = "verified"
	IncomeRejected = "rejected"
)

// Payment method enum constants, shared by income and expense records
const (
	PaymentCash         = "cash"
	PaymentCheck        = "check"
	PaymentBankTransfer = "bank_transfer"
	PaymentMobileMoney  = "mobile_money"
	PaymentCard         = "card"
	PaymentOnline       = "online"
	PaymentOther        = "other"
)

// PaymentMethods lists every accepted payment method in display order
var PaymentMethods = []string{
	PaymentCash, PaymentCheck, PaymentBankTransfer, PaymentMobileMoney, PaymentCard, PaymentOnline, PaymentOther,
}

// Pledge period enum constants
const (
	PledgeWeekly    = "weekly"
	PledgeMonthly   = "monthly"
	PledgeQuarterly = "quarterly"
	PledgeAnnually  = "annually"
)

var PledgePeriods = []string{PledgeWeekly, PledgeMonthly, PledgeQuarterly, PledgeAnnually}

// Transaction ID prefixes
const (
	IncomePrefix  = "INC"
	ExpensePrefix = "EXP"
)

// IncomeCategory groups income records (tithes, offerings, building fund, ...)
type IncomeCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *IncomeCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// IncomeRecord is a single donation, offering or other receipt of funds.
// Status moves pending -> verified or pending -> rejected and never back.
type IncomeRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TransactionID string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"transaction_id"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category      *IncomeCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`

	DonorName  string `gorm:"type:varchar(150)" json:"donor_name"`
	DonorPhone string `gorm:"type:varchar(30)" json:"donor_phone"`
	DonorEmail string `gorm:"type:varchar(150)" json:"donor_email"`

	PaymentMethod string `gorm:"type:varchar(30);not null" json:"payment_method"`
	// Unique only when set; enforced by a partial index created at migration time
	ReferenceNumber *string    `gorm:"type:varchar(100);index" json:"reference_number"`
	Description     string     `gorm:"type:text;not null" json:"description"`
	TransactionDate time.Time  `gorm:"type:date;not null;index" json:"transaction_date"`
	EventID         *uuid.UUID `gorm:"type:uuid;index" json:"event_id"`
	ReceiptNumber   string     `gorm:"type:varchar(50)" json:"receipt_number"`
	ReceiptPath     string     `gorm:"type:text" json:"receipt_path"`

	IsAnonymous  bool   `gorm:"not null;default:false" json:"is_anonymous"`
	IsPledge     bool   `gorm:"not null;default:false" json:"is_pledge"`
	PledgePeriod string `gorm:"type:varchar(20)" json:"pledge_period"`

	RecordedBy       uuid.UUID  `gorm:"type:uuid;not null;index" json:"recorded_by"`
	Status           string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	VerifiedBy       *uuid.UUID `gorm:"type:uuid" json:"verified_by"`
	VerificationDate *time.Time `json:"verification_date"`
	DecisionNote     string     `gorm:"type:text" json:"decision_note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *IncomeRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
