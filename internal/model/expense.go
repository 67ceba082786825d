package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseStatus enum constants
const (
	ExpensePending  = "pending"
	ExpenseApproved = "approved"
	ExpensePaid     = "paid"
	ExpenseRejected = "rejected"
)

// ExpenseCategory carries the monthly budget ceiling and the approval policy
type ExpenseCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	// 0 means unlimited
	BudgetLimit      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"budget_limit"`
	RequiresApproval bool            `gorm:"not null" json:"requires_approval"`
	IsActive         bool            `gorm:"not null" json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (c *ExpenseCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasBudget reports whether a monthly ceiling applies
func (c ExpenseCategory) HasBudget() bool {
	return c.BudgetLimit.GreaterThan(decimal.Zero)
}

// ExpenseRecord is a request to spend money. Status progression:
// pending -> approved -> paid, or pending -> rejected.
type ExpenseRecord struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TransactionID string           `gorm:"type:varchar(30);uniqueIndex;not null" json:"transaction_id"`
	CategoryID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"category_id"`
	Category      *ExpenseCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Amount        decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency      string           `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`

	VendorName    string `gorm:"type:varchar(150)" json:"vendor_name"`
	VendorContact string `gorm:"type:varchar(150)" json:"vendor_contact"`
	VendorPhone   string `gorm:"type:varchar(30)" json:"vendor_phone"`
	VendorEmail   string `gorm:"type:varchar(150)" json:"vendor_email"`

	PaymentMethod   string     `gorm:"type:varchar(30);not null" json:"payment_method"`
	ReferenceNumber *string    `gorm:"type:varchar(100);index" json:"reference_number"`
	Description     string     `gorm:"type:text;not null" json:"description"`
	ExpenseDate     time.Time  `gorm:"type:date;not null;index" json:"expense_date"`
	EventID         *uuid.UUID `gorm:"type:uuid;index" json:"event_id"`
	ReceiptNumber   string     `gorm:"type:varchar(50)" json:"receipt_number"`
	ReceiptPath     string     `gorm:"type:text" json:"receipt_path"`

	RequestedBy      uuid.UUID  `gorm:"type:uuid;not null;index" json:"requested_by"`
	Status           string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ApprovedBy       *uuid.UUID `gorm:"type:uuid" json:"approved_by"`
	ApprovalDate     *time.Time `json:"approval_date"`
	RejectionReason  string     `gorm:"type:text" json:"rejection_reason"`
	PaidBy           *uuid.UUID `gorm:"type:uuid" json:"paid_by"`
	PaymentDate      *time.Time `gorm:"type:date" json:"payment_date"`
	PaymentReference string     `gorm:"type:varchar(100)" json:"payment_reference"`
	PaymentNotes     string     `gorm:"type:text" json:"payment_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ExpenseRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
