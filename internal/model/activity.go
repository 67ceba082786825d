package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionSubmitIncome   = "SUBMIT_INCOME"
	ActionUpdateIncome   = "UPDATE_INCOME"
	ActionVerifyIncome   = "VERIFY_INCOME"
	ActionRejectIncome   = "REJECT_INCOME"
	ActionDeleteIncome   = "DELETE_INCOME"
	ActionSubmitExpense  = "SUBMIT_EXPENSE"
	ActionUpdateExpense  = "UPDATE_EXPENSE"
	ActionApproveExpense = "APPROVE_EXPENSE"
	ActionRejectExpense  = "REJECT_EXPENSE"
	ActionPayExpense     = "PAY_EXPENSE"
	ActionDeleteExpense  = "DELETE_EXPENSE"

	ActionCreateCategory = "CREATE_CATEGORY"
	ActionUpdateCategory = "UPDATE_CATEGORY"
	ActionDeleteCategory = "DELETE_CATEGORY"
)

// Entity tables referenced from activity entries
const (
	TableIncome            = "income_records"
	TableExpense           = "expense_records"
	TableIncomeCategories  = "income_categories"
	TableExpenseCategories = "expense_categories"
)

// ActivityLog is the append-only trail of who changed which finance record.
// Entries are written inside the same transaction as the change they describe.
type ActivityLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	Action      string         `gorm:"type:varchar(50);not null;index" json:"action"`
	Description string         `gorm:"type:text;not null" json:"description"`
	EntityTable string         `gorm:"type:varchar(50);not null;index:idx_activity_entity" json:"entity_table"`
	EntityID    string         `gorm:"type:varchar(50);index:idx_activity_entity" json:"entity_id"`
	OldValue    datatypes.JSON `gorm:"type:jsonb" json:"old_value,omitempty"`
	NewValue    datatypes.JSON `gorm:"type:jsonb" json:"new_value,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
