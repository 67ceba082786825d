package model

// Dashboard event types pushed to websocket subscribers after a commit
const (
	EventIncomeSubmitted  = "income.submitted"
	EventIncomeDecided    = "income.decided"
	EventIncomeUpdated    = "income.updated"
	EventIncomeDeleted    = "income.deleted"
	EventExpenseSubmitted = "expense.submitted"
	EventExpenseApproved  = "expense.approved"
	EventExpenseRejected  = "expense.rejected"
	EventExpensePaid      = "expense.paid"
	EventExpenseUpdated   = "expense.updated"
	EventExpenseDeleted   = "expense.deleted"
)

// Event is a small notification; clients refetch what they display
type Event struct {
	Type     string `json:"type"`
	Entity   string `json:"entity"`
	EntityID string `json:"entity_id"`
	Status   string `json:"status,omitempty"`
}
