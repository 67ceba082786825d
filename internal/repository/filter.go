package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordFilter narrows income and expense listings. Zero values mean "any".
type RecordFilter struct {
	Status        string
	CategoryID    *uuid.UUID
	PaymentMethod string
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        string
	Page          int
	Limit         int
}

// Offset of the first row of the requested page
func (f RecordFilter) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// apply adds the WHERE clauses shared by both record tables. dateCol is the
// business date column; searchCols are matched case-insensitively.
func (f RecordFilter) apply(q *gorm.DB, dateCol string, searchCols []string) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.PaymentMethod != "" {
		q = q.Where("payment_method = ?", f.PaymentMethod)
	}
	if f.DateFrom != nil {
		q = q.Where(dateCol+" >= ?", f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		q = q.Where(dateCol+" <= ?", f.DateTo.Format("2006-01-02"))
	}
	if s := strings.TrimSpace(f.Search); s != "" && len(searchCols) > 0 {
		like := "%" + escapeLike(s) + "%"
		conds := make([]string, 0, len(searchCols))
		args := make([]interface{}, 0, len(searchCols))
		for _, col := range searchCols {
			conds = append(conds, col+" ILIKE ?")
			args = append(args, like)
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
