package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TransactionIDGenerator hands out human readable identifiers such as
// EXP-20261017-00003. The unique index on transaction_id is the real guard;
// the generator only keeps collisions rare.
type TransactionIDGenerator interface {
	Generate(ctx context.Context, prefix string) (string, error)
}

type sequenceGenerator struct {
	db    *gorm.DB
	table map[string]string // prefix -> table
	now   func() time.Time
}

// NewTransactionIDGenerator builds a generator over the given prefix to table mapping
func NewTransactionIDGenerator(db *gorm.DB, tables map[string]string) TransactionIDGenerator {
	return &sequenceGenerator{db: db, table: tables, now: time.Now}
}

// FormatTransactionID renders PREFIX-YYYYMMDD-NNNNN
func FormatTransactionID(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%05d", prefix, day.Format("20060102"), seq)
}

func (g *sequenceGenerator) Generate(ctx context.Context, prefix string) (string, error) {
	table, ok := g.table[prefix]
	if !ok {
		return "", fmt.Errorf("no table registered for transaction prefix %q", prefix)
	}

	db := GetDB(ctx, g.db)
	day := g.now()
	stem := prefix + "-" + day.Format("20060102") + "-"

	// Serialise generators for the same day inside the caller's transaction
	if InTx(ctx) {
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", stem).Error; err != nil {
			return "", fmt.Errorf("failed to lock transaction sequence: %w", err)
		}
	}

	var last string
	if err := lastIDQuery(db, table, stem).Scan(&last).Error; err != nil {
		return "", fmt.Errorf("failed to read transaction sequence: %w", err)
	}

	return FormatTransactionID(prefix, day, nextSequence(last, stem)), nil
}

// lastIDQuery selects the highest id under stem. Past 99999 the ids grow a
// digit, so length orders before the text itself.
func lastIDQuery(db *gorm.DB, table, stem string) *gorm.DB {
	return db.Table(table).
		Select("transaction_id").
		Where("transaction_id LIKE ?", stem+"%").
		Order("LENGTH(transaction_id) DESC, transaction_id DESC").
		Limit(1)
}

// nextSequence returns the number after the one encoded in last
func nextSequence(last, stem string) int64 {
	if len(last) <= len(stem) {
		return 1
	}
	var n int64
	if _, err := fmt.Sscanf(last[len(stem):], "%d", &n); err != nil {
		return 1
	}
	return n + 1
}
