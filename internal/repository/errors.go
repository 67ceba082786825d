package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Sentinel errors returned by Create/Update when a unique constraint fires
var (
	ErrNotFound               = errors.New("record not found")
	ErrDuplicateTransactionID = errors.New("duplicate transaction id")
	ErrDuplicateReference     = errors.New("duplicate reference number")
	ErrDuplicateName          = errors.New("duplicate name")
	ErrDuplicateKey           = errors.New("duplicate key")
)

const pgUniqueViolation = "23505"

// translate maps driver errors onto the sentinels above. Errors it does not
// recognise are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return duplicateFor(pgErr.ConstraintName + " " + pgErr.Detail)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicateFor(err.Error())
	}
	return err
}

func duplicateFor(hint string) error {
	switch {
	case strings.Contains(hint, "transaction_id"):
		return ErrDuplicateTransactionID
	case strings.Contains(hint, "reference_number"):
		return ErrDuplicateReference
	case strings.Contains(hint, "name"):
		return ErrDuplicateName
	default:
		return ErrDuplicateKey
	}
}
