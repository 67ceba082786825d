// Package export renders record listings as CSV or as a printable HTML page.
// Renderers are pure: they only see the Table they are given.
package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind controls how a column's cells are formatted
type Kind int

const (
	Text Kind = iota
	Money
	Date
	// Currency holds the code that qualifies the row's Money cells
	Currency
)

// DateLayout is used for every date cell
const DateLayout = "2006-01-02"

type Column struct {
	Title string
	Kind  Kind
}

// Table is a titled grid. Each row has one value per column; Money cells hold
// decimal.Decimal, Date cells time.Time or *time.Time.
type Table struct {
	Title       string
	Columns     []Column
	Rows        [][]interface{}
	GeneratedAt time.Time
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount with thousands separators and two decimals: 1,234.50
func FormatMoney(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatCurrency prefixes FormatMoney with a currency code
func FormatCurrency(currency string, d decimal.Decimal) string {
	if currency == "" {
		return FormatMoney(d)
	}
	return currency + " " + FormatMoney(d)
}

// plain renders a cell the way CSV wants it: no grouping, fixed two decimals
func plain(kind Kind, v interface{}) string {
	switch kind {
	case Money:
		if d, ok := toDecimal(v); ok {
			return d.StringFixed(2)
		}
	case Date:
		return formatDate(v)
	}
	return text(v)
}

// pretty renders a cell for people: grouped money
func pretty(kind Kind, v interface{}) string {
	switch kind {
	case Money:
		if d, ok := toDecimal(v); ok {
			return FormatMoney(d)
		}
	case Date:
		return formatDate(v)
	}
	return text(v)
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		if x != nil {
			return *x, true
		}
	}
	return decimal.Zero, false
}

func formatDate(v interface{}) string {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(DateLayout)
	case *time.Time:
		if x == nil || x.IsZero() {
			return ""
		}
		return x.Format(DateLayout)
	}
	return text(v)
}

func text(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	}
	return fmt.Sprint(v)
}

// currency returns the single code used across Currency columns; mixed is
// true when rows disagree
func (t Table) currency() (code string, mixed bool) {
	for i, c := range t.Columns {
		if c.Kind != Currency {
			continue
		}
		for _, row := range t.Rows {
			if i >= len(row) {
				continue
			}
			v := text(row[i])
			switch {
			case v == "" || v == code:
			case code == "":
				code = v
			default:
				return "", true
			}
		}
	}
	return code, false
}

// totals sums every Money column; other positions are nil. Amounts in
// different currencies are not summed, so a mixed table has no totals.
func (t Table) totals() []*decimal.Decimal {
	sums := make([]*decimal.Decimal, len(t.Columns))
	if _, mixed := t.currency(); mixed {
		return sums
	}
	for i, c := range t.Columns {
		if c.Kind != Money {
			continue
		}
		sum := decimal.Zero
		for _, row := range t.Rows {
			if i < len(row) {
				if d, ok := toDecimal(row[i]); ok {
					sum = sum.Add(d)
				}
			}
		}
		sums[i] = &sum
	}
	return sums
}
