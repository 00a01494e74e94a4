package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind classifies a transaction as income or expense. Any other value is
	// excluded from totals but still counted in the ledger.
	Kind string

	// Transaction is one ledger entry. Dates are timezone-naive calendar
	// dates stored at midnight UTC.
	Transaction struct {
		Date        time.Time
		Description string
		Amount      float64
		Category    string
		Kind        Kind
	}

	// Ledger is an ordered sequence of transactions. Once loaded it is
	// treated as immutable; derived ledgers are independent copies.
	Ledger []Transaction
)

var (
	ErrNoData          = errors.New("no data")
	ErrDataUnavailable = errors.New("data not loaded")

	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid kind")
)

// IsValid reports whether the kind belongs to the closed enumeration.
func (k Kind) IsValid() bool {
	switch k {
	case Income, Expense:
		return true
	default:
		return false
	}
}

// ParseKind normalizes a raw kind label. Unknown labels are returned as-is so
// the caller can decide whether to keep or drop the row.
func ParseKind(s string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(s)))
}

// NewDate builds a calendar date at midnight UTC.
func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	return nil
}

// Clone returns an independent copy of the ledger. Mutating the copy never
// touches the receiver.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return nil
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}
