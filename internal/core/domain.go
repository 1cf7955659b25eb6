package core

import (
	"errors"
	"time"
)

type (
	// Money is a monetary amount in integer cents. Amounts are stored and
	// summed as minor units to avoid floating-point drift.
	Money struct {
		Cents int64
	}

	// Date is a calendar date without a time component.
	Date struct {
		time.Time
	}

	// Category is reference data seeded by migrations; the application never
	// mutates it.
	Category struct {
		ID        int64
		Name      string
		Color     string
		Icon      string
		SortOrder int64
	}

	// Expense is a single expense record.
	Expense struct {
		ID         int64
		Amount     Money
		Date       Date
		Note       *string
		CategoryID int64
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidCategory = errors.New("invalid category")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a strict YYYY-MM-DD calendar date. Inputs that survive
// parsing but do not round-trip to the same string (e.g. "2024-2-3") are
// rejected, matching the strictness of the API contract.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	if t.Format("2006-01-02") != s {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String returns the ISO date form used both on the wire and in SQL
// parameters.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.CategoryID <= 0 {
		return ErrInvalidCategory
	}
	return nil
}
