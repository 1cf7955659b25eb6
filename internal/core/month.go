package core

import (
	"fmt"
	"time"
)

// Month identifies a calendar month (YYYY-MM).
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a strict YYYY-MM identifier. The month component must be
// 01-12; "2024-13" is rejected rather than absorbed by date arithmetic.
func ParseMonth(s string) (Month, error) {
	if len(s) != 7 || s[4] != '-' {
		return Month{}, ErrInvalidMonth
	}
	for i, r := range s {
		if i == 4 {
			continue
		}
		if r < '0' || r > '9' {
			return Month{}, ErrInvalidMonth
		}
	}
	year := atoi4(s[:4])
	month := int(s[5]-'0')*10 + int(s[6]-'0')
	if month < 1 || month > 12 {
		return Month{}, ErrInvalidMonth
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

func atoi4(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// CurrentMonth returns the calendar month of the server's local clock.
func CurrentMonth() Month {
	now := time.Now()
	return Month{Year: now.Year(), Month: now.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Start returns the first day of the month.
func (m Month) Start() Date {
	return NewDate(m.Year, int(m.Month), 1)
}

// NextStart returns the first day of the following month. time.Date
// normalizes month 13 into January of the next year, so year rollover and
// varying month lengths need no special handling.
func (m Month) NextStart() Date {
	return NewDate(m.Year, int(m.Month)+1, 1)
}

// Prev returns the preceding calendar month, rolling over year boundaries
// (2024-01 -> 2023-12).
func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}
