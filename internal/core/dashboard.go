package core

// Dashboard is the monthly aggregate document computed fresh per request.
// It is derived, never persisted, and serialized as-is by the HTTP layer.
type Dashboard struct {
	Month      string          `json:"month"`
	PrevMonth  string          `json:"prev_month"`
	Totals     DashboardTotals `json:"totals"`
	ByCategory []CategoryTotal `json:"by_category"`
	OverTime   []DayTotal      `json:"over_time"`
}

// DashboardTotals compares the requested month against the previous one.
// DeltaPct is nil when the previous month's total is zero, since a
// percentage change from zero is undefined.
type DashboardTotals struct {
	ThisMonthCents int64    `json:"this_month_cents"`
	LastMonthCents int64    `json:"last_month_cents"`
	DeltaCents     int64    `json:"delta_cents"`
	DeltaPct       *float64 `json:"delta_pct"`
}

// CategoryTotal is one breakdown row. Categories without expenses in the
// month appear with a zero total.
type CategoryTotal struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
	TotalCents int64  `json:"total_cents"`
}

// DayTotal is one point of the daily series. The series is sparse: days
// without expenses are absent, and gap-filling is a presentation concern.
type DayTotal struct {
	Day        string `json:"day"`
	TotalCents int64  `json:"total_cents"`
}
