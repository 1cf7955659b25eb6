package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"outlay/internal/core"
)

// DashboardService computes the monthly aggregate document. It is pure
// read-only computation over the store; results are never cached, so every
// request sees the store's current state.
type DashboardService struct {
	store Store
}

func NewDashboardService(store Store) *DashboardService {
	return &DashboardService{store: store}
}

// Compute builds the dashboard for the given month: total spend, previous
// month comparison, per-category breakdown and the sparse daily series.
//
// The four queries run as a group. They are not wrapped in a transaction, so
// a write racing between them can produce a snapshot that is internally
// inconsistent; acceptable for a single-writer personal tool.
func (s *DashboardService) Compute(ctx context.Context, month core.Month) (core.Dashboard, error) {
	prev := month.Prev()

	start := month.Start().String()
	end := month.NextStart().String()
	prevStart := prev.Start().String()
	prevEnd := prev.NextStart().String()

	var (
		thisTotal  int64
		lastTotal  int64
		byCategory []core.CategoryTotal
		overTime   []core.DayTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		thisTotal, err = s.store.SumRange(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		lastTotal, err = s.store.SumRange(gctx, prevStart, prevEnd)
		return err
	})
	g.Go(func() error {
		var err error
		byCategory, err = s.store.CategoryTotals(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		overTime, err = s.store.DailyTotals(gctx, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Dashboard{}, fmt.Errorf("compute dashboard for %s: %w", month, err)
	}

	delta := thisTotal - lastTotal
	var deltaPct *float64
	if lastTotal != 0 {
		pct := float64(delta) / float64(lastTotal) * 100.0
		deltaPct = &pct
	}

	// Empty slices serialize as [] rather than null.
	if byCategory == nil {
		byCategory = []core.CategoryTotal{}
	}
	if overTime == nil {
		overTime = []core.DayTotal{}
	}

	return core.Dashboard{
		Month:     month.String(),
		PrevMonth: prev.String(),
		Totals: core.DashboardTotals{
			ThisMonthCents: thisTotal,
			LastMonthCents: lastTotal,
			DeltaCents:     delta,
			DeltaPct:       deltaPct,
		},
		ByCategory: byCategory,
		OverTime:   overTime,
	}, nil
}
