package services

import (
	"context"
	"errors"
	"testing"

	"outlay/internal/core"
	"outlay/internal/storage"
)

// crudStore is a minimal in-memory Store for exercising the expense service.
type crudStore struct {
	fakeStore
	nextID     int64
	inserted   []core.Expense
	updated    []core.Expense
	deleted    []int64
	lastFilter storage.ExpenseFilter
}

func (c *crudStore) InsertExpense(ctx context.Context, e core.Expense) (int64, error) {
	c.nextID++
	c.inserted = append(c.inserted, e)
	return c.nextID, nil
}

func (c *crudStore) UpdateExpense(ctx context.Context, e core.Expense) error {
	c.updated = append(c.updated, e)
	return nil
}

func (c *crudStore) DeleteExpense(ctx context.Context, id int64) error {
	c.deleted = append(c.deleted, id)
	return nil
}

func (c *crudStore) ListExpenses(ctx context.Context, f storage.ExpenseFilter) ([]storage.ExpenseRow, error) {
	c.lastFilter = f
	return nil, nil
}

type recordingPublisher struct {
	events []string
	err    error
}

func (p *recordingPublisher) PublishExpenseEvent(ctx context.Context, action string, id int64) error {
	p.events = append(p.events, action)
	return p.err
}

func validExpense() core.Expense {
	return core.Expense{
		Amount:     core.CentsFromAmount(18.5),
		Date:       core.NewDate(2024, 3, 15),
		CategoryID: 2,
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	store := &crudStore{}
	pub := &recordingPublisher{}
	svc := NewExpenseService(store, pub)

	id, err := svc.Create(context.Background(), validExpense())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 1 {
		t.Fatalf("id = %d", id)
	}
	if store.inserted[0].Amount.Cents != 1850 {
		t.Fatalf("amount_cents = %d, want 1850", store.inserted[0].Amount.Cents)
	}
	if len(pub.events) != 1 || pub.events[0] != "created" {
		t.Fatalf("events = %v", pub.events)
	}
}

func TestCreateRejectsInvalidExpense(t *testing.T) {
	store := &crudStore{}
	svc := NewExpenseService(store, nil)

	bad := validExpense()
	bad.Amount = core.Money{Cents: 0}
	if _, err := svc.Create(context.Background(), bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(store.inserted) != 0 {
		t.Fatalf("invalid expense reached the store")
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	store := &crudStore{}
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewExpenseService(store, pub)

	if _, err := svc.Create(context.Background(), validExpense()); err != nil {
		t.Fatalf("create must not fail on publish error: %v", err)
	}
}

func TestUpdateAndDeleteEvents(t *testing.T) {
	store := &crudStore{}
	pub := &recordingPublisher{}
	svc := NewExpenseService(store, pub)

	e := validExpense()
	e.ID = 42
	if err := svc.Update(context.Background(), e); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(context.Background(), 42); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(pub.events) != 2 || pub.events[0] != "updated" || pub.events[1] != "deleted" {
		t.Fatalf("events = %v", pub.events)
	}
	if len(store.deleted) != 1 || store.deleted[0] != 42 {
		t.Fatalf("deleted ids = %v", store.deleted)
	}
}

func TestListLimitClamping(t *testing.T) {
	cases := []struct {
		in   int
		want uint64
	}{
		{0, 25},  // default
		{-3, 1},  // clamped up
		{1, 1},   //
		{200, 200},
		{500, 200}, // clamped down
	}
	for _, tc := range cases {
		store := &crudStore{}
		svc := NewExpenseService(store, nil)
		if _, err := svc.List(context.Background(), ListFilter{Limit: tc.in}); err != nil {
			t.Fatalf("list(limit=%d): %v", tc.in, err)
		}
		if store.lastFilter.Limit != tc.want {
			t.Fatalf("limit %d clamped to %d, want %d", tc.in, store.lastFilter.Limit, tc.want)
		}
	}
}

func TestListMonthFilterRange(t *testing.T) {
	store := &crudStore{}
	svc := NewExpenseService(store, nil)

	m, _ := core.ParseMonth("2024-12")
	if _, err := svc.List(context.Background(), ListFilter{Month: &m}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.lastFilter.Start != "2024-12-01" || store.lastFilter.End != "2025-01-01" {
		t.Fatalf("month range = %s..%s", store.lastFilter.Start, store.lastFilter.End)
	}
}
