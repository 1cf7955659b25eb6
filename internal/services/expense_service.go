package services

import (
	"context"
	"fmt"
	"log/slog"

	"outlay/internal/core"
	"outlay/internal/storage"
)

const (
	defaultListLimit = 25
	maxListLimit     = 200
)

// ExpenseService orchestrates expense CRUD: domain validation, parameterized
// statements through the store, and a fire-and-forget event per mutation.
type ExpenseService struct {
	store  Store
	events EventPublisher
}

func NewExpenseService(store Store, events EventPublisher) *ExpenseService {
	return &ExpenseService{store: store, events: events}
}

// ListFilter narrows List. Month restricts to a calendar month; ID selects a
// single record; Limit is clamped to [1, 200] with a default of 25.
type ListFilter struct {
	Month *core.Month
	ID    int64
	Limit int
}

// List returns expenses joined with their category's display fields,
// newest-date-first, ties broken by descending id.
func (s *ExpenseService) List(ctx context.Context, f ListFilter) ([]storage.ExpenseRow, error) {
	limit := f.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := storage.ExpenseFilter{ID: f.ID, Limit: uint64(limit)}
	if f.Month != nil {
		filter.Start = f.Month.Start().String()
		filter.End = f.Month.NextStart().String()
	}

	rows, err := s.store.ListExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return rows, nil
}

// Create validates and stores a new expense, returning the assigned id.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.InsertExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense created",
		"id", id,
		"amount_cents", e.Amount.Cents,
		"date", e.Date.String(),
		"category_id", e.CategoryID)

	s.publish(ctx, "created", id)
	return id, nil
}

// Update rewrites the expense with the given id. An id that matches no row
// silently succeeds; this leniency is deliberate.
func (s *ExpenseService) Update(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense updated", "id", e.ID, "amount_cents", e.Amount.Cents)
	s.publish(ctx, "updated", e.ID)
	return nil
}

// Delete removes the expense with the given id; absent ids succeed.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	s.publish(ctx, "deleted", id)
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, action string, id int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, action, id); err != nil {
		// The write already succeeded; the event stream is best effort.
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"action", action, "id", id, "error", err)
	}
}
