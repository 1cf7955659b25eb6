// Package services holds the application services: the dashboard aggregator
// and the expense CRUD orchestration. Services talk to the store through a
// narrow capability interface so handlers and tests can substitute fakes.
package services

import (
	"context"

	"outlay/internal/core"
	"outlay/internal/storage"
)

// Store is the persistence capability the services depend on. The concrete
// implementation is storage.Repository; its lifecycle is owned by the
// hosting process.
type Store interface {
	ListCategories(ctx context.Context) ([]core.Category, error)
	SumRange(ctx context.Context, start, end string) (int64, error)
	CategoryTotals(ctx context.Context, start, end string) ([]core.CategoryTotal, error)
	DailyTotals(ctx context.Context, start, end string) ([]core.DayTotal, error)
	ListExpenses(ctx context.Context, f storage.ExpenseFilter) ([]storage.ExpenseRow, error)
	InsertExpense(ctx context.Context, e core.Expense) (int64, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
}

// EventPublisher publishes expense mutation events for downstream
// consumers. Publishing is fire-and-forget: failures are logged, never
// surfaced to the client.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, action string, id int64) error
}
