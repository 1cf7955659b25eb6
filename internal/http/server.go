// Package http exposes the JSON API: category listing, the monthly
// dashboard aggregate, and expense CRUD. Responses use a uniform
// {ok, data, error} envelope and permissive CORS so any origin can host the
// dashboard UI.
package http

import (
	"context"
	"net/http"

	"outlay/internal/core"
	"outlay/internal/services"
	"outlay/internal/storage"
)

// DashboardComputer computes the monthly aggregate document.
type DashboardComputer interface {
	Compute(ctx context.Context, month core.Month) (core.Dashboard, error)
}

// ExpenseMutator is the CRUD surface the expense handlers need.
type ExpenseMutator interface {
	List(ctx context.Context, f services.ListFilter) ([]storage.ExpenseRow, error)
	Create(ctx context.Context, e core.Expense) (int64, error)
	Update(ctx context.Context, e core.Expense) error
	Delete(ctx context.Context, id int64) error
}

// CategoryLister reads the category reference data.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]core.Category, error)
}

type Server struct {
	http.Server
	dashboard  DashboardComputer
	expenses   ExpenseMutator
	categories CategoryLister
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, dashboard DashboardComputer, expenses ExpenseMutator, categories CategoryLister) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		dashboard:  dashboard,
		expenses:   expenses,
		categories: categories,
	}

	mux.HandleFunc("/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("/expenses", s.withMiddleware(s.handleExpenses))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
