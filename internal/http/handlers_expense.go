package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"outlay/internal/core"
	"outlay/internal/services"
	"outlay/internal/storage"
)

type expenseView struct {
	ID            int64   `json:"id"`
	AmountCents   int64   `json:"amount_cents"`
	ExpenseDate   string  `json:"expense_date"`
	Note          *string `json:"note"`
	CategoryID    int64   `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	CategoryColor string  `json:"category_color"`
	CategoryIcon  string  `json:"category_icon"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleExpenseList(w, r)
	case http.MethodPost:
		s.handleExpenseCreate(w, r)
	case http.MethodPut:
		s.handleExpenseUpdate(w, r)
	case http.MethodDelete:
		s.handleExpenseDelete(w, r)
	default:
		writeMethodNotAllowed(w)
	}
}

func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter services.ListFilter

	if raw := q.Get("month"); raw != "" {
		month, err := core.ParseMonth(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "month: must match YYYY-MM")
			return
		}
		filter.Month = &month
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "limit: must be an integer")
			return
		}
		// An explicit 0 clamps low; only an absent limit gets the default.
		if limit == 0 {
			limit = 1
		}
		filter.Limit = limit
	}

	if raw := q.Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			writeError(w, http.StatusUnprocessableEntity, "id: must be a positive integer")
			return
		}
		filter.ID = id
	}

	rows, err := s.expenses.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, expenseViews(rows))
}

func (s *Server) handleExpenseCreate(w http.ResponseWriter, r *http.Request) {
	expense, err := parseExpenseBody(r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	id, err := s.expenses.Create(r.Context(), expense)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleExpenseUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := requireID(r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	expense, err := parseExpenseBody(r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	expense.ID = id

	if err := s.expenses.Update(r.Context(), expense); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleExpenseDelete(w http.ResponseWriter, r *http.Request) {
	id, err := requireID(r)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}

	if err := s.expenses.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w)
}

// requireID extracts the mandatory id query parameter for PUT and DELETE.
func requireID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, unprocessable("id: required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, unprocessable("id: must be a positive integer")
	}
	return id, nil
}

func expenseViews(rows []storage.ExpenseRow) []expenseView {
	views := make([]expenseView, 0, len(rows))
	for _, row := range rows {
		views = append(views, expenseView{
			ID:            row.ID,
			AmountCents:   row.AmountCents,
			ExpenseDate:   row.Date,
			Note:          row.Note,
			CategoryID:    row.CategoryID,
			CategoryName:  row.CategoryName,
			CategoryColor: row.CategoryColor,
			CategoryIcon:  row.CategoryIcon,
		})
	}
	return views
}

func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		writeError(w, reqErr.status, reqErr.message)
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request")
}

// writeServiceError maps service failures: domain validation errors become
// 422s with a field message, anything else is a 500 with the detail kept in
// the log.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidMonth),
		errors.Is(err, core.ErrInvalidCategory):
		writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
