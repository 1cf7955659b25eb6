// Package storage implements the SQL persistence layer. Every statement is
// built with squirrel so the same repository serves both the sqlite and the
// postgres backend; only the placeholder format differs.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"outlay/internal/core"
)

type Repository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// OpenSQLite opens (creating if needed) a sqlite database, runs migrations
// and returns a ready repository.
func OpenSQLite(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunSQLiteMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// OpenPostgres connects to postgres through the pgx stdlib driver, runs
// migrations and returns a ready repository.
func OpenPostgres(dsn string) (*Repository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunPostgresMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ExpenseRow is an expense joined with its category's display fields, as
// returned by the list endpoint.
type ExpenseRow struct {
	ID            int64
	AmountCents   int64
	Date          string
	Note          *string
	CategoryID    int64
	CategoryName  string
	CategoryColor string
	CategoryIcon  string
}

// ExpenseFilter narrows ListExpenses. Start/End bound the expense date as a
// half-open range; ID selects a single record; Limit caps the result count.
type ExpenseFilter struct {
	Start string
	End   string
	ID    int64
	Limit uint64
}

// ListCategories returns all categories in display order.
func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	query, args, err := r.sb.
		Select("id", "name", "color", "icon", "sort_order").
		From("categories").
		OrderBy("sort_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build categories query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// SumRange returns the total of amount_cents for expenses dated in
// [start, end). Zero rows sum to 0.
func (r *Repository) SumRange(ctx context.Context, start, end string) (int64, error) {
	query, args, err := r.sb.
		Select("COALESCE(SUM(amount_cents), 0)").
		From("expenses").
		Where(sq.GtOrEq{"expense_date": start}).
		Where(sq.Lt{"expense_date": end}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sum query: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

// CategoryTotals returns one row per category, including categories with no
// expenses in the range, ordered by summed total descending.
func (r *Repository) CategoryTotals(ctx context.Context, start, end string) ([]core.CategoryTotal, error) {
	query, args, err := r.sb.
		Select("c.id", "c.name", "c.color", "c.icon", "COALESCE(SUM(e.amount_cents), 0) AS total_cents").
		From("categories c").
		LeftJoin("expenses e ON e.category_id = c.id AND e.expense_date >= ? AND e.expense_date < ?", start, end).
		GroupBy("c.id", "c.name", "c.color", "c.icon").
		OrderBy("total_cents DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category totals query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var t core.CategoryTotal
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Icon, &t.TotalCents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// DailyTotals returns one row per expense date in [start, end) that has at
// least one expense, ordered ascending. Days without expenses are absent.
func (r *Repository) DailyTotals(ctx context.Context, start, end string) ([]core.DayTotal, error) {
	query, args, err := r.sb.
		Select("expense_date", "SUM(amount_cents)").
		From("expenses").
		Where(sq.GtOrEq{"expense_date": start}).
		Where(sq.Lt{"expense_date": end}).
		GroupBy("expense_date").
		OrderBy("expense_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build daily totals query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var totals []core.DayTotal
	for rows.Next() {
		var t core.DayTotal
		if err := rows.Scan(&t.Day, &t.TotalCents); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// ListExpenses returns expenses joined with category display fields,
// newest-date-first with descending id as tiebreak.
func (r *Repository) ListExpenses(ctx context.Context, f ExpenseFilter) ([]ExpenseRow, error) {
	q := r.sb.
		Select("e.id", "e.amount_cents", "e.expense_date", "e.note",
			"c.id", "c.name", "c.color", "c.icon").
		From("expenses e").
		Join("categories c ON c.id = e.category_id").
		OrderBy("e.expense_date DESC", "e.id DESC")

	if f.Start != "" && f.End != "" {
		q = q.Where(sq.GtOrEq{"e.expense_date": f.Start}).Where(sq.Lt{"e.expense_date": f.End})
	}
	if f.ID > 0 {
		q = q.Where(sq.Eq{"e.id": f.ID})
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build expenses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []ExpenseRow
	for rows.Next() {
		var e ExpenseRow
		if err := rows.Scan(&e.ID, &e.AmountCents, &e.Date, &e.Note,
			&e.CategoryID, &e.CategoryName, &e.CategoryColor, &e.CategoryIcon); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// InsertExpense stores a new expense and returns the assigned id.
func (r *Repository) InsertExpense(ctx context.Context, e core.Expense) (int64, error) {
	query, args, err := r.sb.
		Insert("expenses").
		Columns("amount_cents", "expense_date", "note", "category_id").
		Values(e.Amount.Cents, e.Date.String(), e.Note, e.CategoryID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert query: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	return id, nil
}

// UpdateExpense rewrites the record with the given id. An id that matches no
// row is not an error; the statement simply affects nothing.
func (r *Repository) UpdateExpense(ctx context.Context, e core.Expense) error {
	query, args, err := r.sb.
		Update("expenses").
		Set("amount_cents", e.Amount.Cents).
		Set("expense_date", e.Date.String()).
		Set("note", e.Note).
		Set("category_id", e.CategoryID).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// DeleteExpense removes the record with the given id; absent ids succeed.
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	query, args, err := r.sb.
		Delete("expenses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
