package storage

import (
	"context"
	"path/filepath"
	"testing"

	"outlay/internal/core"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustInsert(t *testing.T, repo *Repository, cents int64, date string, categoryID int64, note *string) int64 {
	t.Helper()
	d, err := core.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	id, err := repo.InsertExpense(context.Background(), core.Expense{
		Amount:     core.Money{Cents: cents},
		Date:       d,
		Note:       note,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("insert expense: %v", err)
	}
	return id
}

func TestMigrationsSeedCategories(t *testing.T) {
	repo := openTestRepo(t)

	cats, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 10 {
		t.Fatalf("expected 10 seeded categories, got %d", len(cats))
	}
	for i := 1; i < len(cats); i++ {
		if cats[i-1].SortOrder > cats[i].SortOrder {
			t.Fatalf("categories not ordered by sort_order: %v before %v", cats[i-1], cats[i])
		}
	}
	if cats[0].Name != "Groceries" {
		t.Fatalf("first category = %s, want Groceries", cats[0].Name)
	}
}

func TestSumRange(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, 500, "2024-03-05", 1, nil)
	mustInsert(t, repo, 700, "2024-03-05", 2, nil)
	mustInsert(t, repo, 1000, "2024-04-01", 1, nil) // outside range

	total, err := repo.SumRange(ctx, "2024-03-01", "2024-04-01")
	if err != nil {
		t.Fatalf("sum range: %v", err)
	}
	if total != 1200 {
		t.Fatalf("total = %d, want 1200", total)
	}

	empty, err := repo.SumRange(ctx, "2020-01-01", "2020-02-01")
	if err != nil {
		t.Fatalf("sum empty range: %v", err)
	}
	if empty != 0 {
		t.Fatalf("empty month total = %d, want 0", empty)
	}
}

func TestCategoryTotalsIncludeZeroCategories(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, 2000, "2024-03-10", 2, nil)
	mustInsert(t, repo, 500, "2024-03-11", 1, nil)
	mustInsert(t, repo, 9999, "2024-02-11", 1, nil) // previous month, must not count

	totals, err := repo.CategoryTotals(ctx, "2024-03-01", "2024-04-01")
	if err != nil {
		t.Fatalf("category totals: %v", err)
	}
	if len(totals) != 10 {
		t.Fatalf("expected one row per category (10), got %d", len(totals))
	}
	if totals[0].ID != 2 || totals[0].TotalCents != 2000 {
		t.Fatalf("top category = %+v, want id=2 total=2000", totals[0])
	}
	if totals[1].ID != 1 || totals[1].TotalCents != 500 {
		t.Fatalf("second category = %+v, want id=1 total=500", totals[1])
	}
	for _, tt := range totals[2:] {
		if tt.TotalCents != 0 {
			t.Fatalf("expected zero total for category %d, got %d", tt.ID, tt.TotalCents)
		}
	}
}

func TestDailyTotalsAreSparse(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	mustInsert(t, repo, 500, "2024-03-05", 1, nil)
	mustInsert(t, repo, 700, "2024-03-05", 2, nil)
	mustInsert(t, repo, 300, "2024-03-20", 1, nil)

	days, err := repo.DailyTotals(ctx, "2024-03-01", "2024-04-01")
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days with expenses, got %d", len(days))
	}
	if days[0].Day != "2024-03-05" || days[0].TotalCents != 1200 {
		t.Fatalf("first day = %+v, want 2024-03-05/1200", days[0])
	}
	if days[1].Day != "2024-03-20" || days[1].TotalCents != 300 {
		t.Fatalf("second day = %+v, want 2024-03-20/300", days[1])
	}
}

func TestListExpensesOrderFilterLimit(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	note := "lunch"
	first := mustInsert(t, repo, 100, "2024-03-01", 1, nil)
	second := mustInsert(t, repo, 200, "2024-03-15", 2, &note)
	third := mustInsert(t, repo, 300, "2024-03-15", 1, nil)
	mustInsert(t, repo, 400, "2024-02-10", 1, nil)

	rows, err := repo.ListExpenses(ctx, ExpenseFilter{Start: "2024-03-01", End: "2024-04-01", Limit: 25})
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 expenses in March, got %d", len(rows))
	}
	// Newest date first, id DESC within the same date.
	if rows[0].ID != third || rows[1].ID != second || rows[2].ID != first {
		t.Fatalf("unexpected order: %d, %d, %d", rows[0].ID, rows[1].ID, rows[2].ID)
	}
	if rows[1].Note == nil || *rows[1].Note != "lunch" {
		t.Fatalf("note not round-tripped: %+v", rows[1].Note)
	}
	if rows[0].Note != nil {
		t.Fatalf("expected nil note, got %q", *rows[0].Note)
	}
	if rows[0].CategoryName == "" || rows[0].CategoryColor == "" {
		t.Fatalf("category display fields not joined: %+v", rows[0])
	}

	limited, err := repo.ListExpenses(ctx, ExpenseFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit not applied: got %d rows", len(limited))
	}

	one, err := repo.ListExpenses(ctx, ExpenseFilter{ID: second, Limit: 25})
	if err != nil {
		t.Fatalf("list by id: %v", err)
	}
	if len(one) != 1 || one[0].ID != second {
		t.Fatalf("id filter returned %+v", one)
	}
}

func TestAmountCentsRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id := mustInsert(t, repo, core.CentsFromAmount(18.5).Cents, "2024-03-01", 1, nil)
	rows, err := repo.ListExpenses(ctx, ExpenseFilter{ID: id, Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].AmountCents != 1850 {
		t.Fatalf("expected amount_cents=1850, got %+v", rows)
	}
}

func TestUpdateAndDeleteAreLenient(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	id := mustInsert(t, repo, 100, "2024-03-01", 1, nil)

	d, _ := core.ParseDate("2024-03-02")
	if err := repo.UpdateExpense(ctx, core.Expense{ID: id, Amount: core.Money{Cents: 250}, Date: d, CategoryID: 2}); err != nil {
		t.Fatalf("update: %v", err)
	}
	rows, err := repo.ListExpenses(ctx, ExpenseFilter{ID: id, Limit: 1})
	if err != nil || len(rows) != 1 {
		t.Fatalf("list after update: %v (%d rows)", err, len(rows))
	}
	if rows[0].AmountCents != 250 || rows[0].Date != "2024-03-02" || rows[0].CategoryID != 2 {
		t.Fatalf("update not applied: %+v", rows[0])
	}

	// Absent ids succeed silently on both update and delete.
	if err := repo.UpdateExpense(ctx, core.Expense{ID: 999999, Amount: core.Money{Cents: 1}, Date: d, CategoryID: 1}); err != nil {
		t.Fatalf("update absent id: %v", err)
	}
	if err := repo.DeleteExpense(ctx, 999999); err != nil {
		t.Fatalf("delete absent id: %v", err)
	}

	if err := repo.DeleteExpense(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, err = repo.ListExpenses(ctx, ExpenseFilter{ID: id, Limit: 1})
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected record gone, got %+v", rows)
	}
}
