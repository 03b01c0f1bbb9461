package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"spendbot/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustInsert(t *testing.T, repo *SQLiteRepository, owner int64, cents int64, category string, at time.Time) core.Entry {
	t.Helper()
	e := core.Entry{
		OwnerID:   owner,
		Amount:    core.Money{Cents: cents},
		Category:  category,
		Note:      core.NoNoteText,
		CreatedAt: at,
	}
	if err := repo.InsertEntry(context.Background(), &e); err != nil {
		t.Fatalf("insert entry: %v", err)
	}
	return e
}

func TestInsertEntryAssignsID(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now()

	first := mustInsert(t, repo, 42, 15050, "еда", now)
	second := mustInsert(t, repo, 42, 300, "такси", now)

	if first.ID == 0 || second.ID == 0 {
		t.Fatalf("ids not assigned: %d, %d", first.ID, second.ID)
	}
	if second.ID <= first.ID {
		t.Fatalf("ids must grow with insertion order: %d then %d", first.ID, second.ID)
	}
}

func TestInsertEntryRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)

	bad := core.Entry{OwnerID: 1, Amount: core.Money{Cents: 0}, Category: "еда", CreatedAt: time.Now()}
	if err := repo.InsertEntry(context.Background(), &bad); err == nil {
		t.Fatal("zero amount must not be inserted")
	}

	noCat := core.Entry{OwnerID: 1, Amount: core.Money{Cents: 100}, CreatedAt: time.Now()}
	if err := repo.InsertEntry(context.Background(), &noCat); err == nil {
		t.Fatal("empty category must not be inserted")
	}
}

func TestAggregateByCategoryOrdering(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now()

	// Same sums for "одежда" and "жилье" to exercise the name tiebreak;
	// insertion order deliberately scrambled.
	mustInsert(t, repo, 7, 500, "одежда", now)
	mustInsert(t, repo, 7, 2000, "еда", now)
	mustInsert(t, repo, 7, 500, "жилье", now)
	mustInsert(t, repo, 7, 1000, "еда", now)

	totals, err := repo.AggregateByCategory(context.Background(), 7, core.WindowWeek, now)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	want := []core.CategoryAmount{
		{Category: "еда", Amount: core.Money{Cents: 3000}},
		{Category: "жилье", Amount: core.Money{Cents: 500}},
		{Category: "одежда", Amount: core.Money{Cents: 500}},
	}
	if len(totals) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(totals), len(want), totals)
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Fatalf("row %d: got %+v, want %+v", i, totals[i], want[i])
		}
	}
}

func TestAggregateByCategoryWindows(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.Local)

	mustInsert(t, repo, 9, 100, "еда", now.AddDate(0, 0, -1))   // inside both windows
	mustInsert(t, repo, 9, 200, "еда", now.AddDate(0, 0, -10))  // this month, older than a week
	mustInsert(t, repo, 9, 400, "еда", now.AddDate(0, -2, 0))   // outside both

	week, err := repo.AggregateByCategory(context.Background(), 9, core.WindowWeek, now)
	if err != nil {
		t.Fatalf("weekly aggregate: %v", err)
	}
	if len(week) != 1 || week[0].Amount.Cents != 100 {
		t.Fatalf("weekly window wrong: %+v", week)
	}

	month, err := repo.AggregateByCategory(context.Background(), 9, core.WindowMonth, now)
	if err != nil {
		t.Fatalf("monthly aggregate: %v", err)
	}
	if len(month) != 1 || month[0].Amount.Cents != 300 {
		t.Fatalf("monthly window wrong: %+v", month)
	}
}

func TestAggregateByCategoryEmpty(t *testing.T) {
	repo := newTestRepo(t)

	totals, err := repo.AggregateByCategory(context.Background(), 1, core.WindowWeek, time.Now())
	if err != nil {
		t.Fatalf("aggregate on empty table: %v", err)
	}
	if len(totals) != 0 {
		t.Fatalf("expected no rows, got %+v", totals)
	}
}

func TestUpsertLimitReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.UpsertLimit(ctx, core.MonthlyLimit{OwnerID: 7, Amount: core.Money{Cents: 200000}}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertLimit(ctx, core.MonthlyLimit{OwnerID: 7, Amount: core.Money{Cents: 50025}}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	limit, ok, err := repo.GetLimit(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("get limit: ok=%v err=%v", ok, err)
	}
	if limit.Amount.Cents != 50025 {
		t.Fatalf("limit = %d cents, want 50025 (replace, not accumulate)", limit.Amount.Cents)
	}
}

func TestGetLimitMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, ok, err := repo.GetLimit(context.Background(), 404)
	if err != nil {
		t.Fatalf("get missing limit: %v", err)
	}
	if ok {
		t.Fatal("missing limit reported as present")
	}
}

func TestDeleteAllForOwnerIsolation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	mustInsert(t, repo, 1, 100, "еда", now)
	mustInsert(t, repo, 2, 200, "еда", now)
	if err := repo.UpsertLimit(ctx, core.MonthlyLimit{OwnerID: 1, Amount: core.Money{Cents: 1000}}); err != nil {
		t.Fatalf("upsert limit: %v", err)
	}
	if err := repo.UpsertLimit(ctx, core.MonthlyLimit{OwnerID: 2, Amount: core.Money{Cents: 2000}}); err != nil {
		t.Fatalf("upsert limit: %v", err)
	}

	if err := repo.DeleteAllForOwner(ctx, 1); err != nil {
		t.Fatalf("delete owner 1: %v", err)
	}

	gone, err := repo.AggregateByCategory(ctx, 1, core.WindowWeek, now)
	if err != nil || len(gone) != 0 {
		t.Fatalf("owner 1 data should be gone: %+v err=%v", gone, err)
	}
	if _, ok, _ := repo.GetLimit(ctx, 1); ok {
		t.Fatal("owner 1 limit should be gone")
	}

	kept, err := repo.AggregateByCategory(ctx, 2, core.WindowWeek, now)
	if err != nil || len(kept) != 1 || kept[0].Amount.Cents != 200 {
		t.Fatalf("owner 2 data must survive: %+v err=%v", kept, err)
	}
	if _, ok, _ := repo.GetLimit(ctx, 2); !ok {
		t.Fatal("owner 2 limit must survive")
	}

	// Deleting again with nothing left is still a success.
	if err := repo.DeleteAllForOwner(ctx, 1); err != nil {
		t.Fatalf("repeat delete must be a no-op success: %v", err)
	}
}
