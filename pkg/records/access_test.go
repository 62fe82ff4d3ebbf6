package records

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite"
)

type testRecord struct {
	ID   string `db:"id" json:"id" goqu:"skipupdate"`
	Name string `db:"name" json:"name"`
}

func newTestAccess(t *testing.T) *Access[testRecord] {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE items (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return NewAccess[testRecord](db, "sqlite3", "items")
}

func TestAccessRoundtrip(t *testing.T) {
	access := newTestAccess(t)
	ctx := context.Background()

	if problem := access.Add(ctx, testRecord{ID: "1", Name: "first"}, nil); problem != nil {
		t.Fatalf("add failed: %v", problem.Title)
	}
	if problem := access.Add(ctx, testRecord{ID: "2", Name: "second"}, nil); problem != nil {
		t.Fatalf("add failed: %v", problem.Title)
	}

	items, err := access.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	item, err := access.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if item.Name != "first" {
		t.Errorf("unexpected name: %s", item.Name)
	}

	if problem := access.Update(ctx, "1", testRecord{ID: "1", Name: "renamed"}, nil); problem != nil {
		t.Fatalf("update failed: %v", problem.Title)
	}
	item, err = access.GetByID(ctx, "1")
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if item.Name != "renamed" {
		t.Errorf("unexpected name after update: %s", item.Name)
	}

	if problem := access.Delete(ctx, "1", nil); problem != nil {
		t.Fatalf("delete failed: %v", problem.Title)
	}
	if _, err := access.GetByID(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAccessNotFound(t *testing.T) {
	access := newTestAccess(t)
	ctx := context.Background()

	if _, err := access.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	problem := access.Update(ctx, "missing", testRecord{ID: "missing", Name: "x"}, nil)
	if problem == nil || problem.Status != http.StatusNotFound {
		t.Errorf("expected status 404 for update, got %+v", problem)
	}

	problem = access.Delete(ctx, "missing", nil)
	if problem == nil || problem.Status != http.StatusNotFound {
		t.Errorf("expected status 404 for delete, got %+v", problem)
	}
}

func TestAccessRuleEvaluation(t *testing.T) {
	access := newTestAccess(t)
	ctx := context.Background()

	firstProblem := NewProblem("first rule failed", http.StatusBadRequest)
	secondCalled := false

	rules := []Rule{
		RuleFunc(func(ctx context.Context) *Problem { return firstProblem }),
		RuleFunc(func(ctx context.Context) *Problem {
			secondCalled = true
			return nil
		}),
	}

	problem := access.Add(ctx, testRecord{ID: "1", Name: "x"}, rules)
	if problem != firstProblem {
		t.Fatalf("expected first rule's problem, got %+v", problem)
	}
	if secondCalled {
		t.Error("rules after the first failure should not run")
	}
	if _, err := access.GetByID(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Error("aborted add should not write the record")
	}

	passing := []Rule{
		RuleFunc(func(ctx context.Context) *Problem { return nil }),
	}
	if problem := access.Add(ctx, testRecord{ID: "1", Name: "x"}, passing); problem != nil {
		t.Fatalf("add with passing rules failed: %v", problem.Title)
	}
}

func TestAccessStorageFailure(t *testing.T) {
	access := newTestAccess(t)
	ctx := context.Background()

	if problem := access.Add(ctx, testRecord{ID: "1", Name: "x"}, nil); problem != nil {
		t.Fatalf("add failed: %v", problem.Title)
	}

	// primary key violation surfaces as an internal problem
	problem := access.Add(ctx, testRecord{ID: "1", Name: "y"}, nil)
	if problem == nil || problem.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %+v", problem)
	}
}
