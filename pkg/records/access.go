package records

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
)

// ErrNotFound is returned by GetByID when the id does not resolve.
var ErrNotFound = errors.New("record not found")

// Access is the generic CRUD gateway for one table. Mutating operations
// evaluate the supplied rules in order before touching the store; the
// first failing rule aborts the operation with its Problem.
type Access[T any] struct {
	db    *sqlx.DB
	gq    goqu.DialectWrapper
	table string
}

func NewAccess[T any](db *sqlx.DB, dialect string, table string) *Access[T] {
	return &Access[T]{
		db:    db,
		gq:    goqu.Dialect(dialect),
		table: table,
	}
}

func (a *Access[T]) GetAll(ctx context.Context) ([]T, error) {
	query, args, err := a.gq.From(a.table).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	items := []T{}
	if err := a.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (a *Access[T]) GetByID(ctx context.Context, id string) (T, error) {
	var item T
	query, args, err := a.gq.From(a.table).Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return item, err
	}
	if err := a.db.GetContext(ctx, &item, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, ErrNotFound
		}
		return item, err
	}
	return item, nil
}

func (a *Access[T]) Add(ctx context.Context, record T, rules []Rule) *Problem {
	if prob := runRules(ctx, rules); prob != nil {
		return prob
	}

	query, args, err := a.gq.Insert(a.table).Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return a.storageProblem(err)
	}
	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return a.storageProblem(err)
	}
	return nil
}

func (a *Access[T]) Update(ctx context.Context, id string, record T, rules []Rule) *Problem {
	if prob := runRules(ctx, rules); prob != nil {
		return prob
	}

	query, args, err := a.gq.Update(a.table).Set(record).Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return a.storageProblem(err)
	}
	result, err := a.db.ExecContext(ctx, query, args...)
	if err != nil {
		return a.storageProblem(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return a.storageProblem(err)
	}
	if affected < 1 {
		return NotFoundProblem("record not found")
	}
	return nil
}

func (a *Access[T]) Delete(ctx context.Context, id string, rules []Rule) *Problem {
	if _, err := a.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return NotFoundProblem("record not found")
		}
		return a.storageProblem(err)
	}

	if prob := runRules(ctx, rules); prob != nil {
		return prob
	}

	query, args, err := a.gq.Delete(a.table).Where(goqu.C("id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return a.storageProblem(err)
	}
	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return a.storageProblem(err)
	}
	return nil
}

func (a *Access[T]) storageProblem(err error) *Problem {
	slog.Error("storage operation failed", slog.String("table", a.table), slog.String("error", err.Error()))
	p := NewProblem("could not complete the request", http.StatusInternalServerError)
	p.AddFieldError(a.table, err.Error())
	return p
}
