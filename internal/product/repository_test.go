// AngelaMos | 2026
// repository_test.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/frohlich71/creator-builds-api/internal/core"
)

// recordingDB captures every query string handed to the database so tests
// can assert the composed SQL is well formed without a live connection.
type recordingDB struct {
	queries []string
}

func (d *recordingDB) record(query string) {
	d.queries = append(d.queries, query)
}

func (d *recordingDB) last() string {
	if len(d.queries) == 0 {
		return ""
	}
	return d.queries[len(d.queries)-1]
}

func (d *recordingDB) DriverName() string { return "pgx" }

func (d *recordingDB) Rebind(query string) string { return query }

func (d *recordingDB) BindNamed(
	query string,
	arg any,
) (string, []any, error) {
	return query, nil, nil
}

func (d *recordingDB) QueryContext(
	ctx context.Context,
	query string,
	args ...any,
) (*sql.Rows, error) {
	d.record(query)
	return nil, sql.ErrNoRows
}

func (d *recordingDB) QueryxContext(
	ctx context.Context,
	query string,
	args ...any,
) (*sqlx.Rows, error) {
	d.record(query)
	return nil, sql.ErrNoRows
}

func (d *recordingDB) QueryRowxContext(
	ctx context.Context,
	query string,
	args ...any,
) *sqlx.Row {
	d.record(query)
	return nil
}

func (d *recordingDB) ExecContext(
	ctx context.Context,
	query string,
	args ...any,
) (sql.Result, error) {
	d.record(query)
	return fakeResult(1), nil
}

func (d *recordingDB) GetContext(
	ctx context.Context,
	dest any,
	query string,
	args ...any,
) error {
	d.record(query)
	return sql.ErrNoRows
}

func (d *recordingDB) SelectContext(
	ctx context.Context,
	dest any,
	query string,
	args ...any,
) error {
	d.record(query)
	return nil
}

type fakeResult int64

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }

func (r fakeResult) RowsAffected() (int64, error) { return int64(r), nil }

var _ core.DBTX = (*recordingDB)(nil)

func flatten(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func TestGetByASINQueryShape(t *testing.T) {
	db := &recordingDB{}
	repo := NewRepository(db)

	_, err := repo.GetByASIN(context.Background(), "B000000001")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	q := flatten(db.last())
	if !strings.HasPrefix(q, "SELECT id, asin, title,") {
		t.Errorf("query does not start with a SELECT list: %q", q)
	}
	if !strings.Contains(q, "is_best_seller FROM products") {
		t.Errorf("column list and FROM clause not separated: %q", q)
	}
	if !strings.HasSuffix(q, "FROM products WHERE asin = $1") {
		t.Errorf("unexpected filter clause: %q", q)
	}
}

func TestSearchByTitleQueryShape(t *testing.T) {
	db := &recordingDB{}
	repo := NewRepository(db)

	if _, err := repo.SearchByTitle(context.Background(), "micro%", 10); err != nil {
		t.Fatalf("search: %v", err)
	}

	q := flatten(db.last())
	if !strings.Contains(q, "WHERE title ILIKE $1") {
		t.Errorf("expected ILIKE filter: %q", q)
	}
	if !strings.Contains(q, "LIMIT $2") {
		t.Errorf("expected parameterized limit: %q", q)
	}
}

func TestCreateUsesInsertQuery(t *testing.T) {
	db := &recordingDB{}
	repo := NewRepository(db)

	p := &Product{ID: "p-1", ASIN: "B000000001", Title: "Microphone"}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	q := flatten(db.last())
	if !strings.HasPrefix(q, "INSERT INTO products (") {
		t.Errorf("unexpected insert statement: %q", q)
	}
	if !strings.Contains(q, "VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)") {
		t.Errorf("unexpected value placeholders: %q", q)
	}
}
