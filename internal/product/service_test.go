// AngelaMos | 2026
// service_test.go

package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/frohlich71/creator-builds-api/internal/core"
)

type fakeRepo struct {
	byASIN map[string]*Product
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byASIN: make(map[string]*Product)}
}

func (r *fakeRepo) Create(_ context.Context, p *Product) error {
	if _, exists := r.byASIN[p.ASIN]; exists {
		return fmt.Errorf("asin %q: %w", p.ASIN, core.ErrDuplicateKey)
	}
	copied := *p
	r.byASIN[p.ASIN] = &copied
	return nil
}

func (r *fakeRepo) GetByASIN(
	_ context.Context,
	asin string,
) (*Product, error) {
	p, ok := r.byASIN[asin]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) SearchByTitle(
	_ context.Context,
	query string,
	limit int,
) ([]SearchResult, error) {
	var results []SearchResult
	for _, p := range r.byASIN {
		if len(results) >= limit {
			break
		}
		if strings.Contains(
			strings.ToLower(p.Title),
			strings.ToLower(query),
		) {
			results = append(results, SearchResult{
				ASIN:  p.ASIN,
				Title: p.Title,
			})
		}
	}
	return results, nil
}

func (r *fakeRepo) BulkInsert(
	ctx context.Context,
	products []*Product,
) (*BulkResult, error) {
	result := &BulkResult{}
	for _, p := range products {
		if err := r.Create(ctx, p); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("asin %s: duplicate key", p.ASIN))
			continue
		}
		result.Inserted++
	}
	return result, nil
}

func (r *fakeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byASIN)), nil
}

func (r *fakeRepo) DeleteAll(_ context.Context) error {
	r.byASIN = make(map[string]*Product)
	return nil
}

func TestCreateDuplicateASIN(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	req := CreateProductRequest{ASIN: "B001", Title: "Mic"}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, req)
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("second create err = %v, want ErrDuplicateKey", err)
	}
}

func TestBulkCreateDeduplicatesByASIN(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	result, err := svc.BulkCreate(context.Background(),
		[]CreateProductRequest{
			{ASIN: "B001", Title: "Mic first"},
			{ASIN: "B002", Title: "Arm"},
			{ASIN: "B001", Title: "Mic duplicate"},
		})
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}

	if result.Inserted != 2 {
		t.Errorf("inserted = %d, want 2", result.Inserted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 0 {
		t.Errorf("failed = %d, want 0", result.Failed)
	}

	// first occurrence wins
	kept, err := svc.GetByASIN(context.Background(), "B001")
	if err != nil {
		t.Fatalf("GetByASIN: %v", err)
	}
	if kept.Title != "Mic first" {
		t.Errorf("kept title = %q, want first occurrence", kept.Title)
	}
}

func TestBulkCreateTolerantOfExistingRows(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx,
		CreateProductRequest{ASIN: "B001", Title: "Mic"}); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	result, err := svc.BulkCreate(ctx, []CreateProductRequest{
		{ASIN: "B001", Title: "Mic again"},
		{ASIN: "B002", Title: "Arm"},
	})
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}

	if result.Inserted != 1 || result.Failed != 1 {
		t.Errorf("inserted/failed = %d/%d, want 1/1",
			result.Inserted, result.Failed)
	}
	if len(result.Errors) != 1 {
		t.Errorf("errors = %d, want 1", len(result.Errors))
	}
}

func TestSearchShortQueryReturnsEmpty(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx,
		CreateProductRequest{ASIN: "B001", Title: "M"}); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	for _, q := range []string{"", "m"} {
		results, err := svc.Search(ctx, q, 10)
		if err != nil {
			t.Fatalf("Search(%q): %v", q, err)
		}
		if len(results) != 0 {
			t.Errorf("Search(%q) = %d results, want 0", q, len(results))
		}
	}
}

func TestSearchDefaultsLimit(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for i := range 15 {
		req := CreateProductRequest{
			ASIN:  fmt.Sprintf("B%03d", i),
			Title: fmt.Sprintf("Microphone %d", i),
		}
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("seed create %d: %v", i, err)
		}
	}

	results, err := svc.Search(ctx, "microphone", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 10 {
		t.Errorf("results = %d, want default limit 10", len(results))
	}
}
