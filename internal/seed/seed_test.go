// AngelaMos | 2026
// seed_test.go

package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/frohlich71/creator-builds-api/internal/config"
	"github.com/frohlich71/creator-builds-api/internal/core"
	"github.com/frohlich71/creator-builds-api/internal/product"
)

type fakeProductRepo struct {
	byASIN map[string]*product.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byASIN: make(map[string]*product.Product)}
}

func (r *fakeProductRepo) Create(
	_ context.Context,
	p *product.Product,
) error {
	if _, exists := r.byASIN[p.ASIN]; exists {
		return fmt.Errorf("asin %q: %w", p.ASIN, core.ErrDuplicateKey)
	}
	r.byASIN[p.ASIN] = p
	return nil
}

func (r *fakeProductRepo) GetByASIN(
	_ context.Context,
	asin string,
) (*product.Product, error) {
	p, ok := r.byASIN[asin]
	if !ok {
		return nil, core.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) SearchByTitle(
	context.Context,
	string,
	int,
) ([]product.SearchResult, error) {
	return nil, nil
}

func (r *fakeProductRepo) BulkInsert(
	ctx context.Context,
	products []*product.Product,
) (*product.BulkResult, error) {
	result := &product.BulkResult{}
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

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byASIN)), nil
}

func (r *fakeProductRepo) DeleteAll(_ context.Context) error {
	r.byASIN = make(map[string]*product.Product)
	return nil
}

const csvHeader = "asin,title,imgUrl,productURL," +
	"stars,reviews,price,listPrice,category_id,isBestSeller\n"

func writeCSV(t *testing.T, rows string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "products.csv")
	if err := os.WriteFile(path, []byte(csvHeader+rows), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: slog.LevelError}))
}

func newImporter(
	repo *fakeProductRepo,
	cfg config.SeedConfig,
) *Importer {
	return NewImporter(cfg, product.NewService(repo), testLogger())
}

func TestRunFiltersDedupesAndInserts(t *testing.T) {
	// 5 rows: 2 share an asin, 1 has a category outside the allow-list.
	path := writeCSV(t,
		"B001,USB Mic,img,url,4.5,100,59.99,79.99,56,True\n"+
			"B001,USB Mic again,img,url,4.5,100,59.99,79.99,56,False\n"+
			"B002,Boom Arm,img,url,4.1,50,29.99,39.99,57,false\n"+
			"B003,Lawnmower,img,url,4.0,10,199.0,299.0,12,True\n"+
			"B002,Boom Arm dupe,img,url,4.1,50,29.99,39.99,57,true\n")

	repo := newFakeProductRepo()
	imp := newImporter(repo, config.SeedConfig{
		Enabled: true,
		Paths:   []string{path},
	})

	if err := imp.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(repo.byASIN) != 2 {
		t.Fatalf("products inserted = %d, want 2", len(repo.byASIN))
	}
	if repo.byASIN["B001"].Title != "USB Mic" {
		t.Errorf("kept title = %q, want first occurrence",
			repo.byASIN["B001"].Title)
	}
	if !repo.byASIN["B001"].IsBestSeller {
		t.Error(`"True" should coerce to best-seller`)
	}
	if repo.byASIN["B002"].IsBestSeller {
		t.Error(`"false" should not coerce to best-seller`)
	}
}

func TestRunCoercesMalformedNumerics(t *testing.T) {
	path := writeCSV(t,
		"B001,USB Mic,img,url,not-a-number,many,free,,56,nope\n")

	repo := newFakeProductRepo()
	imp := newImporter(repo, config.SeedConfig{
		Enabled: true,
		Paths:   []string{path},
	})

	if err := imp.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	p, ok := repo.byASIN["B001"]
	if !ok {
		t.Fatal("row with malformed numerics should still be inserted")
	}
	if p.Stars != 0 || p.Reviews != 0 || p.Price != 0 || p.ListPrice != 0 {
		t.Errorf("malformed numerics should coerce to zero, got %+v", p)
	}
	if p.IsBestSeller {
		t.Error("unrecognized boolean should coerce to false")
	}
}

func TestRunSkipsWhenDisabled(t *testing.T) {
	repo := newFakeProductRepo()
	imp := newImporter(repo, config.SeedConfig{Enabled: false})

	if err := imp.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.byASIN) != 0 {
		t.Error("disabled seeder must not insert anything")
	}
}

func TestRunSkipsWhenCatalogPopulated(t *testing.T) {
	path := writeCSV(t,
		"B002,Boom Arm,img,url,4.1,50,29.99,39.99,57,false\n")

	repo := newFakeProductRepo()
	repo.byASIN["B001"] = &product.Product{ASIN: "B001", Title: "Existing"}

	imp := newImporter(repo, config.SeedConfig{
		Enabled: true,
		Paths:   []string{path},
	})

	if err := imp.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(repo.byASIN) != 1 {
		t.Error("populated catalog without force must skip the import")
	}
}

func TestRunForceClearsAndReimports(t *testing.T) {
	path := writeCSV(t,
		"B002,Boom Arm,img,url,4.1,50,29.99,39.99,57,false\n")

	repo := newFakeProductRepo()
	repo.byASIN["B001"] = &product.Product{ASIN: "B001", Title: "Existing"}

	imp := newImporter(repo, config.SeedConfig{
		Enabled: true,
		Force:   true,
		Paths:   []string{path},
	})

	if err := imp.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, exists := repo.byASIN["B001"]; exists {
		t.Error("forced seed should clear the old catalog")
	}
	if _, exists := repo.byASIN["B002"]; !exists {
		t.Error("forced seed should import the CSV contents")
	}
}

func TestRunMissingCSVIsNotFatal(t *testing.T) {
	repo := newFakeProductRepo()
	imp := newImporter(repo, config.SeedConfig{
		Enabled: true,
		Paths:   []string{"/nonexistent/products.csv"},
	})

	if err := imp.Run(context.Background()); err != nil {
		t.Fatalf("missing CSV should not error, got %v", err)
	}
}
