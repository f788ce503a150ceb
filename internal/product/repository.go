// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/frohlich71/creator-builds-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByASIN(ctx context.Context, asin string) (*Product, error)
	SearchByTitle(
		ctx context.Context,
		query string,
		limit int,
	) ([]SearchResult, error)
	BulkInsert(ctx context.Context, products []*Product) (*BulkResult, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

type postgresRepository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &postgresRepository{db: db}
}

const selectProductQuery = `
	SELECT
		id, asin, title, img_url, product_url, stars, reviews,
		price, list_price, category_id, is_best_seller
	FROM products`

const insertProductQuery = `
	INSERT INTO products (
		id, asin, title, img_url, product_url, stars, reviews,
		price, list_price, category_id, is_best_seller
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func (r *postgresRepository) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, insertProductQuery,
		p.ID, p.ASIN, p.Title, p.ImgURL, p.ProductURL, p.Stars, p.Reviews,
		p.Price, p.ListPrice, p.CategoryID, p.IsBestSeller,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("asin %q: %w", p.ASIN, core.ErrDuplicateKey)
		}
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByASIN(
	ctx context.Context,
	asin string,
) (*Product, error) {
	query := selectProductQuery + `
	WHERE asin = $1`

	var p Product
	err := r.db.GetContext(ctx, &p, query, asin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get product by asin: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) SearchByTitle(
	ctx context.Context,
	query string,
	limit int,
) ([]SearchResult, error) {
	q := `
		SELECT asin, title, product_url, img_url
		FROM products
		WHERE title ILIKE $1
		ORDER BY title
		LIMIT $2`

	pattern := "%" + escapeLike(query) + "%"

	var results []SearchResult
	if err := r.db.SelectContext(ctx, &results, q, pattern, limit); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	return results, nil
}

// BulkInsert writes rows one at a time so a duplicate key or bad row only
// costs that row, not the batch.
func (r *postgresRepository) BulkInsert(
	ctx context.Context,
	products []*Product,
) (*BulkResult, error) {
	result := &BulkResult{}

	for _, p := range products {
		_, err := r.db.ExecContext(ctx, insertProductQuery,
			p.ID, p.ASIN, p.Title, p.ImgURL, p.ProductURL, p.Stars,
			p.Reviews, p.Price, p.ListPrice, p.CategoryID, p.IsBestSeller,
		)
		if err != nil {
			result.Failed++
			if core.IsDuplicateKeyError(err) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("asin %s: duplicate key", p.ASIN))
			} else {
				result.Errors = append(result.Errors,
					fmt.Sprintf("asin %s: %v", p.ASIN, err))
			}
			continue
		}
		result.Inserted++
	}

	return result, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM products`)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("delete all products: %w", err)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
