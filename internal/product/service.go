// AngelaMos | 2026
// service.go

package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/frohlich71/creator-builds-api/internal/setup"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func fromRequest(req CreateProductRequest) *Product {
	return &Product{
		ID:           uuid.New().String(),
		ASIN:         req.ASIN,
		Title:        req.Title,
		ImgURL:       req.ImgURL,
		ProductURL:   req.ProductURL,
		Stars:        req.Stars,
		Reviews:      req.Reviews,
		Price:        req.Price,
		ListPrice:    req.ListPrice,
		CategoryID:   req.CategoryID,
		IsBestSeller: req.IsBestSeller,
	}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateProductRequest,
) (*Product, error) {
	p := fromRequest(req)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// BulkCreate inserts a batch, deduplicating by ASIN first (first
// occurrence wins). The result itemizes per-row failures; the call itself
// only fails on a total breakdown.
func (s *Service) BulkCreate(
	ctx context.Context,
	reqs []CreateProductRequest,
) (*BulkResult, error) {
	seen := make(map[string]struct{}, len(reqs))
	products := make([]*Product, 0, len(reqs))
	skipped := 0

	for _, req := range reqs {
		if _, dup := seen[req.ASIN]; dup {
			skipped++
			continue
		}
		seen[req.ASIN] = struct{}{}
		products = append(products, fromRequest(req))
	}

	result, err := s.repo.BulkInsert(ctx, products)
	if err != nil {
		return nil, err
	}

	result.Skipped = skipped
	return result, nil
}

func (s *Service) GetByASIN(
	ctx context.Context,
	asin string,
) (*Product, error) {
	return s.repo.GetByASIN(ctx, asin)
}

// Search returns a catalog projection for title substring matches.
// Queries shorter than two characters return an empty slice rather than
// scanning the whole catalog.
func (s *Service) Search(
	ctx context.Context,
	query string,
	limit int,
) ([]SearchResult, error) {
	if len(query) < 2 {
		return []SearchResult{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	results, err := s.repo.SearchByTitle(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []SearchResult{}
	}

	return results, nil
}

// Count reports the catalog size. The seeder uses it to decide whether
// an import is needed.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// ResetCatalog drops every product row. Only the forced re-seed path
// calls this.
func (s *Service) ResetCatalog(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

// FindByASIN satisfies setup.ProductResolver.
func (s *Service) FindByASIN(
	ctx context.Context,
	asin string,
) (*setup.ProductRef, error) {
	p, err := s.repo.GetByASIN(ctx, asin)
	if err != nil {
		return nil, err
	}

	return &setup.ProductRef{
		ID:           p.ID,
		ASIN:         p.ASIN,
		Title:        p.Title,
		ImgURL:       p.ImgURL,
		ProductURL:   p.ProductURL,
		Stars:        p.Stars,
		Reviews:      p.Reviews,
		Price:        p.Price,
		ListPrice:    p.ListPrice,
		CategoryID:   p.CategoryID,
		IsBestSeller: p.IsBestSeller,
	}, nil
}

var _ setup.ProductResolver = (*Service)(nil)
