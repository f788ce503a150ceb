// AngelaMos | 2026
// equipment_repository.go

package setup

import (
	"context"
	"fmt"

	"github.com/frohlich71/creator-builds-api/internal/core"
)

// EquipmentRepository persists equipment rows. Reads hydrate the product
// reference in the same query.
type EquipmentRepository interface {
	Insert(ctx context.Context, q core.DBTX, e *Equipment) error
	ListBySetup(ctx context.Context, setupID string) ([]EquipmentDetail, error)
	DeleteBySetup(ctx context.Context, q core.DBTX, setupID string) error
}

type postgresEquipmentRepository struct {
	db core.DBTX
}

func NewEquipmentRepository(db core.DBTX) EquipmentRepository {
	return &postgresEquipmentRepository{db: db}
}

func (r *postgresEquipmentRepository) Insert(
	ctx context.Context,
	q core.DBTX,
	e *Equipment,
) error {
	query := `
		INSERT INTO equipments (
			id, name, nickname, model, brand, link, icon,
			setup_id, "position", product_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := q.ExecContext(ctx, query,
		e.ID, e.Name, e.Nickname, e.Model, e.Brand, e.Link, e.Icon,
		e.SetupID, e.Position, e.ProductID,
	)
	if err != nil {
		return fmt.Errorf("insert equipment: %w", err)
	}

	return nil
}

// equipmentRow flattens the LEFT JOIN against products; the product columns
// are all nullable because the reference is optional.
type equipmentRow struct {
	Equipment
	PID           *string  `db:"p_id"`
	PASIN         *string  `db:"p_asin"`
	PTitle        *string  `db:"p_title"`
	PImgURL       *string  `db:"p_img_url"`
	PProductURL   *string  `db:"p_product_url"`
	PStars        *float64 `db:"p_stars"`
	PReviews      *int64   `db:"p_reviews"`
	PPrice        *float64 `db:"p_price"`
	PListPrice    *float64 `db:"p_list_price"`
	PCategoryID   *int     `db:"p_category_id"`
	PIsBestSeller *bool    `db:"p_is_best_seller"`
}

func (row *equipmentRow) toDetail() EquipmentDetail {
	detail := EquipmentDetail{
		ID:       row.ID,
		Name:     row.Name,
		Nickname: row.Nickname,
		Model:    row.Model,
		Brand:    row.Brand,
		Link:     row.Link,
		Icon:     row.Icon,
		SetupID:  row.SetupID,
	}

	if row.PID != nil {
		detail.Product = &ProductRef{
			ID:           *row.PID,
			ASIN:         deref(row.PASIN),
			Title:        deref(row.PTitle),
			ImgURL:       row.PImgURL,
			ProductURL:   row.PProductURL,
			Stars:        derefF(row.PStars),
			Reviews:      derefI(row.PReviews),
			Price:        derefF(row.PPrice),
			ListPrice:    derefF(row.PListPrice),
			CategoryID:   derefN(row.PCategoryID),
			IsBestSeller: row.PIsBestSeller != nil && *row.PIsBestSeller,
		}
	}

	return detail
}

func (r *postgresEquipmentRepository) ListBySetup(
	ctx context.Context,
	setupID string,
) ([]EquipmentDetail, error) {
	query := `
		SELECT
			e.id, e.name, e.nickname, e.model, e.brand, e.link, e.icon,
			e.setup_id, e."position", e.product_id,
			p.id AS p_id, p.asin AS p_asin, p.title AS p_title,
			p.img_url AS p_img_url, p.product_url AS p_product_url,
			p.stars AS p_stars, p.reviews AS p_reviews, p.price AS p_price,
			p.list_price AS p_list_price, p.category_id AS p_category_id,
			p.is_best_seller AS p_is_best_seller
		FROM equipments e
		LEFT JOIN products p ON p.id = e.product_id
		WHERE e.setup_id = $1
		ORDER BY e."position"`

	var rows []equipmentRow
	err := r.db.SelectContext(ctx, &rows, query, setupID)
	if err != nil {
		return nil, fmt.Errorf("list equipment by setup: %w", err)
	}

	details := make([]EquipmentDetail, 0, len(rows))
	for i := range rows {
		details = append(details, rows[i].toDetail())
	}

	return details, nil
}

func (r *postgresEquipmentRepository) DeleteBySetup(
	ctx context.Context,
	q core.DBTX,
	setupID string,
) error {
	query := `DELETE FROM equipments WHERE setup_id = $1`

	if _, err := q.ExecContext(ctx, query, setupID); err != nil {
		return fmt.Errorf("delete equipment by setup: %w", err)
	}

	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefF(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefI(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefN(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
