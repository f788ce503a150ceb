// AngelaMos | 2026
// entity.go

package product

// Product is one catalog row, keyed by its ASIN business key. Rows are
// immutable once created; there is no update path.
type Product struct {
	ID           string  `db:"id"             json:"id"`
	ASIN         string  `db:"asin"           json:"asin"`
	Title        string  `db:"title"          json:"title"`
	ImgURL       *string `db:"img_url"        json:"imgUrl,omitempty"`
	ProductURL   *string `db:"product_url"    json:"productURL,omitempty"`
	Stars        float64 `db:"stars"          json:"stars"`
	Reviews      int64   `db:"reviews"        json:"reviews"`
	Price        float64 `db:"price"          json:"price"`
	ListPrice    float64 `db:"list_price"     json:"listPrice"`
	CategoryID   int     `db:"category_id"    json:"category_id"`
	IsBestSeller bool    `db:"is_best_seller" json:"isBestSeller"`
}

// SearchResult is the projection returned by title search.
type SearchResult struct {
	ASIN       string  `db:"asin"        json:"asin"`
	Title      string  `db:"title"       json:"title"`
	ProductURL *string `db:"product_url" json:"productURL,omitempty"`
	ImgURL     *string `db:"img_url"     json:"imgUrl,omitempty"`
}
