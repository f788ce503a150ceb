// AngelaMos | 2026
// dto.go

package product

type CreateProductRequest struct {
	ASIN         string  `json:"asin"                 validate:"required,min=1,max=20"`
	Title        string  `json:"title"                validate:"required,min=1"`
	ImgURL       *string `json:"imgUrl,omitempty"     validate:"omitempty,max=2048"`
	ProductURL   *string `json:"productURL,omitempty" validate:"omitempty,max=2048"`
	Stars        float64 `json:"stars"                validate:"omitempty,min=0,max=5"`
	Reviews      int64   `json:"reviews"              validate:"omitempty,min=0"`
	Price        float64 `json:"price"                validate:"omitempty,min=0"`
	ListPrice    float64 `json:"listPrice"            validate:"omitempty,min=0"`
	CategoryID   int     `json:"category_id"`
	IsBestSeller bool    `json:"isBestSeller"`
}

type BulkCreateRequest struct {
	Products []CreateProductRequest `json:"products" validate:"required,min=1,dive"`
}

// BulkResult reports per-item outcomes of a bulk insert. The operation
// itself always succeeds; failures are itemized, not fatal.
type BulkResult struct {
	Inserted int      `json:"inserted"`
	Failed   int      `json:"failed"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
