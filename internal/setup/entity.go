// AngelaMos | 2026
// entity.go

package setup

import "time"

type Setup struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	OwnerID   string    `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Equipment rows own the relation to their setup; the setup row keeps no
// id list, so the two directions can never drift apart.
type Equipment struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Nickname  *string `db:"nickname"`
	Model     *string `db:"model"`
	Brand     *string `db:"brand"`
	Link      *string `db:"link"`
	Icon      *string `db:"icon"`
	SetupID   string  `db:"setup_id"`
	Position  int     `db:"position"`
	ProductID *string `db:"product_id"`
}

// Owner is the projection of a user embedded in hydrated setup reads.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductRef is the catalog projection attached to equipment on read, and
// the result of resolving an ASIN at creation time.
type ProductRef struct {
	ID           string  `db:"id"            json:"id"`
	ASIN         string  `db:"asin"          json:"asin"`
	Title        string  `db:"title"         json:"title"`
	ImgURL       *string `db:"img_url"       json:"imgUrl,omitempty"`
	ProductURL   *string `db:"product_url"   json:"productURL,omitempty"`
	Stars        float64 `db:"stars"         json:"stars"`
	Reviews      int64   `db:"reviews"       json:"reviews"`
	Price        float64 `db:"price"         json:"price"`
	ListPrice    float64 `db:"list_price"    json:"listPrice"`
	CategoryID   int     `db:"category_id"   json:"category_id"`
	IsBestSeller bool    `db:"is_best_seller" json:"isBestSeller"`
}

// EquipmentDetail is an equipment row with its product reference resolved.
type EquipmentDetail struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Nickname *string     `json:"nickname,omitempty"`
	Model    *string     `json:"model,omitempty"`
	Brand    *string     `json:"brand,omitempty"`
	Link     *string     `json:"link,omitempty"`
	Icon     *string     `json:"icon,omitempty"`
	SetupID  string      `json:"setupId"`
	Product  *ProductRef `json:"product,omitempty"`
}

// SetupDetail is the hydrated aggregate returned by reads. Equipment is
// always freshly queried by setup id, in stored position order.
type SetupDetail struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	OwnerID    string            `json:"ownerId"`
	Owner      *Owner            `json:"owner,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	Equipments []EquipmentDetail `json:"equipments"`
}
