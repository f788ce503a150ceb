// AngelaMos | 2026
// dto.go

package setup

// EquipmentSpec is one equipment item in a create/update payload. The
// optional asin is a catalog business key, resolved to a product id at
// write time; an unknown asin is tolerated, not an error.
type EquipmentSpec struct {
	Name     string  `json:"name"               validate:"required,min=1,max=200"`
	Nickname *string `json:"nickname,omitempty" validate:"omitempty,max=200"`
	Model    *string `json:"model,omitempty"    validate:"omitempty,max=200"`
	Brand    *string `json:"brand,omitempty"    validate:"omitempty,max=200"`
	Link     *string `json:"link,omitempty"     validate:"omitempty,url,max=2048"`
	Icon     *string `json:"icon,omitempty"     validate:"omitempty,max=200"`
	ASIN     *string `json:"asin,omitempty"     validate:"omitempty,max=20"`
}

type CreateSetupRequest struct {
	Name       string          `json:"name"       validate:"required,min=1,max=200"`
	OwnerName  string          `json:"ownerName"  validate:"required"`
	Equipments []EquipmentSpec `json:"equipments" validate:"omitempty,dive"`
}

// UpdateSetupRequest carries the same shape as create: an update is a full
// replace of the name, owner, and equipment set.
type UpdateSetupRequest struct {
	Name       string          `json:"name"       validate:"required,min=1,max=200"`
	OwnerName  string          `json:"ownerName"  validate:"required"`
	Equipments []EquipmentSpec `json:"equipments" validate:"omitempty,dive"`
}
