package domain

// Category represents a catalog category an entity is filed under. The
// snapshot carries its owning catalog by value; ancestor chains are walked
// through the category lookup, not embedded here.
type Category struct {
	UID          int64           `json:"uid"`
	Code         string          `json:"code"`
	ParentUID    int64           `json:"parent_uid,omitempty"` // 0 means root
	Catalog      Catalog         `json:"catalog"`
	Available    bool            `json:"available"`
	DisplayNames LocalizedString `json:"display_names,omitempty"`
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentUID == 0
}
