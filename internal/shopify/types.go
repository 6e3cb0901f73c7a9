package shopify

// Collection is a remote collection listing record
type Collection struct {
	ID       int64  `json:"collection_id"`
	Title    string `json:"title"`
	BodyHTML string `json:"body_html"`
}

// Option declares which numbered option slot on a variant carries a
// dimension, e.g. {Name: "Color", Position: 2}
type Option struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Variant is a remote product variant record
type Variant struct {
	ID                int64   `json:"id"`
	SKU               string  `json:"sku"`
	Price             string  `json:"price"`
	Weight            float64 `json:"weight"`
	WeightUnit        string  `json:"weight_unit"`
	Option1           string  `json:"option1"`
	Option2           string  `json:"option2"`
	Option3           string  `json:"option3"`
	InventoryQuantity int     `json:"inventory_quantity"`
}

// Option returns the value in the 1-based option slot n, or "" when the slot
// is out of range
func (v Variant) Option(n int) string {
	switch n {
	case 1:
		return v.Option1
	case 2:
		return v.Option2
	case 3:
		return v.Option3
	}
	return ""
}

// Image is a remote product image record
type Image struct {
	Src string `json:"src"`
}

// Product is a remote product record; never persisted verbatim
type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	BodyHTML string    `json:"body_html"`
	Options  []Option  `json:"options"`
	Variants []Variant `json:"variants"`
	Images   []Image   `json:"images"`
}
