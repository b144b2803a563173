package domain

// Size is a single stock entry of a product. Size names are unique within
// one product's size list.
type Size struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// Product represents a catalog item sold by the storefront
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"` // URL or data-URI, max 5MB
	Price float64 `json:"price"` // price in main currency units
	Sizes []Size  `json:"sizes"`
}

// FindSize returns the index of the named size entry, -1 when absent.
func (p *Product) FindSize(name string) int {
	for i := range p.Sizes {
		if p.Sizes[i].Name == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can edit drafts without touching
// the stored record.
func (p Product) Clone() Product {
	cp := p
	cp.Sizes = make([]Size, len(p.Sizes))
	copy(cp.Sizes, p.Sizes)
	return cp
}
