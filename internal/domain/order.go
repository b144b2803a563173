package domain

// Order is an append-only purchase record. ProductName and Size are
// denormalized snapshots taken at placement time and survive later catalog
// edits. The price is not part of the snapshot: reports resolve it live
// through ProductID, unless UnitPrice was captured in snapshot-price mode.
type Order struct {
	ID                string   `json:"id"`
	ProductID         string   `json:"productId"`
	ProductName       string   `json:"productName"`
	Size              string   `json:"size"`
	InstagramUsername string   `json:"instagramUsername"`
	OrderDate         string   `json:"orderDate"` // ISO-8601, UTC
	UnitPrice         *float64 `json:"unitPrice,omitempty"`
}
