// Package report computes read-only aggregations over a snapshot of the
// products and orders collections. Prices are resolved live through the
// order's product reference: editing or deleting a product after the fact
// changes (or zeroes) its contribution to every report. That staleness is
// the storefront's documented behavior; snapshot-price mode sidesteps it by
// recording a UnitPrice on the order.
package report

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"instashop/internal/domain"
	"instashop/internal/store"
)

// Sortable order fields.
const (
	FieldOrderDate         = "orderDate"
	FieldInstagramUsername = "instagramUsername"
	FieldProductName       = "productName"
	FieldSize              = "size"
	FieldPrice             = "price"
)

// ErrUnknownSortField rejects sort requests outside the known field set.
var ErrUnknownSortField = errors.New("unknown sort field")

// Report is an immutable snapshot taken from the store.
type Report struct {
	products []domain.Product
	orders   []domain.Order
	byID     map[string]int
}

// Snapshot reads both collections once and indexes products by id.
func Snapshot(st store.Store) (*Report, error) {
	products, err := st.Products()
	if err != nil {
		return nil, err
	}
	orders, err := st.Orders()
	if err != nil {
		return nil, err
	}
	return New(products, orders), nil
}

// New builds a report over in-memory collections.
func New(products []domain.Product, orders []domain.Order) *Report {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &Report{products: products, orders: orders, byID: byID}
}

// Product resolves an order's product against the current catalog; ok is
// false when the reference dangles.
func (r *Report) Product(productID string) (domain.Product, bool) {
	i, ok := r.byID[productID]
	if !ok {
		return domain.Product{}, false
	}
	return r.products[i], true
}

// ResolvePrice returns the order's price: the captured UnitPrice when
// present, otherwise the referenced product's current price, 0 when the
// product no longer exists.
func (r *Report) ResolvePrice(o domain.Order) float64 {
	if o.UnitPrice != nil {
		return *o.UnitPrice
	}
	if p, ok := r.Product(o.ProductID); ok {
		return p.Price
	}
	return 0
}

// OrdersForProduct filters by product id, preserving insertion order.
func (r *Report) OrdersForProduct(productID string) []domain.Order {
	var out []domain.Order
	for _, o := range r.orders {
		if o.ProductID == productID {
			out = append(out, o)
		}
	}
	return out
}

func (r *Report) OrderCountForProduct(productID string) int {
	return len(r.OrdersForProduct(productID))
}

// UserSummary aggregates one customer's orders.
type UserSummary struct {
	InstagramUsername string  `json:"instagramUsername"`
	OrderCount        int     `json:"orderCount"`
	TotalSpent        float64 `json:"totalSpent"`
}

// PerUserSummary groups orders by username in first-seen order. Usernames
// are not normalized: "@alice" and "alice" are distinct customers, exactly
// as they were entered.
func (r *Report) PerUserSummary() []UserSummary {
	index := make(map[string]int)
	var out []UserSummary
	for _, o := range r.orders {
		i, ok := index[o.InstagramUsername]
		if !ok {
			i = len(out)
			index[o.InstagramUsername] = i
			out = append(out, UserSummary{InstagramUsername: o.InstagramUsername})
		}
		out[i].OrderCount++
		out[i].TotalSpent += r.ResolvePrice(o)
	}
	return out
}

// Statistics summarizes the whole order book.
type Statistics struct {
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
	UniqueUsers  int     `json:"uniqueUsers"`
}

func (r *Report) GlobalStatistics() Statistics {
	users := make(map[string]struct{})
	stats := Statistics{TotalOrders: len(r.orders)}
	for _, o := range r.orders {
		users[o.InstagramUsername] = struct{}{}
		stats.TotalRevenue += r.ResolvePrice(o)
	}
	stats.UniqueUsers = len(users)
	return stats
}

// The storefront's customers are Turkish; string columns sort with the
// Turkish collation rules (dotted/dotless i and friends). A Collator is not
// safe for concurrent use, so each sort builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.Turkish)
}

func parseOrderDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05.000Z07:00", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SortedOrders returns a stably sorted copy of the order book. Equal keys
// keep their insertion order. Direction is "asc" or "desc"; anything else
// defaults to "desc", which is what the order screen opens with.
func (r *Report) SortedOrders(field, direction string) ([]domain.Order, error) {
	collator := newCollator()
	var compare func(a, b domain.Order) int
	switch field {
	case FieldOrderDate:
		compare = func(a, b domain.Order) int {
			ta, tb := parseOrderDate(a.OrderDate), parseOrderDate(b.OrderDate)
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			}
			return 0
		}
	case FieldInstagramUsername:
		compare = func(a, b domain.Order) int {
			return collator.CompareString(a.InstagramUsername, b.InstagramUsername)
		}
	case FieldProductName:
		compare = func(a, b domain.Order) int {
			return collator.CompareString(a.ProductName, b.ProductName)
		}
	case FieldSize:
		compare = func(a, b domain.Order) int {
			return collator.CompareString(a.Size, b.Size)
		}
	case FieldPrice:
		compare = func(a, b domain.Order) int {
			pa, pb := r.ResolvePrice(a), r.ResolvePrice(b)
			switch {
			case pa < pb:
				return -1
			case pa > pb:
				return 1
			}
			return 0
		}
	default:
		return nil, errors.Wrap(ErrUnknownSortField, field)
	}

	asc := direction == "asc"
	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j])
		if asc {
			return c < 0
		}
		return c > 0
	})
	return out, nil
}

// UserGroup is one customer's block of the grouped order view, the unit the
// per-user screenshot export rasterizes.
type UserGroup struct {
	InstagramUsername string         `json:"instagramUsername"`
	Orders            []domain.Order `json:"orders"`
	Total             float64        `json:"total"`
}

// GroupOrdersByUser buckets the sorted order list per username, keeping the
// sort order inside each bucket and bucketing users by first appearance.
func (r *Report) GroupOrdersByUser(field, direction string) ([]UserGroup, error) {
	sorted, err := r.SortedOrders(field, direction)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	var out []UserGroup
	for _, o := range sorted {
		i, ok := index[o.InstagramUsername]
		if !ok {
			i = len(out)
			index[o.InstagramUsername] = i
			out = append(out, UserGroup{InstagramUsername: o.InstagramUsername})
		}
		out[i].Orders = append(out[i].Orders, o)
		out[i].Total += r.ResolvePrice(o)
	}
	return out, nil
}
