// Package ordering records customer orders. Orders are append-only: nothing
// in the system edits or deletes one once placed.
package ordering

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"instashop/internal/catalog"
	"instashop/internal/domain"
	"instashop/internal/store"
)

// Recorder places orders. The order append and the stock decrement run in
// one store transaction, so a failed commit leaves neither applied.
type Recorder struct {
	store         store.Store
	node          *snowflake.Node
	snapshotPrice bool
	now           func() time.Time
}

func NewRecorder(st store.Store, node *snowflake.Node, snapshotPrice bool) *Recorder {
	return &Recorder{
		store:         st,
		node:          node,
		snapshotPrice: snapshotPrice,
		now:           time.Now,
	}
}

// WithClock overrides the timestamp source (tests).
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// PlaceOrder validates the request, snapshots the product name and size,
// appends the order and decrements the chosen size's stock.
func (r *Recorder) PlaceOrder(productID, size, username string) (domain.Order, error) {
	size = strings.TrimSpace(size)
	username = strings.TrimSpace(username)
	if size == "" || username == "" {
		return domain.Order{}, domain.ErrInvalidOrderInput
	}

	var order domain.Order
	err := r.store.Update(func(st *store.State) error {
		var product *domain.Product
		for i := range st.Products {
			if st.Products[i].ID == productID {
				product = &st.Products[i]
				break
			}
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		j := product.FindSize(size)
		if j < 0 {
			return domain.ErrSizeNotFound
		}
		if product.Sizes[j].Stock == 0 {
			return domain.ErrOutOfStock
		}

		order = domain.Order{
			ID:                r.node.Generate().String(),
			ProductID:         product.ID,
			ProductName:       product.Name,
			Size:              size,
			InstagramUsername: username,
			OrderDate:         r.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		}
		if r.snapshotPrice {
			price := product.Price
			order.UnitPrice = &price
		}

		st.Orders = append(st.Orders, order)
		return catalog.ApplyStockDelta(st, productID, size, -1)
	})
	if err != nil {
		return domain.Order{}, err
	}

	zap.L().Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("product", order.ProductName),
		zap.String("size", order.Size),
		zap.String("user", order.InstagramUsername))
	return order, nil
}

// List returns all orders in insertion order.
func (r *Recorder) List() ([]domain.Order, error) {
	return r.store.Orders()
}
