package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instashop/internal/domain"
)

func products() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Lacoste Kazak", Price: 199.99, Sizes: []domain.Size{{Name: "S", Stock: 10}}},
		{ID: "2", Name: "Kot Pantolon", Price: 299.99, Sizes: []domain.Size{{Name: "30", Stock: 12}}},
	}
}

func orders() []domain.Order {
	return []domain.Order{
		{ID: "a", ProductID: "1", ProductName: "Lacoste Kazak", Size: "S", InstagramUsername: "@alice", OrderDate: "2025-01-01T10:00:00.000Z"},
		{ID: "b", ProductID: "2", ProductName: "Kot Pantolon", Size: "30", InstagramUsername: "bora", OrderDate: "2025-01-02T10:00:00.000Z"},
		{ID: "c", ProductID: "1", ProductName: "Lacoste Kazak", Size: "S", InstagramUsername: "@alice", OrderDate: "2025-01-03T10:00:00.000Z"},
	}
}

func TestOrdersForProduct(t *testing.T) {
	r := New(products(), orders())

	got := r.OrdersForProduct("1")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID, "insertion order preserved")
	assert.Equal(t, 2, r.OrderCountForProduct("1"))
	assert.Equal(t, 0, r.OrderCountForProduct("nope"))
}

func TestPerUserSummaryResolvesCurrentPrices(t *testing.T) {
	r := New(products(), orders())

	sums := r.PerUserSummary()
	require.Len(t, sums, 2)
	assert.Equal(t, "@alice", sums[0].InstagramUsername, "first-seen order")
	assert.Equal(t, 2, sums[0].OrderCount)
	assert.InDelta(t, 399.98, sums[0].TotalSpent, 0.001)
	assert.Equal(t, "bora", sums[1].InstagramUsername)
	assert.InDelta(t, 299.99, sums[1].TotalSpent, 0.001)
}

func TestSummaryIsStaleAfterPriceEdit(t *testing.T) {
	ps := products()
	r := New(ps, orders())
	before := r.PerUserSummary()[0].TotalSpent

	ps[0].Price = 500 // admin edits the price after the orders were placed
	r = New(ps, orders())
	after := r.PerUserSummary()[0].TotalSpent

	assert.InDelta(t, 399.98, before, 0.001)
	assert.InDelta(t, 1000, after, 0.001, "summaries track the current price, not the placement-time price")
}

func TestDanglingReferenceAfterDelete(t *testing.T) {
	// product 1 deleted; both its orders remain
	r := New(products()[1:], orders())

	got := r.OrdersForProduct("1")
	require.Len(t, got, 2)
	assert.Equal(t, "Lacoste Kazak", got[0].ProductName, "denormalized snapshot survives")
	assert.Equal(t, "S", got[0].Size)
	assert.Equal(t, float64(0), r.ResolvePrice(got[0]), "price of a deleted product resolves to 0")

	stats := r.GlobalStatistics()
	assert.Equal(t, 3, stats.TotalOrders)
	assert.InDelta(t, 299.99, stats.TotalRevenue, 0.001)
}

func TestGlobalStatistics(t *testing.T) {
	r := New(products(), orders())
	stats := r.GlobalStatistics()
	assert.Equal(t, 3, stats.TotalOrders)
	assert.InDelta(t, 699.97, stats.TotalRevenue, 0.001)
	assert.Equal(t, 2, stats.UniqueUsers)
}

func TestSortedOrdersByDate(t *testing.T) {
	r := New(products(), orders())

	desc, err := r.SortedOrders(FieldOrderDate, "desc")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(desc))

	asc, err := r.SortedOrders(FieldOrderDate, "asc")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(asc))
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	same := []domain.Order{
		{ID: "x", ProductID: "1", Size: "S", InstagramUsername: "u1", OrderDate: "2025-01-01T10:00:00.000Z"},
		{ID: "y", ProductID: "1", Size: "S", InstagramUsername: "u2", OrderDate: "2025-01-01T10:00:00.000Z"},
		{ID: "z", ProductID: "1", Size: "S", InstagramUsername: "u3", OrderDate: "2025-01-01T10:00:00.000Z"},
	}
	r := New(products(), same)

	for _, dir := range []string{"asc", "desc"} {
		got, err := r.SortedOrders(FieldOrderDate, dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y", "z"}, ids(got), "ties keep insertion order (%s)", dir)
	}
}

func TestSortedOrdersByPriceAndStrings(t *testing.T) {
	r := New(products(), orders())

	byPrice, err := r.SortedOrders(FieldPrice, "asc")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, ids(byPrice))

	byUser, err := r.SortedOrders(FieldInstagramUsername, "asc")
	require.NoError(t, err)
	assert.Equal(t, "@alice", byUser[0].InstagramUsername)

	_, err = r.SortedOrders("bogus", "asc")
	assert.ErrorIs(t, err, ErrUnknownSortField)
}

func TestGroupOrdersByUser(t *testing.T) {
	r := New(products(), orders())

	groups, err := r.GroupOrdersByUser(FieldOrderDate, "desc")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// newest order first, so @alice's group leads
	assert.Equal(t, "@alice", groups[0].InstagramUsername)
	require.Len(t, groups[0].Orders, 2)
	assert.Equal(t, "c", groups[0].Orders[0].ID)
	assert.InDelta(t, 399.98, groups[0].Total, 0.001)
	assert.InDelta(t, 299.99, groups[1].Total, 0.001)
}

func ids(orders []domain.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}
