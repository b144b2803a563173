// Package store owns the canonical collections of the storefront. All other
// components fetch copies through a Store and write whole collections back;
// there is no row-level update.
package store

import (
	"github.com/pkg/errors"

	"instashop/internal/domain"
)

// ErrWriteFailed wraps any failure to commit state. Callers must treat the
// collections as unchanged when they receive it.
var ErrWriteFailed = errors.New("store write failed")

// State is the composite persisted state. HasProducts distinguishes an
// empty catalog from a catalog that was never written, which is what the
// one-time seeding keys off.
type State struct {
	Products    []domain.Product
	Orders      []domain.Order
	SiteName    string
	HasProducts bool
}

// Store is the persistence contract. Reads return copies; a missing or
// undecodable collection reads as empty and is never an error. Update runs
// fn against the current composite state and commits the result as one
// transaction: if fn returns an error, or the commit fails, nothing is
// written.
type Store interface {
	Products() ([]domain.Product, error)
	SetProducts(products []domain.Product) error
	Orders() ([]domain.Order, error)
	SetOrders(orders []domain.Order) error
	SiteName() (string, error)
	SetSiteName(name string) error

	Update(fn func(st *State) error) error

	// Version increments on every committed write. Exposed so callers can
	// detect concurrent modification between a read and a later write.
	Version() (uint64, error)

	Close() error
}

func cloneProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}
	return out
}

func cloneOrders(in []domain.Order) []domain.Order {
	out := make([]domain.Order, len(in))
	copy(out, in)
	return out
}
