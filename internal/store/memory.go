package store

import (
	"sync"

	"instashop/internal/domain"
)

// MemoryStore is an in-memory Store used by tests and ephemeral runs. It
// mirrors the bolt store's semantics: writers serialize, reads hand out
// copies, the version bumps on every commit.
type MemoryStore struct {
	mu      sync.RWMutex
	state   State
	version uint64
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Update(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := State{
		Products:    cloneProducts(s.state.Products),
		Orders:      cloneOrders(s.state.Orders),
		SiteName:    s.state.SiteName,
		HasProducts: s.state.HasProducts,
	}
	if !s.state.HasProducts {
		draft.Products = nil
	}
	if err := fn(&draft); err != nil {
		return err
	}
	if draft.Products != nil {
		draft.HasProducts = true
	}
	s.state = draft
	s.version++
	return nil
}

func (s *MemoryStore) Products() ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.state.Products), nil
}

func (s *MemoryStore) SetProducts(products []domain.Product) error {
	return s.Update(func(st *State) error {
		st.Products = cloneProducts(products)
		st.HasProducts = true
		return nil
	})
}

func (s *MemoryStore) Orders() ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.state.Orders), nil
}

func (s *MemoryStore) SetOrders(orders []domain.Order) error {
	return s.Update(func(st *State) error {
		st.Orders = cloneOrders(orders)
		return nil
	})
}

func (s *MemoryStore) SiteName() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SiteName, nil
}

func (s *MemoryStore) SetSiteName(name string) error {
	return s.Update(func(st *State) error {
		st.SiteName = name
		return nil
	})
}

func (s *MemoryStore) Version() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
