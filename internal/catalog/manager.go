// Package catalog implements the administrator's product operations:
// create/update/delete, stock adjustment and the one-time sample seeding.
package catalog

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"instashop/internal/domain"
	"instashop/internal/store"
)

// Manager mutates the product collection through an injected Store. Every
// mutation is a whole-collection write inside one store transaction.
type Manager struct {
	store store.Store
	node  *snowflake.Node
}

func NewManager(st store.Store, node *snowflake.Node) *Manager {
	return &Manager{store: st, node: node}
}

// validate applies the catalog boundary checks the storefront form used to
// leave to well-behaved callers.
func validate(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || p.Price < 0 {
		return domain.ErrInvalidProduct
	}
	if len(p.Image) > domain.MaxImageBytes {
		return domain.ErrImageTooLarge
	}
	seen := make(map[string]struct{}, len(p.Sizes))
	for i := range p.Sizes {
		name := strings.TrimSpace(p.Sizes[i].Name)
		if name == "" || p.Sizes[i].Stock < 0 {
			return domain.ErrInvalidProduct
		}
		if _, dup := seen[name]; dup {
			return domain.ErrDuplicateSize
		}
		seen[name] = struct{}{}
		p.Sizes[i].Name = name
	}
	return nil
}

// Create assigns a new unique id to the draft, appends it to the catalog
// and persists the whole collection.
func (m *Manager) Create(draft domain.Product) (domain.Product, error) {
	p := draft.Clone()
	if err := validate(&p); err != nil {
		return domain.Product{}, err
	}
	p.ID = m.node.Generate().String()

	err := m.store.Update(func(st *store.State) error {
		st.Products = append(st.Products, p)
		st.HasProducts = true
		return nil
	})
	if err != nil {
		return domain.Product{}, errors.Wrap(err, "create product")
	}
	zap.L().Info("product created", zap.String("id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// Update replaces the record with the given id in place. Unlike the
// storefront it replaces, an unknown id is an explicit error rather than a
// silent no-op.
func (m *Manager) Update(id string, fields domain.Product) (domain.Product, error) {
	p := fields.Clone()
	if err := validate(&p); err != nil {
		return domain.Product{}, err
	}
	p.ID = id

	err := m.store.Update(func(st *store.State) error {
		for i := range st.Products {
			if st.Products[i].ID == id {
				st.Products[i] = p
				return nil
			}
		}
		return domain.ErrProductNotFound
	})
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Delete removes the product. Orders referencing it are untouched: their
// denormalized name/size stay readable and their price resolves to 0.
func (m *Manager) Delete(id string) error {
	return m.store.Update(func(st *store.State) error {
		for i := range st.Products {
			if st.Products[i].ID == id {
				st.Products = append(st.Products[:i], st.Products[i+1:]...)
				return nil
			}
		}
		return domain.ErrProductNotFound
	})
}

// Get returns a single product by id.
func (m *Manager) Get(id string) (domain.Product, error) {
	products, err := m.store.Products()
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// List returns the catalog in insertion order.
func (m *Manager) List() ([]domain.Product, error) {
	return m.store.Products()
}

// AdjustStock applies delta to the named size. Stock never crosses zero:
// a decrement that would go negative fails with ErrOutOfStock and leaves
// everything unchanged.
func (m *Manager) AdjustStock(productID, sizeName string, delta int) error {
	return adjustStock(m.store, productID, sizeName, delta)
}

func adjustStock(st store.Store, productID, sizeName string, delta int) error {
	return st.Update(func(s *store.State) error {
		return ApplyStockDelta(s, productID, sizeName, delta)
	})
}

// ApplyStockDelta mutates a state draft inside an open transaction. The
// order recorder uses it to combine the stock decrement with the order
// append in a single commit.
func ApplyStockDelta(st *store.State, productID, sizeName string, delta int) error {
	for i := range st.Products {
		if st.Products[i].ID != productID {
			continue
		}
		j := st.Products[i].FindSize(sizeName)
		if j < 0 {
			return domain.ErrSizeNotFound
		}
		next := st.Products[i].Sizes[j].Stock + delta
		if next < 0 {
			return domain.ErrOutOfStock
		}
		st.Products[i].Sizes[j].Stock = next
		return nil
	}
	return domain.ErrProductNotFound
}

// Bootstrap installs the sample catalog and the default site name on first
// boot. It keys off the absence of the products collection, so an
// administrator emptying the catalog later does not retrigger it.
func (m *Manager) Bootstrap() error {
	return m.store.Update(func(st *store.State) error {
		if !st.HasProducts {
			st.Products = domain.SeedProducts()
			st.HasProducts = true
			zap.L().Info("seeded sample catalog", zap.Int("products", len(st.Products)))
		}
		if st.SiteName == "" {
			st.SiteName = domain.DefaultSiteName
		}
		return nil
	})
}

// SiteName returns the display name, falling back to the default.
func (m *Manager) SiteName() (string, error) {
	name, err := m.store.SiteName()
	if err != nil {
		return "", err
	}
	if name == "" {
		name = domain.DefaultSiteName
	}
	return name, nil
}

// SetSiteName validates and persists the display name.
func (m *Manager) SetSiteName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > domain.MaxSiteNameLen {
		return domain.ErrInvalidSiteName
	}
	return m.store.SetSiteName(name)
}
