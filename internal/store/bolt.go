package store

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"instashop/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	stateBucket = []byte("state")
	keyProducts = []byte(domain.CollectionProducts)
	keyOrders   = []byte(domain.CollectionOrders)
	keySiteName = []byte(domain.CollectionSiteName)
	keyVersion  = []byte("version")
)

// BoltStore persists the collections in a single local bbolt file, the
// storefront's stand-in for per-browser storage. bbolt serializes writers
// and holds an exclusive file lock, so two processes cannot interleave the
// read-modify-write cycle and drive stock negative.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the store file.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open store %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init store bucket")
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// decodeJSON unmarshals into v; a decode failure is logged and reported as
// absent, never as a fatal error.
func decodeJSON(key []byte, raw []byte, v interface{}) bool {
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		zap.L().Warn("undecodable collection, treating as empty",
			zap.String("collection", string(key)), zap.Error(err))
		return false
	}
	return true
}

func readState(b *bolt.Bucket) *State {
	st := &State{}
	var products []domain.Product
	if decodeJSON(keyProducts, b.Get(keyProducts), &products) {
		st.Products = products
		st.HasProducts = true
	}
	var orders []domain.Order
	if decodeJSON(keyOrders, b.Get(keyOrders), &orders) {
		st.Orders = orders
	}
	if raw := b.Get(keySiteName); raw != nil {
		st.SiteName = string(raw)
	}
	return st
}

func writeState(b *bolt.Bucket, st *State) error {
	rawOrders, err := json.Marshal(st.Orders)
	if err != nil {
		return err
	}
	// The products key is only materialized once something has written the
	// collection; first-boot seeding keys off its absence.
	if st.HasProducts || st.Products != nil {
		if st.Products == nil {
			st.Products = []domain.Product{}
		}
		rawProducts, err := json.Marshal(st.Products)
		if err != nil {
			return err
		}
		if err := b.Put(keyProducts, rawProducts); err != nil {
			return err
		}
	}
	if err := b.Put(keyOrders, rawOrders); err != nil {
		return err
	}
	if err := b.Put(keySiteName, []byte(st.SiteName)); err != nil {
		return err
	}
	version := decodeVersion(b.Get(keyVersion)) + 1
	return b.Put(keyVersion, encodeVersion(version))
}

func decodeVersion(raw []byte) uint64 {
	var v uint64
	for _, c := range raw {
		v = v<<8 | uint64(c)
	}
	return v
}

func encodeVersion(v uint64) []byte {
	raw := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		raw[i] = byte(v)
		v >>= 8
	}
	return raw
}

func (s *BoltStore) Update(fn func(st *State) error) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(stateBucket)
		st := readState(b)
		if err := fn(st); err != nil {
			return err
		}
		return writeState(b, st)
	})
	if err != nil {
		return err
	}
	return nil
}

func (s *BoltStore) view(fn func(st *State)) error {
	return s.db.View(func(tx *bolt.Tx) error {
		fn(readState(tx.Bucket(stateBucket)))
		return nil
	})
}

func (s *BoltStore) Products() ([]domain.Product, error) {
	var out []domain.Product
	err := s.view(func(st *State) { out = cloneProducts(st.Products) })
	return out, err
}

func (s *BoltStore) SetProducts(products []domain.Product) error {
	err := s.Update(func(st *State) error {
		st.Products = cloneProducts(products)
		st.HasProducts = true
		return nil
	})
	if err != nil {
		return errors.Wrap(ErrWriteFailed, err.Error())
	}
	return nil
}

func (s *BoltStore) Orders() ([]domain.Order, error) {
	var out []domain.Order
	err := s.view(func(st *State) { out = cloneOrders(st.Orders) })
	return out, err
}

func (s *BoltStore) SetOrders(orders []domain.Order) error {
	err := s.Update(func(st *State) error {
		st.Orders = cloneOrders(orders)
		return nil
	})
	if err != nil {
		return errors.Wrap(ErrWriteFailed, err.Error())
	}
	return nil
}

func (s *BoltStore) SiteName() (string, error) {
	var out string
	err := s.view(func(st *State) { out = st.SiteName })
	return out, err
}

func (s *BoltStore) SetSiteName(name string) error {
	err := s.Update(func(st *State) error {
		st.SiteName = name
		return nil
	})
	if err != nil {
		return errors.Wrap(ErrWriteFailed, err.Error())
	}
	return nil
}

func (s *BoltStore) Version() (uint64, error) {
	var v uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		v = decodeVersion(tx.Bucket(stateBucket).Get(keyVersion))
		return nil
	})
	return v, err
}

var _ Store = (*BoltStore)(nil)
