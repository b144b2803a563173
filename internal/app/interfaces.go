package app

import (
	"instashop/internal/catalog"
	"instashop/internal/export"
	"instashop/internal/ordering"
	"instashop/internal/store"
)

// StoreProvider provides access to the persistent store
type StoreProvider interface {
	Store() store.Store
}

// CatalogProvider provides the catalog manager
type CatalogProvider interface {
	Catalog() *catalog.Manager
}

// RecorderProvider provides the order recorder
type RecorderProvider interface {
	Recorder() *ordering.Recorder
}

// ExporterProvider provides the report exporter
type ExporterProvider interface {
	Exporter() *export.Exporter
}
