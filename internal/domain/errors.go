package domain

import "errors"

var (
	ErrInvalidProduct    = errors.New("product name is required and price must not be negative")
	ErrDuplicateSize     = errors.New("size names must be unique within a product")
	ErrProductNotFound   = errors.New("product not found")
	ErrSizeNotFound      = errors.New("size not found")
	ErrOutOfStock        = errors.New("size is out of stock")
	ErrInvalidOrderInput = errors.New("size and instagram username are required")
	ErrImageTooLarge     = errors.New("product image exceeds 5MB")
	ErrInvalidSiteName   = errors.New("site name must be 1-20 characters")
	ErrNoOrders          = errors.New("no orders recorded for this product")
)
