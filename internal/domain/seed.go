package domain

// Collection keys of the persistent store. Each collection is serialized
// and written back as a whole, never row by row.
const (
	CollectionProducts = "products"
	CollectionOrders   = "orders"
	CollectionSiteName = "siteName"
)

// DefaultSiteName is shown until the administrator renames the site.
const DefaultSiteName = "Sipariş Sistemi"

// MaxSiteNameLen matches the length cap of the rename form.
const MaxSiteNameLen = 20

// MaxImageBytes caps accepted product images (URL or data-URI).
const MaxImageBytes = 5 * 1024 * 1024

// SeedProducts returns the sample catalog installed on first boot when no
// products collection exists yet. Seeding happens exactly once.
func SeedProducts() []Product {
	return []Product{
		{
			ID:    "1",
			Name:  "Lacoste Kazak",
			Image: "https://akn-lacoste.a-cdn.akinoncloud.com/products/2023/01/11/194265/028d4453-1529-4377-bcec-0e329c8735af_size2000x2000_cropCenter.jpg",
			Price: 199.99,
			Sizes: []Size{
				{Name: "S", Stock: 10},
				{Name: "M", Stock: 15},
				{Name: "L", Stock: 12},
			},
		},
		{
			ID:    "2",
			Name:  "Kot Pantolon",
			Image: "https://images.unsplash.com/photo-1542272604-787c3835535d?w=800&auto=format&fit=crop&q=80",
			Price: 299.99,
			Sizes: []Size{
				{Name: "28", Stock: 8},
				{Name: "30", Stock: 12},
				{Name: "32", Stock: 10},
			},
		},
		{
			ID:    "3",
			Name:  "TNF Pantolon",
			Image: "https://media.karousell.com/media/photos/products/2024/2/23/_tnf_the_north_face_l5xl_windp_1708691420_f2228d16_progressive.jpg",
			Price: 750,
			Sizes: []Size{
				{Name: "S", Stock: 5},
				{Name: "M", Stock: 8},
				{Name: "L", Stock: 6},
				{Name: "XL", Stock: 4},
			},
		},
	}
}
