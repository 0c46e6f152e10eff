package catalog

type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog is an immutable, ordered list of products. The zero value is an
// empty catalog.
type Catalog struct {
	products []Product
}

func NewCatalog(products ...Product) Catalog {
	return Catalog{products: append([]Product(nil), products...)}
}

// DefaultCatalog is the fixed catalog the service is started with.
func DefaultCatalog() Catalog {
	return NewCatalog(
		Product{ID: 1, Name: "Laptop", Price: 1200},
		Product{ID: 2, Name: "Mouse", Price: 25},
		Product{ID: 3, Name: "Keyboard", Price: 45},
	)
}

// List returns every product in definition order. The slice is a copy.
func (c Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c Catalog) Len() int { return len(c.products) }
