package repos

import (
	"encoding/json"
	"fmt"
	"os"

	"jivuma/internal/domain"
	applog "jivuma/internal/log"
)

// CatalogRepo holds the product list read once at startup. The storefront
// has no live catalog updates, so everything after LoadCatalog is a
// read-only lookup.
type CatalogRepo struct {
	products []domain.Product
	byID     map[int64]domain.Product
}

// LoadCatalog reads a JSON array of products. Records that fail
// validation (bad price, broken discount, duplicate id) are dropped
// with a log line rather than failing startup.
func LoadCatalog(path string) (*CatalogRepo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var raw []domain.Product
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	r := &CatalogRepo{byID: make(map[int64]domain.Product, len(raw))}
	for _, p := range raw {
		if !validProduct(p) || r.byID[p.ID].ID != 0 {
			applog.Warn(nil, "catalog.drop", map[string]any{"id": p.ID, "name": p.Name})
			continue
		}
		r.products = append(r.products, p)
		r.byID[p.ID] = p
	}
	return r, nil
}

func validProduct(p domain.Product) bool {
	if p.ID < 1 || p.Name == "" || !p.Price.IsPositive() {
		return false
	}
	if p.DiscountPrice != nil && !p.HasDiscount() {
		return false
	}
	return true
}

// List returns the catalog in file order.
func (r *CatalogRepo) List() []domain.Product {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *CatalogRepo) Get(id int64) (domain.Product, bool) {
	p, ok := r.byID[id]
	return p, ok
}
