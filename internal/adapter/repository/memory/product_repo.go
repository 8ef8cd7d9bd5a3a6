package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"github.com/google/uuid"
)

// ProductRepository keeps products in a map and evaluates predicates in process.
// It backs the "memory" storage driver and the usecase tests.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	now      func() time.Time
}

func NewProductRepository(seed ...*domain.Product) *ProductRepository {
	r := &ProductRepository{
		products: make(map[string]domain.Product, len(seed)),
		now:      time.Now,
	}
	for _, p := range seed {
		r.products[p.ID] = clone(p)
	}
	return r
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := r.now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	r.products[product.ID] = clone(product)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	out := clone(&p)
	return &out, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) Count(ctx context.Context, pred domain.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.products {
		if pred.Matches(&p) {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepository) Find(ctx context.Context, pred domain.Predicate, order domain.Sort, skip, limit int64) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	matched := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if pred.Matches(&p) {
			c := clone(&p)
			matched = append(matched, &c)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return order.Less(matched[i], matched[j]) })

	total := int64(len(matched))
	if skip < 0 {
		skip = 0
	}
	if skip >= total {
		return []*domain.Product{}, nil
	}
	end := total
	if limit > 0 && limit < total-skip {
		end = skip + limit
	}
	return matched[skip:end], nil
}

// Categories returns the distinct non-empty categories in ascending order.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range r.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

func clone(p *domain.Product) domain.Product {
	c := *p
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	return c
}
