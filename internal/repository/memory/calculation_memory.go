package memory

import (
	"context"
	"database/sql"
	"sync"

	"emicalc/internal/model"
	"emicalc/internal/repository"
)

// CalculationMemory is an in-memory implementation of
// repository.CalculationRepository, used when no database is configured so
// the service still runs as a single self-contained process. History lives
// for the lifetime of the process only.
//
// It returns sql.ErrNoRows for missing rows so callers handle both
// implementations identically.
type CalculationMemory struct {
	mu sync.RWMutex
	// order holds IDs newest-first; items is the backing store.
	order []string
	items map[string]model.Calculation
}

// NewCalculationMemory creates an empty in-memory repository.
func NewCalculationMemory() *CalculationMemory {
	return &CalculationMemory{
		items: make(map[string]model.Calculation),
	}
}

var _ repository.CalculationRepository = (*CalculationMemory)(nil)

// Create stores a copy of the calculation.
func (r *CalculationMemory) Create(_ context.Context, calc *model.Calculation) (*model.Calculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *calc
	if _, ok := r.items[stored.ID]; !ok {
		r.order = append([]string{stored.ID}, r.order...)
	}
	r.items[stored.ID] = stored

	out := stored
	return &out, nil
}

// FindByID returns a calculation by its ID.
func (r *CalculationMemory) FindByID(_ context.Context, id string) (*model.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calc, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := calc
	return &out, nil
}

// List returns a page of calculations newest-first and the total count.
func (r *CalculationMemory) List(_ context.Context, pq repository.PageQuery) (*repository.PageResult[model.Calculation], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.order)
	items := make([]model.Calculation, 0, pq.Limit)

	for i := pq.Offset; i < total && len(items) < pq.Limit; i++ {
		items = append(items, r.items[r.order[i]])
	}

	return &repository.PageResult[model.Calculation]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a calculation by ID.
func (r *CalculationMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
