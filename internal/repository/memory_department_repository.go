package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spec-kit/reference-data-service/internal/domain"
)

type memoryDepartmentRepository struct {
	mu     sync.RWMutex
	rows   map[int64]domain.Department
	nextID atomic.Int64
}

// NewMemoryDepartmentRepository returns a process-local store, used when no
// database is configured and in tests.
func NewMemoryDepartmentRepository() DepartmentRepository {
	return &memoryDepartmentRepository{rows: make(map[int64]domain.Department)}
}

func (r *memoryDepartmentRepository) List(_ context.Context, offset, limit int, sort domain.Sort) ([]domain.Department, int64, error) {
	for _, o := range sort {
		if !domain.IsSortableDepartmentProperty(o.Property) {
			return nil, 0, fmt.Errorf("unsupported sort property %q", o.Property)
		}
	}

	r.mu.RLock()
	all := make([]domain.Department, 0, len(r.rows))
	for _, dept := range r.rows {
		all = append(all, dept)
	}
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b domain.Department) int {
		return compareDepartments(a, b, sort)
	})

	total := int64(len(all))
	if offset < 0 || offset >= len(all) {
		return []domain.Department{}, total, nil
	}
	end := len(all)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return slices.Clone(all[offset:end]), total, nil
}

func (r *memoryDepartmentRepository) Get(_ context.Context, id int64) (*domain.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dept, ok := r.rows[id]
	if !ok {
		return nil, ErrDepartmentNotFound
	}
	return &dept, nil
}

func (r *memoryDepartmentRepository) Put(_ context.Context, dept *domain.Department) (*domain.Department, error) {
	saved := *dept
	if saved.ID == 0 {
		saved.ID = r.nextID.Add(1)
	}

	r.mu.Lock()
	r.rows[saved.ID] = saved
	r.mu.Unlock()

	// keep the sequence ahead of explicitly upserted ids
	for {
		cur := r.nextID.Load()
		if saved.ID <= cur || r.nextID.CompareAndSwap(cur, saved.ID) {
			break
		}
	}
	return &saved, nil
}

func (r *memoryDepartmentRepository) Remove(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func compareDepartments(a, b domain.Department, sort domain.Sort) int {
	for _, o := range sort {
		var c int
		switch o.Property {
		case domain.DepartmentPropertyID:
			c = cmp.Compare(a.ID, b.ID)
		case domain.DepartmentPropertyName:
			c = strings.Compare(a.Name, b.Name)
		}
		if o.Direction == domain.Descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(a.ID, b.ID)
}
