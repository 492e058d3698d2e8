package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/reference-data-service/internal/domain"
	apperrors "github.com/spec-kit/reference-data-service/pkg/util"
)

// ErrDepartmentNotFound is returned by Get when no row has the requested id.
var ErrDepartmentNotFound = fmt.Errorf("department %w", apperrors.ErrNotFound)

// DepartmentRepository is a paged CRUD store keyed by a surrogate id.
type DepartmentRepository interface {
	// List returns up to limit departments after skipping offset, plus the total count.
	List(ctx context.Context, offset, limit int, sort domain.Sort) ([]domain.Department, int64, error)
	Get(ctx context.Context, id int64) (*domain.Department, error)
	// Put inserts when dept.ID is zero and assigns a fresh id; otherwise it upserts by id.
	Put(ctx context.Context, dept *domain.Department) (*domain.Department, error)
	// Remove reports whether a row was deleted.
	Remove(ctx context.Context, id int64) (bool, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the Postgres-backed repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) List(ctx context.Context, offset, limit int, sort domain.Sort) ([]domain.Department, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count departments: %w", err)
	}

	orderBy, err := departmentOrderBy(sort)
	if err != nil {
		return nil, 0, err
	}
	query := `
        SELECT id, name
        FROM departments
        ORDER BY ` + orderBy + `
        LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Department, 0, limit)
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name); err != nil {
			return nil, 0, err
		}
		result = append(result, dept)
	}
	return result, total, rows.Err()
}

func (r *departmentRepository) Get(ctx context.Context, id int64) (*domain.Department, error) {
	const query = `
        SELECT id, name
        FROM departments WHERE id=$1`
	var dept domain.Department
	if err := r.pool.QueryRow(ctx, query, id).Scan(&dept.ID, &dept.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) Put(ctx context.Context, dept *domain.Department) (*domain.Department, error) {
	saved := domain.Department{}
	if dept.ID == 0 {
		const insert = `
        INSERT INTO departments (name)
        VALUES ($1)
        RETURNING id, name`
		if err := r.pool.QueryRow(ctx, insert, dept.Name).Scan(&saved.ID, &saved.Name); err != nil {
			return nil, fmt.Errorf("insert department: %w", err)
		}
		return &saved, nil
	}

	const upsert = `
        INSERT INTO departments (id, name)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
        RETURNING id, name`
	if err := r.pool.QueryRow(ctx, upsert, dept.ID, dept.Name).Scan(&saved.ID, &saved.Name); err != nil {
		return nil, fmt.Errorf("save department %d: %w", dept.ID, err)
	}
	return &saved, nil
}

func (r *departmentRepository) Remove(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete department %d: %w", id, err)
	}
	return cmd.RowsAffected() > 0, nil
}

// departmentOrderBy renders an ORDER BY list from whitelisted columns, always
// ending with id so equal keys keep a stable order across pages.
func departmentOrderBy(sort domain.Sort) (string, error) {
	parts := make([]string, 0, len(sort)+1)
	hasID := false
	for _, o := range sort {
		if !domain.IsSortableDepartmentProperty(o.Property) {
			return "", fmt.Errorf("unsupported sort property %q", o.Property)
		}
		dir := domain.Ascending
		if o.Direction == domain.Descending {
			dir = domain.Descending
		}
		parts = append(parts, o.Property+" "+string(dir))
		if o.Property == domain.DepartmentPropertyID {
			hasID = true
		}
	}
	if !hasID {
		parts = append(parts, "id ASC")
	}
	return strings.Join(parts, ", "), nil
}
