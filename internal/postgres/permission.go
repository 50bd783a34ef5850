package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dbpg "github.com/juan-009/authguard/integration/database/pg"
	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/repository"
)

// PermissionRepository is the pgx-backed repository.PermissionRepository.
type PermissionRepository struct {
	store
}

// NewPermissionRepository builds a PermissionRepository bound to pool.
func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepository {
	return &PermissionRepository{store{pool: pool}}
}

var _ repository.PermissionRepository = (*PermissionRepository)(nil)

const permissionColumns = `id, name, description`

func (r *PermissionRepository) scan(row pgx.Row) (*domain.Permission, error) {
	var p domain.Permission
	err := row.Scan(&p.ID, &p.Name, &p.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan permission: %w", err)
	}
	return &p, nil
}

// FindByID loads a permission by ID.
func (r *PermissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Permission, error) {
	return r.scan(r.q(ctx).QueryRow(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE id = $1`, id))
}

// FindByName loads a permission by its natural key.
func (r *PermissionRepository) FindByName(ctx context.Context, name string) (*domain.Permission, error) {
	return r.scan(r.q(ctx).QueryRow(ctx, `SELECT `+permissionColumns+` FROM permissions WHERE name = $1`, name))
}

// List returns a page of permissions ordered by name.
func (r *PermissionRepository) List(ctx context.Context, page repository.Pagination) (repository.Page[*domain.Permission], error) {
	page = page.Normalize()

	var total int
	if err := r.q(ctx).QueryRow(ctx, `SELECT count(*) FROM permissions`).Scan(&total); err != nil {
		return repository.Page[*domain.Permission]{}, fmt.Errorf("count permissions: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, `SELECT `+permissionColumns+` FROM permissions ORDER BY name LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
	if err != nil {
		return repository.Page[*domain.Permission]{}, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	var perms []*domain.Permission
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return repository.Page[*domain.Permission]{}, err
		}
		perms = append(perms, p)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[*domain.Permission]{}, err
	}

	return repository.Page[*domain.Permission]{Items: perms, Total: total}, nil
}

// Insert persists a new permission.
func (r *PermissionRepository) Insert(ctx context.Context, p *domain.Permission) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.q(ctx).Exec(ctx, `INSERT INTO permissions (id, name, description) VALUES ($1,$2,$3)`,
		p.ID, p.Name, p.Description)
	if dbpg.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("insert permission: %w", err)
	}
	return nil
}

// Update overwrites a permission's name and description.
func (r *PermissionRepository) Update(ctx context.Context, p *domain.Permission) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE permissions SET name=$2, description=$3 WHERE id = $1`,
		p.ID, p.Name, p.Description)
	if dbpg.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("update permission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a permission by ID. role_permissions rows referencing it
// are removed by the schema's ON DELETE CASCADE.
func (r *PermissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
