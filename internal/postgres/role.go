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

// RoleRepository is the pgx-backed repository.RoleRepository.
type RoleRepository struct {
	store
}

// NewRoleRepository builds a RoleRepository bound to pool.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{store{pool: pool}}
}

var _ repository.RoleRepository = (*RoleRepository)(nil)

func (r *RoleRepository) scanRole(row pgx.Row) (*domain.Role, error) {
	var role domain.Role
	err := row.Scan(&role.ID, &role.Name, &role.Description, &role.SystemRole, &role.ParentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) loadPermissionIDs(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.q(ctx).Query(ctx, `SELECT permission_id FROM role_permissions WHERE role_id = $1`, roleID)
	if err != nil {
		return nil, fmt.Errorf("query role permissions: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan role permission: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const roleColumns = `id, name, description, system_role, parent_id`

// FindByID loads a role by ID, eagerly populating PermissionIDs.
func (r *RoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	row := r.q(ctx).QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id)
	role, err := r.scanRole(row)
	if err != nil {
		return nil, err
	}
	if role.PermissionIDs, err = r.loadPermissionIDs(ctx, role.ID); err != nil {
		return nil, err
	}
	return role, nil
}

// FindByName loads a role by its natural key.
func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	row := r.q(ctx).QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE name = $1`, name)
	role, err := r.scanRole(row)
	if err != nil {
		return nil, err
	}
	if role.PermissionIDs, err = r.loadPermissionIDs(ctx, role.ID); err != nil {
		return nil, err
	}
	return role, nil
}

// List returns a page of roles ordered by name.
func (r *RoleRepository) List(ctx context.Context, page repository.Pagination) (repository.Page[*domain.Role], error) {
	page = page.Normalize()

	var total int
	if err := r.q(ctx).QueryRow(ctx, `SELECT count(*) FROM roles`).Scan(&total); err != nil {
		return repository.Page[*domain.Role]{}, fmt.Errorf("count roles: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY name LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
	if err != nil {
		return repository.Page[*domain.Role]{}, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		role, err := r.scanRole(rows)
		if err != nil {
			return repository.Page[*domain.Role]{}, err
		}
		if role.PermissionIDs, err = r.loadPermissionIDs(ctx, role.ID); err != nil {
			return repository.Page[*domain.Role]{}, err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[*domain.Role]{}, err
	}

	return repository.Page[*domain.Role]{Items: roles, Total: total}, nil
}

// Insert persists a new role.
func (r *RoleRepository) Insert(ctx context.Context, role *domain.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO roles (id, name, description, system_role, parent_id)
		VALUES ($1,$2,$3,$4,$5)`,
		role.ID, role.Name, role.Description, role.SystemRole, role.ParentID)
	if dbpg.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// Update overwrites a role's name and description. Parent changes go through
// SetParent so the DAG check stays the sole entry point for that mutation.
func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE roles SET name=$2, description=$3 WHERE id = $1`,
		role.ID, role.Name, role.Description)
	if dbpg.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a role by ID. Callers must have already verified the role
// is deletable (internal/rbac.EnsureDeletable).
func (r *RoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetParent updates a role's parent_id. Callers must have already run
// internal/rbac.DetectCycle against the candidate parent.
func (r *RoleRepository) SetParent(ctx context.Context, roleID uuid.UUID, parentID *uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE roles SET parent_id = $2 WHERE id = $1`, roleID, parentID)
	if err != nil {
		return fmt.Errorf("set role parent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AttachPermission inserts a role_permissions row, tolerating a repeat attach.
func (r *RoleRepository) AttachPermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)
		ON CONFLICT (role_id, permission_id) DO NOTHING`, roleID, permissionID)
	if err != nil {
		return fmt.Errorf("attach permission: %w", err)
	}
	return nil
}

// DetachPermission removes a role_permissions row.
func (r *RoleRepository) DetachPermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1 AND permission_id = $2`,
		roleID, permissionID)
	if err != nil {
		return fmt.Errorf("detach permission: %w", err)
	}
	return nil
}

// Descendants returns every role that transitively inherits from roleID, by
// walking the parent_id chain with a recursive CTE.
func (r *RoleRepository) Descendants(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.q(ctx).Query(ctx, `
		WITH RECURSIVE descendants AS (
			SELECT id FROM roles WHERE parent_id = $1
			UNION ALL
			SELECT roles.id FROM roles JOIN descendants ON roles.parent_id = descendants.id
		)
		SELECT id FROM descendants`, roleID)
	if err != nil {
		return nil, fmt.Errorf("query role descendants: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan role descendant: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UserCount returns how many users currently hold roleID.
func (r *RoleRepository) UserCount(ctx context.Context, roleID uuid.UUID) (int, error) {
	var count int
	err := r.q(ctx).QueryRow(ctx, `SELECT count(*) FROM user_roles WHERE role_id = $1`, roleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count role users: %w", err)
	}
	return count, nil
}

// ChildCount returns how many roles have roleID as their direct parent.
func (r *RoleRepository) ChildCount(ctx context.Context, roleID uuid.UUID) (int, error) {
	var count int
	err := r.q(ctx).QueryRow(ctx, `SELECT count(*) FROM roles WHERE parent_id = $1`, roleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count role children: %w", err)
	}
	return count, nil
}
