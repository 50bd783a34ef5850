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

// UserRepository is the pgx-backed repository.UserRepository.
type UserRepository struct {
	store
}

// NewUserRepository builds a UserRepository bound to pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{store{pool: pool}}
}

var _ repository.UserRepository = (*UserRepository)(nil)

const userColumns = `id, email, password_hash, active, mfa_enabled, mfa_secret,
	recovery_codes, failed_attempts, last_failure_at, locked_until,
	password_set_at, created_at, updated_at`

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Active, &u.MFAEnabled, &u.MFASecret,
		&u.RecoveryCodes, &u.FailedAttempts, &u.LastFailureAt, &u.LockedUntil,
		&u.PasswordSetAt, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) loadRoleIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.q(ctx).Query(ctx, `SELECT role_id FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("query user roles: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindByID loads a user by ID, eagerly populating RoleIDs.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.q(ctx).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := r.scanUser(row)
	if err != nil {
		return nil, err
	}
	if u.RoleIDs, err = r.loadRoleIDs(ctx, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail loads a user by its natural key, eagerly populating RoleIDs.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.q(ctx).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := r.scanUser(row)
	if err != nil {
		return nil, err
	}
	if u.RoleIDs, err = r.loadRoleIDs(ctx, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// List returns a page of users ordered by creation time.
func (r *UserRepository) List(ctx context.Context, page repository.Pagination) (repository.Page[*domain.User], error) {
	page = page.Normalize()

	var total int
	if err := r.q(ctx).QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return repository.Page[*domain.User]{}, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
	if err != nil {
		return repository.Page[*domain.User]{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return repository.Page[*domain.User]{}, err
		}
		if u.RoleIDs, err = r.loadRoleIDs(ctx, u.ID); err != nil {
			return repository.Page[*domain.User]{}, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[*domain.User]{}, err
	}

	return repository.Page[*domain.User]{Items: users, Total: total}, nil
}

// Insert persists a new user. Callers leave ID zero-valued for the database
// default, or pre-assign one (e.g. for a deterministic seed).
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO users (id, email, password_hash, active, mfa_enabled, mfa_secret,
			recovery_codes, failed_attempts, last_failure_at, locked_until,
			password_set_at, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		user.ID, user.Email, user.PasswordHash, user.Active, user.MFAEnabled, user.MFASecret,
		user.RecoveryCodes, user.FailedAttempts, user.LastFailureAt, user.LockedUntil,
		user.PasswordSetAt, user.CreatedAt, user.UpdatedAt)
	if dbpg.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update overwrites every mutable user field. RoleIDs are not touched here —
// use AssignRole/RevokeRole for the join table.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.q(ctx).Exec(ctx, `
		UPDATE users SET email=$2, password_hash=$3, active=$4, mfa_enabled=$5, mfa_secret=$6,
			recovery_codes=$7, failed_attempts=$8, last_failure_at=$9, locked_until=$10,
			password_set_at=$11, updated_at=$12
		WHERE id = $1`,
		user.ID, user.Email, user.PasswordHash, user.Active, user.MFAEnabled, user.MFASecret,
		user.RecoveryCodes, user.FailedAttempts, user.LastFailureAt, user.LockedUntil,
		user.PasswordSetAt, user.UpdatedAt)
	if dbpg.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AssignRole inserts a user_roles row, tolerating a repeat assignment.
func (r *UserRepository) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING`, userID, roleID)
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// RevokeRole removes a user_roles row.
func (r *UserRepository) RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error {
	_, err := r.q(ctx).Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	if err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	return nil
}
