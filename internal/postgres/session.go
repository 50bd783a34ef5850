package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/juan-009/authguard/internal/domain"
	"github.com/juan-009/authguard/internal/repository"
)

// SessionRepository is the pgx-backed repository.SessionRepository.
type SessionRepository struct {
	store
}

// NewSessionRepository builds a SessionRepository bound to pool.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{store{pool: pool}}
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

const sessionColumns = `id, principal_id, device_fingerprint, client_ip, last_activity_at, expires_at`

func (r *SessionRepository) scan(row pgx.Row) (*domain.ActiveSession, error) {
	var s domain.ActiveSession
	err := row.Scan(&s.ID, &s.PrincipalID, &s.DeviceFingerprint, &s.ClientIP, &s.LastActivityAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &s, nil
}

// FindByID loads a session by ID.
func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ActiveSession, error) {
	return r.scan(r.q(ctx).QueryRow(ctx, `SELECT `+sessionColumns+` FROM active_sessions WHERE id = $1`, id))
}

// ListByPrincipal returns every live session for a principal.
func (r *SessionRepository) ListByPrincipal(ctx context.Context, principalID uuid.UUID) ([]*domain.ActiveSession, error) {
	rows, err := r.q(ctx).Query(ctx, `SELECT `+sessionColumns+` FROM active_sessions WHERE principal_id = $1`, principalID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.ActiveSession
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Insert persists a new session.
func (r *SessionRepository) Insert(ctx context.Context, session *domain.ActiveSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO active_sessions (id, principal_id, device_fingerprint, client_ip, last_activity_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		session.ID, session.PrincipalID, session.DeviceFingerprint, session.ClientIP,
		session.LastActivityAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Touch updates a session's activity and expiry timestamps on token refresh.
func (r *SessionRepository) Touch(ctx context.Context, id uuid.UUID, lastActivityAt, expiresAt time.Time) error {
	tag, err := r.q(ctx).Exec(ctx, `UPDATE active_sessions SET last_activity_at=$2, expires_at=$3 WHERE id = $1`,
		id, lastActivityAt, expiresAt)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a session by ID (logout).
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM active_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteExpired prunes every session whose expiry has passed, returning the
// number of rows removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := r.q(ctx).Exec(ctx, `DELETE FROM active_sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
