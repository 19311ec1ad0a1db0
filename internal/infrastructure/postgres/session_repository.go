package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo sesiones de login sobre la tabla sesiones.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create persiste la sesión de un token recién emitido.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sesiones (id, usuario_id, token_hash, ip_address, user_agent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.UserID, s.TokenHash, s.IPAddress, s.UserAgent, s.ExpiresAt, s.CreatedAt,
	)
	return dbErr("insert session", err)
}

// FindValidByHash busca una sesión no expirada por huella del token.
func (r *SessionRepo) FindValidByHash(ctx context.Context, tokenHash string, now time.Time) (*entity.Session, error) {
	var s entity.Session
	err := r.q.QueryRow(ctx, `
		SELECT id::text, usuario_id, token_hash, ip_address, user_agent, expires_at, created_at
		FROM sesiones
		WHERE token_hash = $1 AND expires_at > $2
		LIMIT 1`,
		tokenHash, now,
	).Scan(&s.ID, &s.UserID, &s.TokenHash, &s.IPAddress, &s.UserAgent, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get session", err)
	}
	return &s, nil
}

// DeleteByHash borra la sesión del token; no falla si no existe.
func (r *SessionRepo) DeleteByHash(ctx context.Context, tokenHash string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sesiones WHERE token_hash = $1`, tokenHash)
	return dbErr("delete session", err)
}

// DeleteByUser borra las sesiones del usuario excepto la de keepHash.
func (r *SessionRepo) DeleteByUser(ctx context.Context, userID int64, keepHash string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sesiones WHERE usuario_id = $1 AND token_hash <> $2`, userID, keepHash)
	if err != nil {
		return 0, dbErr("delete user sessions", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteExpired purga sesiones vencidas. Se invoca al arrancar el servidor.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sesiones WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, dbErr("delete expired sessions", err)
	}
	return tag.RowsAffected(), nil
}
