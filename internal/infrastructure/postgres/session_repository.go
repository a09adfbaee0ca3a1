package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
	"github.com/tu-usuario/catalogo-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación del puerto SessionRepository sobre PostgreSQL.
// El registro en esta tabla es la única fuente de verdad de una sesión.
type SessionRepo struct {
	db DB
}

// NewSessionRepository construye el adaptador de persistencia para sesiones.
func NewSessionRepository(db DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create persiste una sesión nueva.
func (r *SessionRepo) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, company_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query,
		session.Token, session.UserID, session.CompanyID, session.ExpiresAt, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetContext resuelve token -> usuario + empresa en una sola lectura con
// JOIN. Devuelve nil si el token no existe; la expiración la juzga el caller.
func (r *SessionRepo) GetContext(ctx context.Context, token string) (*entity.SessionContext, error) {
	query := `
		SELECT s.token, s.user_id, s.company_id, u.username, u.name, u.is_admin,
		       c.name, c.slug, s.expires_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		JOIN companies c ON c.id = s.company_id
		WHERE s.token = $1`
	var sc entity.SessionContext
	err := r.db.QueryRow(ctx, query, token).Scan(
		&sc.Token, &sc.UserID, &sc.CompanyID, &sc.Username, &sc.Name, &sc.IsAdmin,
		&sc.CompanyName, &sc.CompanySlug, &sc.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session context: %w", err)
	}
	return &sc, nil
}

// Delete borra una sesión. Idempotente: cero filas afectadas no es error.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired borra sesiones vencidas. Es mantenimiento: la validez de una
// sesión se decide al leerla, no depende de esta limpieza.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
