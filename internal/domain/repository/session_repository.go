package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para sesiones opacas.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// GetContext resuelve token -> usuario + empresa en una sola lectura.
	// Devuelve nil (sin error) si el token no existe; la expiración se decide
	// en la capa de aplicación al momento de leer.
	GetContext(ctx context.Context, token string) (*entity.SessionContext, error)
	// Delete es idempotente: borrar un token inexistente no es error.
	Delete(ctx context.Context, token string) error
	// DeleteExpired es mantenimiento opcional; la validez no depende de él.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
