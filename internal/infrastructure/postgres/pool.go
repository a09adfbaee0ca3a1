package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/tu-usuario/catalogo-api/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL acotado. El pool es el único
// punto de contacto con el store: se construye una vez al inicio y se inyecta
// a los repositorios; su ciclo de vida (Close) lo gobierna el proceso.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	// Espera acotada al adquirir conexión: el agotamiento del pool se
	// manifiesta como error, no como cola indefinida.
	poolConfig.ConnConfig.ConnectTimeout = 10 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// NewPoolWithRetry reintenta el arranque con backoff. Solo aplica al
// bootstrap del proceso; en estado estable un fallo de conexión es fatal
// para esa petición, no se reintenta.
func NewPoolWithRetry(ctx context.Context, cfg config.DBConfig, attempts int) (*pgxpool.Pool, error) {
	backoff := time.Second
	var lastErr error
	for i := 0; i < attempts; i++ {
		pool, err := NewPool(ctx, cfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("intento", i+1).Dur("backoff", backoff).Msg("conexión a PostgreSQL falló, reintentando")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("conexión a PostgreSQL tras %d intentos: %w", attempts, lastErr)
}
