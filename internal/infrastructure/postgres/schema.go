package postgres

import (
	"context"
	"fmt"
)

// schemaStatements crea las tablas si no existen, en orden de dependencia.
// Las cascadas viven en el store (ON DELETE CASCADE): borrar una empresa
// arrastra usuarios, sesiones y todo su catálogo; borrar una categoría
// arrastra subcategorías e ítems.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		slug       TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		company_id    BIGINT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (company_id, username)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		token      TEXT PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		company_id BIGINT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id         BIGSERIAL PRIMARY KEY,
		company_id BIGINT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (company_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS subcategories (
		id          BIGSERIAL PRIMARY KEY,
		company_id  BIGINT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (company_id, category_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id             BIGSERIAL PRIMARY KEY,
		company_id     BIGINT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		subcategory_id BIGINT NOT NULL REFERENCES subcategories(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		image_url      TEXT,
		image_key      TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (company_id, subcategory_id, name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions (expires_at)`,
	`CREATE INDEX IF NOT EXISTS idx_subcategories_category ON subcategories (company_id, category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_subcategory ON items (company_id, subcategory_id)`,
}

// EnsureSchema crea/verifica las tablas al arranque del proceso.
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("inicializar esquema: %w", err)
		}
	}
	return nil
}
