package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

//go:embed data.sql
var dataSQL string

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Seed carga los datos de ejemplo. Es idempotente: cada insert chequea por id.
func Seed(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, dataSQL); err != nil {
		return fmt.Errorf("load sample data: %w", err)
	}
	return nil
}
