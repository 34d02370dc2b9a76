package database

import (
	"database/sql"
	"embed"
	"fmt"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/httpfs"
)

//go:embed migrations
var migrations embed.FS

//go:embed migrations/000001_init.up.sql
var setupSQL string

// SetupScript é o SQL literal de remediação mostrado ao operador quando
// o drift de schema é detectado. É o mesmo arquivo que a migration
// embutida aplica — uma fonte só, sem cópia divergindo.
func SetupScript() string {
	return setupSQL
}

// Migrate sobe o schema até a versão esperada pelo motor usando as
// migrations embutidas no binário.
func Migrate(db *sql.DB) error {
	source, err := httpfs.New(http.FS(migrations), "migrations")
	if err != nil {
		return fmt.Errorf("fonte de migrations inválida: %w", err)
	}

	target, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("instância postgres inválida: %w", err)
	}

	m, err := migrate.NewWithInstance("httpfs", source, "postgres", target)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
