package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/duquediazn/tabula-backend/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator aplica las migraciones SQL embebidas en el binario.
type Migrator struct {
	migrate *migrate.Migrate
	log     *logger.Logger
}

// NewMigrator abre una conexión database/sql (driver pgx) y prepara golang-migrate con la fuente embebida.
func NewMigrator(ctx context.Context, databaseURL string, log *logger.Logger) (*Migrator, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{
		MigrationsTable:  "schema_migrations",
		StatementTimeout: 10 * time.Minute,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("driver postgres: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("fuente embebida: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("instancia de migración: %w", err)
	}
	return &Migrator{migrate: m, log: log.Component("migrator")}, nil
}

// Up aplica todas las migraciones pendientes.
func (m *Migrator) Up() error {
	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info().Msg("sin migraciones pendientes")
			return nil
		}
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	m.logVersion("migraciones aplicadas")
	return nil
}

// Down revierte la última migración.
func (m *Migrator) Down() error {
	_, dirty, err := m.migrate.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("obtener versión: %w", err)
	}
	if dirty {
		return fmt.Errorf("la base de datos está en estado dirty")
	}
	if err := m.migrate.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info().Msg("nada que revertir")
			return nil
		}
		return fmt.Errorf("revertir migración: %w", err)
	}
	m.logVersion("migración revertida")
	return nil
}

// Version versión actual y si quedó a medias (dirty).
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("obtener versión: %w", err)
	}
	return v, dirty, nil
}

// Force fija la versión sin ejecutar migraciones (recuperación de estado dirty).
func (m *Migrator) Force(version int) error {
	m.log.Warn().Int("version", version).Msg("forzando versión de migración")
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("forzar versión: %w", err)
	}
	return nil
}

// Close libera la fuente, el driver y la conexión.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.migrate.Close()
	if srcErr != nil || dbErr != nil {
		return fmt.Errorf("cerrar migrador - source: %v, db: %v", srcErr, dbErr)
	}
	return nil
}

func (m *Migrator) logVersion(msg string) {
	v, dirty, err := m.Version()
	if err != nil {
		m.log.Warn().Err(err).Msg("no se pudo leer la versión")
		return
	}
	m.log.Info().Uint("version", v).Bool("dirty", dirty).Msg(msg)
}

// RunMigrations aplica las migraciones y cierra el migrador (arranque con DB_AUTO_MIGRATE).
func RunMigrations(ctx context.Context, databaseURL string, log *logger.Logger) error {
	m, err := NewMigrator(ctx, databaseURL, log)
	if err != nil {
		return err
	}
	upErr := m.Up()
	if err := m.Close(); err != nil {
		log.Warn().Err(err).Msg("error cerrando migrador")
	}
	return upErr
}
