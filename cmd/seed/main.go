// seed crea el primer administrador si aún no existe un usuario con ese email.
//
// Uso: go run ./cmd/seed <nombre> <email> <password>
// Sin argumentos lee SEED_ADMIN_NAME, SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/duquediazn/tabula-backend/internal/application/auth"
	"github.com/duquediazn/tabula-backend/internal/application/dto"
	"github.com/duquediazn/tabula-backend/internal/domain/entity"
	"github.com/duquediazn/tabula-backend/internal/infrastructure/postgres"
	"github.com/duquediazn/tabula-backend/pkg/config"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

func main() {
	in := dto.CreateUserRequest{
		Nombre: os.Getenv("SEED_ADMIN_NAME"),
		Email:  os.Getenv("SEED_ADMIN_EMAIL"),
		Passwd: os.Getenv("SEED_ADMIN_PASSWORD"),
		Rol:    entity.RoleAdmin,
	}
	if len(os.Args) == 4 {
		in.Nombre, in.Email, in.Passwd = os.Args[1], os.Args[2], os.Args[3]
	}
	if err := auth.ValidateNewUser(in); err != nil {
		fmt.Fprintf(os.Stderr, "Datos del administrador: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	email := auth.NormalizeEmail(in.Email)
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if existing != nil {
		log.Info().Str("email", email).Int("id", existing.ID).Msg("el usuario ya existe, nada que hacer")
		return
	}

	hash, err := auth.HashPassword(in.Passwd)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}
	admin := &entity.User{
		Name:         strings.TrimSpace(in.Nombre),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		Active:       true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Str("email", email).Int("id", admin.ID).Msg("administrador creado")
}
