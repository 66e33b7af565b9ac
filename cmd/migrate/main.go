// Comando migrate: aplica o revierte las migraciones SQL embebidas.
//
//	migrate up | down | version | force <n>
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/duquediazn/tabula-backend/internal/infrastructure/postgres"
	"github.com/duquediazn/tabula-backend/pkg/config"
	"github.com/duquediazn/tabula-backend/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate up|down|version|force <versión>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	m, err := postgres.NewMigrator(context.Background(), cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migraciones")
	}
	defer m.Close()

	switch cmd := os.Args[1]; cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		var v uint
		var dirty bool
		v, dirty, err = m.Version()
		if err == nil {
			fmt.Printf("versión %d (dirty=%t)\n", v, dirty)
		}
	case "force":
		if len(os.Args) < 3 {
			log.Fatal().Msg("force requiere una versión")
		}
		var v int
		v, err = strconv.Atoi(os.Args[2])
		if err == nil {
			err = m.Force(v)
		}
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido")
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", os.Args[1]).Msg("migración fallida")
	}
}
