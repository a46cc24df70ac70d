package main

import (
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/smontiel/sellerhub-api/pkg/config"
	"github.com/smontiel/sellerhub-api/pkg/logger"
)

// Aplica las migraciones SQL de ./migrations contra la base configurada.
//
//	go run ./cmd/migrate            # up
//	go run ./cmd/migrate -down      # revierte la última
//	go run ./cmd/migrate -status    # estado
func main() {
	down := flag.Bool("down", false, "revertir la última migración")
	status := flag.Bool("status", false, "mostrar el estado de las migraciones")
	dir := flag.String("dir", "migrations", "directorio de migraciones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "migrate"})

	db, err := goose.OpenDBWithDriver("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir conexión para migrar")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar conexión")
		}
	}()

	switch {
	case *status:
		err = goose.Status(db, *dir)
	case *down:
		err = goose.Down(db, *dir)
	default:
		err = goose.Up(db, *dir)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migración fallida")
	}

	fmt.Fprintln(os.Stdout, "migraciones OK")
}
