package main

import (
	"context"
	"flag"
	"os"

	"github.com/deskhive/deskhive-backend/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	schemaPath := flag.String("schema", "db/schema.sql", "path to the schema file")
	flag.Parse()

	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *schemaPath).Msg("Failed to read schema")
	}

	conn, err := pool.Acquire(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to acquire connection")
	}
	defer conn.Release()

	// The schema holds multiple statements; run it over the simple protocol.
	if _, err := conn.Conn().PgConn().Exec(context.Background(), string(schema)).ReadAll(); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	log.Info().Str("path", *schemaPath).Msg("Schema applied")
}
