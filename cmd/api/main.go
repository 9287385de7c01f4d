// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/stridelab/stride/catalog"
	"github.com/stridelab/stride/engine"
	"github.com/stridelab/stride/internal/config"
	"github.com/stridelab/stride/internal/http/routes"
	"github.com/stridelab/stride/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}
	log.Printf("starting api on :%s", cfg.Port)

	// Catalogs + engine
	reg, err := catalog.DefaultRegistry(catalog.DefaultRand())
	if err != nil {
		log.Fatalf("catalog error: %v", err)
	}
	eng := engine.New(reg)

	// DB is optional; without one the API serves stateless prescriptions.
	var st *store.Store
	if cfg.HasDatabase() {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		defer pool.Close()
		st = store.New(pool)
	}

	// Router / server
	s := routes.New(routes.ServerOptions{
		Engine:   eng,
		Catalogs: reg,
		Store:    st,
		Cfg:      *cfg,
	})
	h := hlog.NewHandler(logger)(s.Router)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: h}
	log.Fatal(srv.ListenAndServe())
}
