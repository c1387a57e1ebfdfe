package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	httpadapter "kerbside/internal/adapters/http"
	pg "kerbside/internal/adapters/postgres"
	"kerbside/internal/config"
	ports "kerbside/internal/ports"
	assesssvc "kerbside/internal/services/assessor"
	declsvc "kerbside/internal/services/declarations"
	sweepworker "kerbside/internal/workers/sweeprunner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("warning: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required for Postgres adapters")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pg.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("migrate error: %v", err)
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	// Wire repositories to services (ports)
	var _ ports.TripLedger = db
	var _ ports.ClaimsStore = db
	var _ ports.VehicleStore = db
	var _ ports.SweepJobStore = db

	assessor := assesssvc.New(db, db, db)
	declarations := declsvc.New(db, db)

	processor := sweepworker.ScoreProcessor{Assessor: assessor, Scores: db}
	srv := httpadapter.New(assessor, declarations, db, processor)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	// Optional background sweep workers
	if cfg.SweepWorkers > 0 {
		go sweepworker.Run(ctx, db, processor, cfg.SweepWorkers, 500*time.Millisecond)
		log.Printf("sweep workers started: %d", cfg.SweepWorkers)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- http.ListenAndServe(cfg.ListenAddr, r) }()
	log.Printf("listening on %s", cfg.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("shutting down on %s", sig)
		cancel()
		time.Sleep(300 * time.Millisecond)
	case err := <-errCh:
		log.Fatal(fmt.Errorf("server error: %w", err))
	}
}
