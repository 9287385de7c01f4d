package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stridelab/stride/catalog"
	"github.com/stridelab/stride/engine"
	"github.com/stridelab/stride/internal/config"
	"github.com/stridelab/stride/internal/jobs"
	"github.com/stridelab/stride/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config error:", err)
	}
	if !cfg.HasDatabase() {
		log.Fatal("worker requires DATABASE_URL")
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("unable to connect to database:", err)
	}
	defer pool.Close()
	st := store.New(pool)

	reg, err := catalog.DefaultRegistry(catalog.DefaultRand())
	if err != nil {
		log.Fatal("catalog error:", err)
	}
	eng := engine.New(reg)

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency:    8,
		StrictPriority: false,
		Queues: map[string]int{
			"plan":    10, // higher priority
			"default": 5,  // default priority
		},
	})
	mux := asynq.NewServeMux()

	mux.HandleFunc(jobs.TaskPrecomputeAlternatives, func(ctx context.Context, t *asynq.Task) error {
		var p jobs.PrecomputeAlternativesPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Printf("[asynq] bad payload: %v", err)
			return err
		}
		log.Printf("[precompute] start athlete=%s workout=%q", p.AthleteID, p.WorkoutName)
		start := time.Now()
		err := precomputeAlternatives(ctx, st, eng, p)
		duration := time.Since(start)

		if err != nil {
			if isRetryableError(err) {
				log.Printf("[precompute] retryable error athlete=%s duration=%v: %v", p.AthleteID, duration, err)
				return err // allow retry
			}
			log.Printf("[precompute] permanent error athlete=%s duration=%v: %v (dropping job)", p.AthleteID, duration, err)
			return nil // don't retry permanent failures
		}
		log.Printf("[precompute] done athlete=%s duration=%v", p.AthleteID, duration)
		return nil
	})

	log.Println("Worker running...")
	log.Fatal(srv.Run(mux))
}

// isRetryableError determines if an error should trigger a job retry
func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())

	// Network/connectivity issues - should retry
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dns") {
		return true
	}

	// Database contention - should retry
	if strings.Contains(errStr, "deadlock") ||
		strings.Contains(errStr, "too many clients") {
		return true
	}

	// Everything else (missing athlete, bad workout data, etc.) - don't retry
	return false
}

func precomputeAlternatives(ctx context.Context, st *store.Store, eng *engine.Engine, p jobs.PrecomputeAlternativesPayload) error {
	aid, err := uuid.Parse(p.AthleteID)
	if err != nil {
		return fmt.Errorf("parse athlete id: %w", err)
	}

	athlete, err := st.GetAthlete(ctx, aid)
	if err != nil {
		return fmt.Errorf("get athlete: %w", err)
	}
	wctx := athlete.Context()
	wctx.Week = p.Week

	resolved, err := eng.Resolve(engine.Ref{
		Name:     p.WorkoutName,
		Category: p.Category,
		Day:      p.Day,
		Week:     p.Week,
	}, wctx)
	if err != nil {
		return fmt.Errorf("resolve workout: %w", err)
	}

	cats := eng.Alternatives(resolved, engine.Profile{Context: wctx}, p.WeatherExtreme)
	if err := st.SaveAlternatives(ctx, aid, resolved.Name, cats); err != nil {
		return fmt.Errorf("save alternatives: %w", err)
	}
	if err := st.MarkPrecomputed(ctx, aid); err != nil {
		return fmt.Errorf("mark precomputed: %w", err)
	}
	return nil
}
