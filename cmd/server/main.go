package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"coldchain/internal/accesscontrol"
	"coldchain/internal/audit"
	auditkafka "coldchain/internal/audit/sink/kafka"
	auditredis "coldchain/internal/audit/sink/redisstream"
	auditmemory "coldchain/internal/audit/store/memory"
	auditpostgres "coldchain/internal/audit/store/postgres"
	"coldchain/internal/batch"
	"coldchain/internal/certificate"
	certmetrics "coldchain/internal/certificate/metrics"
	"coldchain/internal/jwttoken"
	"coldchain/internal/platform/config"
	"coldchain/internal/platform/httpserver"
	"coldchain/internal/platform/logger"
	platformredis "coldchain/internal/platform/redis"
	"coldchain/internal/registry"
	httptransport "coldchain/internal/transport/http"
	"coldchain/pkg/domain"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	owner, err := domain.ParseEntityID(cfg.OwnerAddress)
	if err != nil {
		log.Error("COLDCHAIN_OWNER_ADDRESS must be a hex address", "error", err)
		os.Exit(1)
	}
	gate := accesscontrol.New(owner)

	// Ledger and audit stores: Postgres when configured, in-memory otherwise.
	var (
		entityStore registry.Store
		batchStore  batch.Store
		certStore   certificate.Store
		auditStore  audit.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("failed to reach database", "error", err)
			os.Exit(1)
		}
		entityStore = registry.NewPostgres(db)
		batchStore = batch.NewPostgres(db)
		certStore = certificate.NewPostgres(db)
		auditStore = auditpostgres.New(db)
	} else {
		entityStore = registry.NewInMemory()
		batchStore = batch.NewInMemory()
		certStore = certificate.NewInMemory()
		auditStore = auditmemory.New()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	group, ctx := errgroup.WithContext(ctx)

	// Optional audit sinks for external observers.
	var sinks []audit.Sink
	if redisClient, err := platformredis.New(cfg.RedisURL); err != nil {
		log.Error("failed to connect redis", "error", err)
		os.Exit(1)
	} else if redisClient != nil {
		defer redisClient.Close()
		sinks = append(sinks, auditredis.New(redisClient.Client, cfg.AuditStream))
	}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := auditkafka.New(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("failed to connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()

		inbox := make(chan audit.Event, 256)
		sinks = append(sinks, audit.NewBufferedSink(inbox, log))
		worker := audit.NewWorker(kafkaSink, inbox, log)
		group.Go(func() error {
			if err := worker.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	auditor := audit.NewPublisher(auditStore, log, sinks...)

	entities := registry.NewService(gate, entityStore, auditor, log)
	batches := batch.NewService(gate, batchStore, entities, auditor, log)
	certificates := certificate.NewService(gate, certStore, entities, batches, auditor, certmetrics.New(), log)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, "coldchain", "coldchain-registry")
	handler := httptransport.NewHandler(entities, batches, certificates, auditor, log)
	router := httptransport.NewRouter(handler, tokens)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting coldchain registry", "addr", cfg.Addr, "owner", owner)

	group.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
