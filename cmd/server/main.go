package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	gatehandler "inklusi/internal/accessgate/handler"
	gatemetrics "inklusi/internal/accessgate/metrics"
	gateservice "inklusi/internal/accessgate/service"
	"inklusi/internal/accessgate/store/whitelist"
	"inklusi/internal/jurisdiction"
	"inklusi/internal/platform/config"
	"inklusi/internal/platform/health"
	"inklusi/internal/platform/httpserver"
	"inklusi/internal/platform/logger"
	"inklusi/internal/platform/metrics"
	"inklusi/internal/platform/middleware"
	"inklusi/internal/platform/postgres"
	"inklusi/internal/platform/redis"
	"inklusi/internal/region"
	"inklusi/internal/scoring/cache"
	scoringhandler "inklusi/internal/scoring/handler"
	scoringmetrics "inklusi/internal/scoring/metrics"
	scoringservice "inklusi/internal/scoring/service"
	"inklusi/internal/scoring/store/rating"
	"inklusi/internal/subject"
	subjecthandler "inklusi/internal/subject/handler"
	"inklusi/internal/verification/adapters"
	verifhandler "inklusi/internal/verification/handler"
	verifmetrics "inklusi/internal/verification/metrics"
	verifservice "inklusi/internal/verification/service"
	"inklusi/internal/verification/store/institution"
	"inklusi/internal/verification/store/request"
	"inklusi/pkg/platform/audit"
	"inklusi/pkg/platform/audit/relay"
	auditmemory "inklusi/pkg/platform/audit/store/memory"
	auditpostgres "inklusi/pkg/platform/audit/store/postgres"
	"inklusi/pkg/platform/tx"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(context.Background(), cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(cfg.RegionCatalogPath, log)
	if err != nil {
		return err
	}

	// Storage. With a DSN every store shares the same database so the
	// verification resolve and its institution flag commit as one
	// transaction; without one the in-memory stores serve local runs.
	var (
		requestStore     verifservice.RequestStore
		institutionStore verifservice.InstitutionStore
		ratingStore      scoringservice.RatingStore
		whitelistStore   gateservice.Store
		directory        subject.Directory
		auditStore       audit.Store
		outboxStore      *auditpostgres.Store
		runner           tx.Runner = tx.PassthroughRunner{}
		checks           []health.Check
	)
	if cfg.Postgres.DSN != "" {
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()

		pool, err := postgres.OpenPool(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer pool.Close()

		requestStore = request.NewPostgresStore(db)
		institutionStore = institution.NewPostgresStore(db)
		ratingStore = rating.NewPostgresStore(db)
		whitelistStore = whitelist.NewPostgres(db)
		directory = subject.NewPostgresDirectory(pool)
		outboxStore = auditpostgres.New(db)
		auditStore = outboxStore
		runner = tx.NewSQLRunner(db)
		checks = append(checks, health.Check{Name: "postgres", Probe: db.PingContext})
	} else {
		log.Warn("no postgres DSN configured, using in-memory stores")
		requestStore = request.NewInMemoryStore()
		institutionStore = institution.NewInMemoryStore()
		ratingStore = rating.NewInMemoryStore()
		whitelistStore = whitelist.New()
		directory = subject.NewInMemoryDirectory()
		auditStore = auditmemory.New()
	}

	publisher := audit.NewStorePublisher(auditStore, log)

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	var scorecardCache cache.Cache = cache.NewMemory()
	if redisClient != nil {
		defer redisClient.Close()
		scorecardCache = cache.NewRedis(redisClient, cfg.Redis.ScorecardTTL)
		checks = append(checks, health.Check{Name: "redis", Probe: redisClient.Health})
	}

	gate, err := gateservice.New(whitelistStore,
		gateservice.WithLogger(log),
		gateservice.WithMetrics(gatemetrics.New()),
		gateservice.WithAuditPublisher(publisher),
	)
	if err != nil {
		return fmt.Errorf("build access gate: %w", err)
	}
	if cfg.BootstrapAdminEmail != "" {
		if err := gate.Bootstrap(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminName); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	verifSvc, err := verifservice.New(requestStore, institutionStore, adapters.NewGateAdapter(gate), runner,
		verifservice.WithLogger(log),
		verifservice.WithMetrics(verifmetrics.New(prometheus.DefaultRegisterer)),
		verifservice.WithAuditPublisher(publisher),
	)
	if err != nil {
		return fmt.Errorf("build verification service: %w", err)
	}

	scoringSvc, err := scoringservice.New(ratingStore, scorecardCache, runner,
		scoringservice.WithLogger(log),
		scoringservice.WithMetrics(scoringmetrics.New(prometheus.DefaultRegisterer)),
		scoringservice.WithAuditPublisher(publisher),
	)
	if err != nil {
		return fmt.Errorf("build scoring service: %w", err)
	}

	httpMetrics := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestMeta)
	router.Use(middleware.Instrument(httpMetrics))
	health.New(log, checks...).Register(router)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireIdentity([]byte(cfg.JWTSigningKey), log))
		verifhandler.New(verifSvc, log).Register(r)
		scoringhandler.New(scoringSvc, log).Register(r)
		gatehandler.New(gate, log).Register(r)
		subjecthandler.New(jurisdiction.NewResolver(catalog), directory, catalog, log).Register(r)
	})

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler())

	apiSrv := httpserver.New(cfg.Addr, router)
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("api server listening", "addr", cfg.Addr)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("metrics server listening", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	if len(cfg.Kafka.Brokers) > 0 && outboxStore != nil {
		auditRelay, err := relay.New(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, outboxStore, log)
		if err != nil {
			return fmt.Errorf("build audit relay: %w", err)
		}
		g.Go(func() error {
			log.Info("audit relay running", "topic", cfg.Kafka.AuditTopic)
			return auditRelay.Run(ctx)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
		return apiSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func loadCatalog(path string, log *slog.Logger) (*region.Catalog, error) {
	if path == "" {
		return region.Default(), nil
	}
	catalog, err := region.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load region catalog: %w", err)
	}
	log.Info("region catalog loaded", "path", path)
	return catalog, nil
}
