// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/absmach/simpleca"
	"github.com/absmach/simpleca/api"
	httpapi "github.com/absmach/simpleca/api/http"
	jaegerClient "github.com/absmach/simpleca/internal/jaeger"
	pgClient "github.com/absmach/simpleca/internal/postgres"
	"github.com/absmach/simpleca/internal/prometheus"
	"github.com/absmach/simpleca/internal/server"
	httpserver "github.com/absmach/simpleca/internal/server/http"
	"github.com/absmach/simpleca/internal/uuid"
	"github.com/absmach/simpleca/pki"
	cpostgres "github.com/absmach/simpleca/postgres"
	"github.com/absmach/simpleca/tracing"
	"github.com/caarlos0/env/v10"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	svcName        = "simpleca"
	envPrefix      = "SIMPLECA_DB_"
	envPrefixHTTP  = "SIMPLECA_HTTP_"
	defDB          = "simpleca"
	defSvcHTTPPort = "9010"
)

type config struct {
	LogLevel    string  `env:"SIMPLECA_LOG_LEVEL"     envDefault:"info"`
	JaegerURL   url.URL `env:"SIMPLECA_JAEGER_URL"    envDefault:"http://jaeger:4318"`
	InstanceID  string  `env:"SIMPLECA_INSTANCE_ID"   envDefault:""`
	TraceRatio  float64 `env:"SIMPLECA_JAEGER_TRACE_RATIO" envDefault:"1.0"`
	StoragePath string  `env:"SIMPLECA_STORAGE_PATH"  envDefault:"./data"`
	CAConfig    string  `env:"SIMPLECA_CA_CONFIG"     envDefault:""`
	Policy      string  `env:"SIMPLECA_POLICY"        envDefault:""`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load %s configuration : %s", svcName, err)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err.Error())
	}

	if cfg.InstanceID == "" {
		cfg.InstanceID, err = uuid.New().ID()
		if err != nil {
			log.Fatal(fmt.Sprintf("failed to generate instance ID: %s", err))
		}
	}

	dbConfig := pgClient.Config{Name: defDB}
	if err := env.ParseWithOptions(&dbConfig, env.Options{Prefix: envPrefix}); err != nil {
		logger.Error(err.Error())
	}
	db, err := pgClient.Setup(dbConfig, *cpostgres.Migration())
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to connect to %s database: %s", svcName, err))
	}
	defer db.Close()

	tp, err := jaegerClient.NewProvider(ctx, svcName, cfg.JaegerURL, cfg.InstanceID, cfg.TraceRatio)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to init Jaeger: %s", err))
	}
	defer func() {
		if tp != nil {
			if err := tp.Shutdown(ctx); err != nil {
				logger.Error(fmt.Sprintf("Error shutting down tracer provider: %v", err))
			}
		}
	}()
	var tracer trace.Tracer
	if tp != nil {
		tracer = tp.Tracer(svcName)
	}

	httpServerConfig := server.Config{Port: defSvcHTTPPort}
	if err := env.ParseWithOptions(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s HTTP server configuration : %s", svcName, err))
	}

	svc, err := newService(cfg, db, tracer, logger, dbConfig)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to create %s service: %s", svcName, err))
		return
	}

	hs := httpserver.NewServer(ctx, cancel, svcName, httpServerConfig, httpapi.MakeHandler(chi.NewMux(), svc, logger, cfg.InstanceID), logger)

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, svcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service terminated: %s", svcName, err))
	}
}

func newService(cfg config, db *sqlx.DB, tracer trace.Tracer, logger *slog.Logger, dbConfig pgClient.Config) (simpleca.Service, error) {
	policy := simpleca.Config{StoragePath: cfg.StoragePath}
	if cfg.Policy != "" {
		p, err := simpleca.LoadPolicy(cfg.Policy)
		if err != nil {
			return nil, err
		}
		policy = p
	}
	if policy.StoragePath == "" {
		policy.StoragePath = cfg.StoragePath
	}

	caConfig := simpleca.CAConfig{}
	if cfg.CAConfig != "" {
		c, err := simpleca.LoadCAConfig(cfg.CAConfig)
		if err != nil {
			return nil, err
		}
		caConfig = c
	}

	provider, err := pki.Setup(policy.StoragePath, caConfig, logger)
	if err != nil {
		return nil, err
	}

	database := pgClient.NewDatabase(db, dbConfig, tracer)
	repo := cpostgres.NewRepository(database)
	svc, err := simpleca.NewService(repo, provider, policy)
	if err != nil {
		return nil, err
	}
	svc = api.LoggingMiddleware(svc, logger)
	counter, latency := prometheus.MakeMetrics(svcName, "api")
	svc = api.MetricsMiddleware(svc, counter, latency)
	if tracer != nil {
		svc = tracing.New(svc, tracer)
	}

	return svc, nil
}

func initLogger(levelText string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelText)); err != nil {
		return &slog.Logger{}, fmt.Errorf(`{"level":"error","message":"%s: %s","ts":"%s"}`, err, levelText, time.RFC3339Nano)
	}

	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(logHandler), nil
}
