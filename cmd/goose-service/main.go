package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/goosetokens/goose-platform-poc/internal/api"
	"github.com/goosetokens/goose-platform-poc/internal/api/producer"
	"github.com/goosetokens/goose-platform-poc/internal/content"
	"github.com/goosetokens/goose-platform-poc/internal/detection"
	"github.com/goosetokens/goose-platform-poc/internal/ledger"
	"github.com/goosetokens/goose-platform-poc/internal/quest"
	"github.com/goosetokens/goose-platform-poc/internal/room"
	"github.com/goosetokens/goose-platform-poc/internal/shared/cache"
	"github.com/goosetokens/goose-platform-poc/internal/shared/config"
	"github.com/goosetokens/goose-platform-poc/internal/shared/db"
	"github.com/goosetokens/goose-platform-poc/internal/shared/logger"
	"github.com/goosetokens/goose-platform-poc/internal/shared/metrics"
	"github.com/goosetokens/goose-platform-poc/internal/stats"
	"github.com/goosetokens/goose-platform-poc/internal/wallet"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	prometheus.MustRegister(append(api.Collectors(), room.Collectors()...)...)

	probeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Probe único de storage no boot: Postgres fora do ar coloca o serviço
	// em modo degradado (tudo em memória, estado perdido no restart)
	var (
		walletStore wallet.Store
		ledgerStore ledger.Store
		statsStore  stats.Store
		questStore  quest.Store
		storageMode = "postgres"
	)
	pg, err := db.ConnectPostgres(probeCtx, cfg.PostgresDSN)
	if err == nil {
		if err := db.Migrate(probeCtx, pg); err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
		defer pg.Close()
		walletStore = wallet.NewPostgres(pg)
		ledgerStore = ledger.NewPostgres(pg)
		statsStore = stats.NewPostgres(pg)
		questStore = quest.NewPostgres(pg)
		log.Info("postgres connected")
	} else {
		storageMode = "memory"
		walletStore = wallet.NewMemory()
		ledgerStore = ledger.NewMemory()
		statsStore = stats.NewMemory()
		questStore = quest.NewMemory()
		log.Warn("postgres unavailable, falling back to in-memory storage; state will be lost on restart",
			zap.Error(err))
	}

	// Redis é opcional: sem ele as leituras de estatísticas vão direto no store
	var rdb *redis.Client
	if r, err := cache.ConnectRedis(probeCtx, cfg.RedisAddr); err == nil {
		rdb = r
		defer rdb.Close()
		log.Info("redis connected")
	} else {
		log.Warn("redis unavailable, stats cache disabled", zap.Error(err))
	}

	// deps
	agg := stats.NewAggregator(log, statsStore, rdb)
	led := ledger.New(log, ledgerStore, walletStore, agg)
	registry := room.NewRegistry(log)
	hub := room.NewHub(log, registry, func(*http.Request) bool { return true })
	detect := detection.New(cfg.DetectionURL)
	gen := content.New(cfg.ContentURL)

	publ := producer.NewKafkaPublisher(cfg.KafkaBrokers, cfg.TopicBetPlaced, cfg.TopicBetResolved, cfg.TopicQuestCompleted)
	defer publ.Close()

	srv := api.NewServer(log, walletStore, led, agg, questStore, detect, gen, hub, publ, storageMode)
	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: srv.Router(),
	}

	// metrics/health em porta separada
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if pg != nil {
			if err := pg.PingContext(ctx); err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	})
	defer metricsSrv.Close()
	log.Info("metrics/health listening", zap.String("addr", ":"+cfg.MetricsPort))

	log.Info("goose-service listening",
		zap.String("addr", apiSrv.Addr),
		zap.String("storage", storageMode),
	)
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api srv", zap.Error(err))
	}
}
