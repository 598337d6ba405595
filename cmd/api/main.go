package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appanalysis "github.com/imageinsight/appraiser/internal/application/analysis"
	"github.com/imageinsight/appraiser/internal/config"
	domain "github.com/imageinsight/appraiser/internal/domain/analysis"
	"github.com/imageinsight/appraiser/internal/infra/appraise"
	mysqlp "github.com/imageinsight/appraiser/internal/infra/db/mysql"
	postgresp "github.com/imageinsight/appraiser/internal/infra/db/postgres"
	"github.com/imageinsight/appraiser/internal/infra/httpserver"
	"github.com/imageinsight/appraiser/internal/infra/imghost"
	"github.com/imageinsight/appraiser/internal/infra/lens"
	"github.com/imageinsight/appraiser/internal/infra/usage"
	"github.com/imageinsight/appraiser/internal/logger"
	"github.com/imageinsight/appraiser/internal/middleware"
	"github.com/imageinsight/appraiser/internal/settings"
)

func main() {
	// .env is optional, provider keys usually come from the real environment
	_ = godotenv.Load()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	ctx := context.Background()

	// settings store, seeded from env; admin endpoints mutate it at runtime
	store := settings.NewStore()

	// image host backend
	var host domain.ImageHost
	switch cfg.ImageHost.Backend {
	case "minio":
		mh, err := imghost.NewMinio(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatal("minio init error", zap.Error(err))
		}
		host = mh
	default:
		host = imghost.NewImgBB(cfg.ImageHost.ImgBBEndpoint)
	}

	checkers := map[string]middleware.HealthChecker{}

	// optional analysis history
	var history domain.History
	if cfg.Database.Host != "" {
		var db *sql.DB
		switch cfg.Database.Driver {
		case "postgres":
			db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
			if err != nil {
				log.Fatal("postgres connect error", zap.Error(err))
			}
			history = postgresp.NewAnalysisRepository(db)
		default:
			db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
			if err != nil {
				log.Fatal("mysql connect error", zap.Error(err))
			}
			history = mysqlp.NewAnalysisRepository(db)
		}
		defer db.Close()
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	// optional free-tier usage counters
	var limiter *usage.Limiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = usage.NewLimiter(rdb, cfg.Redis.FreeSessionsADay)
		checkers["redis"] = &middleware.RedisHealthChecker{Client: rdb}
	}

	svc := &appanalysis.Service{
		Host:        host,
		Finder:      lens.NewClient(cfg.Search.Endpoint),
		Appraiser:   appraise.NewClient(cfg.Appraise.BaseURL, cfg.Appraise.Model),
		Creds:       appanalysis.NewResolver(store),
		Fallback:    domain.NewAnnotator(time.Now().UnixNano()),
		History:     history,
		Log:         log,
		Clock:       appanalysis.SystemClock{},
		CallTimeout: time.Duration(cfg.Pipeline.CallTimeoutSeconds) * time.Second,
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	mux.Use(middleware.Logging(log))
	mux.Use(middleware.RateLimit(30, 2))
	mux.Mount("/", httpserver.New(svc, store, limiter, checkers, log))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}
}
