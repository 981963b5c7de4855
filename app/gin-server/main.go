package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yoockh/showcase/config"
	"github.com/yoockh/showcase/internal/api/handlers"
	"github.com/yoockh/showcase/internal/api/middleware"
	"github.com/yoockh/showcase/internal/api/routes"
	"github.com/yoockh/showcase/internal/cache"
	"github.com/yoockh/showcase/internal/logger"
	"github.com/yoockh/showcase/internal/metrics"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/repositories/memory"
	mongorepo "github.com/yoockh/showcase/internal/repositories/mongo"
	pgrepo "github.com/yoockh/showcase/internal/repositories/postgres"
	"github.com/yoockh/showcase/internal/services"
	"github.com/yoockh/showcase/internal/workers"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	app, err := config.LoadApp()
	if err != nil {
		log.WithError(err).Fatal("config error")
	}

	var (
		db    *mongo.Database
		users mongorepo.UserRepository
	)
	if config.MongoConfigured() {
		if err := config.InitMongo(); err != nil {
			log.WithError(err).Fatal("MongoDB init error")
		}
		log.Info("MongoDB connected")
		if err := config.EnsureMongoIndexes(); err != nil {
			log.WithError(err).Warn("MongoDB index setup failed")
		}
		if db, err = config.MongoDatabase(); err != nil {
			log.WithError(err).Fatal("MongoDB database error")
		}
		users = mongorepo.NewUserRepo(db)
	} else {
		users = memory.NewUserRepo()
		log.Warn("MONGO_URI not set, records are kept in memory only")
	}

	var uploads services.UploadLogService
	if config.PostgresConfigured() {
		if err := config.InitPostgres(); err != nil {
			log.WithError(err).Fatal("PostgreSQL init error")
		}
		uploads = services.NewUploadLogService(pgrepo.NewUploadRepo(config.PostgresDB))
		log.Info("PostgreSQL connected, upload log enabled")
	}

	var (
		store   cache.Cache
		limiter cache.Limiter
	)
	if config.RedisConfigured() {
		if err := config.InitRedis(); err != nil {
			log.WithError(err).Fatal("Redis init error")
		}
		store = cache.NewRedisCache(config.RedisClient)
		limiter = cache.NewRedisLimiter(config.RedisClient, "login", app.LoginAttempts, app.LoginWindow)
		log.Info("Redis connected")
	} else {
		store = cache.NewMemoryCache(app.CacheTTL)
		limiter = cache.NewMemoryLimiter(app.LoginAttempts, app.LoginWindow)
		log.Info("Redis not configured, caching in process")
	}

	ctx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if uploads != nil && config.RedisClient != nil {
		pool := &workers.UploadLogWorkerPool{Redis: config.RedisClient, Log: uploads, Logger: log}
		if err := pool.Start(ctx); err != nil {
			log.WithError(err).Fatal("upload log workers error")
		}
		uploads = workers.NewUploadLogQueue(config.RedisClient, uploads)
		log.Info("upload log writes queued through redis")
	}

	uploader, err := config.NewUploader(ctx, app.Storage)
	if err != nil {
		log.WithError(err).Fatal("storage init error")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	auth := services.NewAuthService(users, app.JWTSecret, app.JWTTTL)
	if app.AdminEmail != "" {
		created, err := auth.EnsureAdmin(ctx, app.AdminEmail, app.AdminPassword)
		if err != nil {
			log.WithError(err).Fatal("admin seed error")
		}
		if created {
			log.WithField("email", app.AdminEmail).Info("admin user created")
		}
	}

	deps := services.CollectionDeps{
		Uploader: uploader,
		Uploads:  uploads,
		Cache:    store,
		CacheTTL: app.CacheTTL,
		Observer: m,
		Logger:   log,
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := routes.NewRouter(log, m, routes.Deps{
		Auth:    handlers.NewAuthHandler(auth),
		Uploads: handlers.NewUploadLogHandler(uploads),
		Collections: []handlers.Collection{
			collection[models.Certificate](db, models.KindCertificate, deps),
			collection[models.Badge](db, models.KindBadge, deps),
			collection[models.Internship](db, models.KindInternship, deps),
			collection[models.Contribution](db, models.KindContribution, deps),
			collection[models.ContributionCert](db, models.KindContributionCert, deps),
		},
		Verifier:     auth,
		LoginLimiter: middleware.RateLimitByIP(limiter, log),
		Metrics:      m.Handler(),
	})
	if app.Storage.Driver == "local" {
		r.Static("/uploads", app.Storage.UploadDir)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: app.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
	})

	srv := &http.Server{
		Addr:              ":" + app.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serve(srv, log)
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := config.CloseMongo(shutdownCtx); err != nil {
		log.WithError(err).Warn("MongoDB disconnect failed")
	}
}

// collection wires one kind end to end. A nil db selects the in-memory store.
func collection[T any, PT mongorepo.Record[T]](db *mongo.Database, kind models.Kind, deps services.CollectionDeps) handlers.Collection {
	var repo mongorepo.CollectionRepository[T]
	if db != nil {
		repo = mongorepo.NewCollectionRepo[T, PT](db, kind)
	} else {
		repo = memory.NewCollectionRepo[T, PT]()
	}
	return handlers.NewCollectionHandler(services.NewCollectionService[T, PT](kind, repo, deps))
}

// serve blocks until SIGINT/SIGTERM, then drains in-flight requests.
func serve(srv *http.Server, log *logrus.Logger) {
	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
