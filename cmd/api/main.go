package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery-platform/internal/audit"
	"bakery-platform/internal/auth"
	"bakery-platform/internal/branches"
	"bakery-platform/internal/config"
	"bakery-platform/internal/designations"
	"bakery-platform/internal/employees"
	"bakery-platform/internal/httpapi"
	"bakery-platform/internal/items"
	"bakery-platform/internal/notify"
	"bakery-platform/internal/orders"
	"bakery-platform/internal/otp"
	"bakery-platform/internal/reporting"
	"bakery-platform/internal/trips"
	"bakery-platform/internal/users"
	"bakery-platform/pkg/logger"
	"bakery-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	producer := notify.NewProducer(cfg.Kafka.Broker, cfg.Kafka.Topic, cfg.Kafka.Username, cfg.Kafka.Password, log)
	defer producer.Close()
	notifier := notify.New(producer)

	recorder := audit.NewRecorder()
	auditSvc := audit.NewService(audit.NewPostgresRepo(db))

	branchSvc := branches.NewService(branches.NewPostgresRepo(db))
	desigSvc := designations.NewService(designations.NewPostgresRepo(db), recorder)
	itemSvc := items.NewService(items.NewPostgresRepo(db), recorder, auditSvc)
	empSvc := employees.NewService(employees.NewPostgresRepo(db), recorder, auditSvc, desigSvc, branchSvc)
	orderSvc := orders.NewService(orders.NewPostgresRepo(db), recorder, notifier)
	tripSvc := trips.NewService(trips.NewPostgresRepo(db), recorder, itemSvc)
	userSvc := users.NewService(users.NewPostgresRepo(db), recorder)
	reportSvc := reporting.NewService(reporting.NewPostgresRepo(db))
	otpSvc := otp.NewService(otp.NewRedisStore(rdb), cfg.Otp.Length, cfg.Otp.TTL)

	h := httpapi.Handlers{
		Auth:         authManager,
		Users:        userSvc,
		Audit:        auditSvc,
		Orders:       orderSvc,
		Employees:    empSvc,
		Items:        itemSvc,
		Branches:     branchSvc,
		Designations: desigSvc,
		Trips:        tripSvc,
		Reports:      reportSvc,
		OTP:          otpSvc,
		Notify:       notifier,
		AllowReset: func(ctx context.Context, identifier string) (bool, error) {
			return utils.AllowRate(ctx, rdb, "pwreset:"+identifier,
				cfg.Otp.ResetRequestLimit, cfg.Otp.ResetRequestWindow)
		},
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, h, auth.RequireAccessToken(authManager))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
