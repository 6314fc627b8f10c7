// File: cmd/service/main.go
// @title        Link Directory API
// @version      1.0
// @description  分類連結目錄與投稿審核 API
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 輸入 "Bearer <token>"
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"link-directory/internal/cache"
	"link-directory/internal/config"
	"link-directory/internal/database"
	"link-directory/internal/router"
	"link-directory/internal/service"
	"link-directory/internal/store"
	"link-directory/internal/telemetry"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "link-directory/docs" // 引入 swag 產出的 docs
)

const serviceName = "link-directory"

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	ensureAdminFn   = store.EnsureAdmin
	hashPasswordFn  = service.HashPassword
	newTokenIssuer  = service.NewTokenIssuer
	setupTelemetry  = telemetry.Setup
	startServer     = func(srv *http.Server) error { return srv.ListenAndServe() }
	exitFunc        = os.Exit
)

// bootstrapAdmin 設定了管理員帳密時確保該帳號存在，已存在則不做任何變更。
// email 與註冊、登入相同，一律去空白並轉小寫
func bootstrapAdmin(ctx context.Context, db database.Querier, cfg *config.Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" {
		return nil
	}
	hash, err := hashPasswordFn(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("管理員密碼雜湊失敗: %v", err)
	}
	created, err := ensureAdminFn(ctx, db, email, hash)
	if err != nil {
		return fmt.Errorf("建立管理員失敗: %v", err)
	}
	if created {
		log.Printf("已建立管理員帳號 %s", email)
	}
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Logger.SetLevel(glog.INFO)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry := setupTelemetry(ctx, serviceName, cfg.OTLPEndpoint, cfg.OTLPInsecure)
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			log.Printf("關閉 telemetry 失敗: %v", err)
		}
	}()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	redis, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer redis.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	if err := bootstrapAdmin(ctx, db, cfg); err != nil {
		return err
	}

	tokens, err := newTokenIssuer(cfg.JWTSecret, service.TokenLifetime)
	if err != nil {
		return err
	}

	e := newEcho()
	icons := service.NewFaviconResolver(cfg.FaviconTimeout, e.Logger)
	catalog := service.NewCatalog(db, redis, icons, cfg.CategoryCacheTTL, e.Logger)
	router.Setup(e, router.Deps{
		DB:           db,
		Cache:        redis,
		Tokens:       tokens,
		Catalog:      catalog,
		Submissions:  service.NewSubmissionWorkflow(db, icons, catalog),
		AllowOrigins: cfg.CORSAllowOrigins,
	})

	// echo 的 StartServer 會覆寫 Handler，因此自行建立 http.Server 以套上 otelhttp
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(e, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := startServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
