package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/cashdesk/pettycash.go/db"
	"github.com/cashdesk/pettycash.go/db/migrations"
	"github.com/cashdesk/pettycash.go/lib"
	"github.com/cashdesk/pettycash.go/lib/service"
	"github.com/cashdesk/pettycash.go/lib/tokens"
	"github.com/cashdesk/pettycash.go/lib/transport"
	"github.com/cashdesk/pettycash.go/storage"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/uptrace/bun/migrate"
)

// @title        PettyCash
// @version      1.0.0
// @description  Petty cash management backend with fund ledgers, expense approvals and an audit trail.

// @BasePath  /

// @securitydefinitions.oauth2.password  OAuth2Password
// @tokenUrl                             /auth/login
// @schemes                              https http
func main() {

	c := &service.Config{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configrued log file
	logger := lib.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}
	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	// Receipt uploads land on the local disk
	receipts, err := storage.NewDiskStore(c.UploadDir)
	if err != nil {
		logger.Fatalf("Error initializing upload directory: %v", err)
	}

	svc := &service.PettyCashService{
		Config:   c,
		DB:       dbConn,
		Logger:   logger,
		Receipts: receipts,
	}

	if c.SeedDefaultUsers {
		if err := svc.SeedDefaultUsers(startupCtx); err != nil {
			logger.Fatalf("Error seeding default users: %v", err)
		}
	}

	//init echo server
	e := transport.InitEcho(c, logger)

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for login and registration attempts
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	secured := e.Group("", tokens.Middleware(c.JWTSecret), logMw)

	transport.RegisterEndpoints(svc, e, secured, strictRateLimitMiddleware, logMw)

	//Start Prometheus server if necessary
	if svc.Config.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, svc, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	backGroundCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	svc.Logger.Info("PettyCash exiting gracefully. Goodbye.")
}
