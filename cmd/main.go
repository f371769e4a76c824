// @title Avatar Platform API
// @version 1.0
// @description JSON endpoints of the avatar platform site.
// @host localhost:8080
// @BasePath /

package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "avatar_platform/docs"
	"avatar_platform/internal/config"
	"avatar_platform/internal/handlers"
	"avatar_platform/internal/logger"
	"avatar_platform/internal/metrics"
	"avatar_platform/internal/repository"
	"avatar_platform/internal/repository/db"
	"avatar_platform/internal/server"
	"avatar_platform/internal/service"
)

const metricsNamespace = "avatar_platform"

func main() {
	// load configs/config.yml, .env and environment overrides
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	if cfg.InsecureSecret() {
		log.Warnw("session.secret not set; using the insecure development secret", "env", "SECRET_KEY")
	}

	// open DB lazily; the bootstrap guard reports connection problems on first request
	dialect, err := repository.ParseDialect(cfg.DB.Driver)
	if err != nil {
		log.Fatalw("unsupported db driver", "driver", cfg.DB.Driver, "err", err)
	}
	conn, err := db.Open(dialect, cfg.DB.DSN)
	if err != nil {
		log.Fatalw("failed to open database", "driver", dialect, "err", err)
	}
	defer closeDB(conn, log)

	// wire dependencies
	m := metrics.NewMetrics(metricsNamespace)
	repos := repository.NewRepository(conn, dialect)
	services := service.NewService(repos, service.Deps{
		Migrator:      db.NewMigrator(conn, dialect),
		SessionSecret: cfg.Session.Secret,
		SessionTTL:    cfg.Session.TTL,
		Metrics:       m,
		Log:           log,
	})
	apiHandler := handlers.NewHandler(services, handlers.Config{
		SessionCookie:  cfg.Session.Cookie,
		SecureCookies:  cfg.Session.Secure,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, m, log)

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.HTTPHandler())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(srv, cfg, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("server started", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg *config.Config, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

func closeDB(conn *sql.DB, log *logger.Logger) {
	if err := conn.Close(); err != nil {
		log.Errorw("failed to close database", "err", err)
	}
}
