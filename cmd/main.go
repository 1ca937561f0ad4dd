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

	"task_manager/internal/handlers"
	"task_manager/internal/logger"
	"task_manager/internal/repository"
	repodb "task_manager/internal/repository/db"
	"task_manager/internal/server"
	"task_manager/internal/service"

	"github.com/spf13/viper"

	_ "task_manager/docs"
)

const defaultTokenTTLSeconds = 3600

// @title           Task Manager API
// @version         1.0
// @description     User registration, credential sign-in, and bearer-token guarded task CRUD.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// load config.yml first so the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// signing material is loaded once and passed down explicitly
	authCfg, err := loadAuthConfig()
	if err != nil {
		log.Fatalw("invalid auth config", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, authCfg)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// loadAuthConfig builds the immutable token configuration from viper.
func loadAuthConfig() (service.AuthConfig, error) {
	key := viper.GetString("auth.signing_key")
	if key == "" {
		return service.AuthConfig{}, errors.New("auth.signing_key must be set")
	}
	ttl := viper.GetInt("auth.token_ttl_seconds")
	if ttl <= 0 {
		ttl = defaultTokenTTLSeconds
	}
	return service.AuthConfig{
		SigningKey: []byte(key),
		TokenTTL:   time.Duration(ttl) * time.Second,
	}, nil
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return repodb.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
