package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-labs/bookstore/auth"
	catalogpostgres "github.com/inkwell-labs/bookstore/catalog/postgres"
	"github.com/inkwell-labs/bookstore/internal/config"
	"github.com/inkwell-labs/bookstore/internal/database"
	"github.com/inkwell-labs/bookstore/server"
	"github.com/inkwell-labs/bookstore/token"
	userspostgres "github.com/inkwell-labs/bookstore/users/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run() error {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		// Configuration problems are fatal at process start, never
		// recovered at request time.
		return err
	}

	logger := newLogger(cfg)
	displayAppname(cfg.GetAppName())

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.GetDatabaseDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	issuer, err := token.NewIssuer(cfg)
	if err != nil {
		return err
	}
	verifier, err := token.NewVerifier(cfg)
	if err != nil {
		return err
	}

	authService, err := auth.NewService(
		userspostgres.NewRepository(db),
		issuer,
		verifier,
		auth.WithBcryptCost(cfg.GetBcryptCost()),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.GetPort(),
		Handler: server.New(cfg, authService, catalogpostgres.NewRepository(db), logger),
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("listen and serve")
		}
	}()

	waitForStopSignal()
	return shutdown(srv)
}

func newLogger(cfg config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.GetEnv() == "DEV" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
