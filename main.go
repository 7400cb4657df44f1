package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/EmmanuelRendon01/CodeWordle/internal/api"
	"github.com/EmmanuelRendon01/CodeWordle/internal/app"
	"github.com/EmmanuelRendon01/CodeWordle/internal/auth"
	"github.com/EmmanuelRendon01/CodeWordle/internal/config"
	"github.com/EmmanuelRendon01/CodeWordle/internal/stubserver"
	"github.com/EmmanuelRendon01/CodeWordle/internal/tokenstore"
	"github.com/EmmanuelRendon01/CodeWordle/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	stub := len(os.Args) > 1 && os.Args[1] == "stub"
	level := cfg.LogLevel
	if stub && os.Getenv("LOG_LEVEL") == "" {
		level = "info"
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: cfg.NoColor})
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if stub {
		if err := runStub(cfg); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
		return
	}
	if err := runClient(cfg); err != nil {
		log.Fatal().Err(err).Msg("codewordle exited")
	}
}

// runStub serves the stand-in API for local play until interrupted.
func runStub(cfg config.Config) error {
	wl, err := words.Load()
	if err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := stubserver.New(wl, stubserver.Config{})
	log.Info().Str("port", cfg.Port).Strs("topics", wl.Topics()).Msg("starting stub server")
	return srv.Serve(ctx, ":"+cfg.Port)
}

func runClient(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tokens, err := tokenstore.OpenSQLite(cfg.TokenDB, tokenstore.NewSealer(cfg.TokenKey))
	if err != nil {
		return err
	}
	defer tokens.Close()

	start := auth.PageLogin
	if tok, _ := tokens.Token(ctx); tok != "" {
		start = auth.PageDashboard
	}
	router := app.NewRouter(start)

	client := api.NewClient(cfg.APIURL, tokens,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithExpiryHandler(router.Expire),
	)

	lr, err := app.NewLineReader(cfg.HistoryFile)
	if err != nil {
		return err
	}
	defer lr.Close()

	log.Debug().Str("api", cfg.APIURL).Str("page", start).Msg("starting client")
	err = app.New(app.Deps{
		Config: cfg,
		Client: client,
		Router: router,
		Out:    lr.Stdout(),
		Prompt: lr,
	}).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
