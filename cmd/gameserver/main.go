// Package main provides the game server binary that serves the combat
// session API over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/grimwire/crusade/internal/config"
	"github.com/grimwire/crusade/internal/game/dice"
	"github.com/grimwire/crusade/internal/game/roster"
	"github.com/grimwire/crusade/internal/game/session"
	"github.com/grimwire/crusade/internal/gameserver"
	"github.com/grimwire/crusade/internal/narration"
	"github.com/grimwire/crusade/internal/observability"
	"github.com/grimwire/crusade/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	rosterPath := flag.String("roster", "", "path to a roster YAML file; empty = built-in roster")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	cryptoSrc := dice.NewCryptoSource()
	diceRoller := dice.NewLoggedRoller(cryptoSrc, logger)

	logger.Info("starting game server",
		zap.String("http_addr", cfg.Server.Addr()),
	)

	// Load the roster.
	templates := roster.DefaultTemplates()
	if *rosterPath != "" {
		templates, err = roster.LoadTemplatesFromFile(*rosterPath)
		if err != nil {
			logger.Fatal("loading roster", zap.Error(err))
		}
	}
	factory := roster.NewFactory(templates)
	logger.Info("roster loaded", zap.Int("templates", len(templates)))

	sessMgr := session.NewManager(factory, cfg.Game.MaxEnemyCount)

	// Build the narrator. Disabled narration means shouts are simply
	// omitted from turn results.
	var narrator narration.Narrator = narration.Disabled{}
	if cfg.Narrator.Enabled {
		narrator = narration.NewAnthropic(
			cfg.Narrator.APIKey,
			cfg.Narrator.Model,
			cfg.Narrator.Timeout,
			cfg.Narrator.Fallbacks,
			logger,
		)
	}
	logger.Info("narrator initialized", zap.Bool("available", narrator.Available()))

	svc := gameserver.NewService(sessMgr, diceRoller, narrator, cfg.Game, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      svc.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)

	lifecycle.Add("http", &server.FuncService{
		StartFn: func() error {
			logger.Info("HTTP server listening",
				zap.String("addr", cfg.Server.Addr()),
			)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving on %s: %w", cfg.Server.Addr(), err)
			}
			return nil
		},
		StopFn: func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("HTTP shutdown", zap.Error(err))
			}
		},
	})

	logger.Info("game server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("http_addr", cfg.Server.Addr()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
