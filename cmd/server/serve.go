package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"photohunt-server/internal/config"
	"photohunt-server/internal/engine"
	"photohunt-server/internal/infrastructure/storage"
	"photohunt-server/internal/server"
	"photohunt-server/internal/version"
	"photohunt-server/pkg/dungeon"
	"photohunt-server/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the game server",
	RunE:  runServe,
}

func addServeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("port", "", "HTTP port (PH_PORT)")
	f.Int64("seed", 0, "master seed, 0 for random (PH_SEED)")
	f.Int("tick-rate", 0, "ticks per second (PH_TICK_RATE)")
	f.Duration("round", 0, "round duration (PH_ROUND_DURATION)")
	f.Int("creatures", 0, "creatures per round (PH_CREATURES)")
	f.String("levels", "", "levels file, watched for changes (PH_LEVELS_FILE)")
	f.String("scores", "", "score backend: memory, redis, sqlite (PH_SCORE_BACKEND)")
	f.String("scores-dsn", "", "redis address or sqlite path (PH_SCORE_DSN)")
	f.Bool("debug", false, "enable /debug endpoints (PH_DEBUG)")
}

// applyFlags переносит в конфиг только явно заданные флаги
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && f.Changed(name) {
			err = apply()
		}
	}

	set("port", func() (e error) { cfg.Port, e = f.GetString("port"); return })
	set("seed", func() (e error) { cfg.Engine.Seed, e = f.GetInt64("seed"); return })
	set("tick-rate", func() (e error) { cfg.Engine.TickRate, e = f.GetInt("tick-rate"); return })
	set("round", func() (e error) { cfg.Engine.RoundDuration, e = f.GetDuration("round"); return })
	set("creatures", func() (e error) { cfg.Engine.CreatureCount, e = f.GetInt("creatures"); return })
	set("levels", func() (e error) { cfg.LevelsFile, e = f.GetString("levels"); return })
	set("scores", func() (e error) { cfg.ScoreBackend, e = f.GetString("scores"); return })
	set("scores-dsn", func() (e error) { cfg.ScoreDSN, e = f.GetString("scores-dsn"); return })
	set("debug", func() (e error) { cfg.Debug, e = f.GetBool("debug"); return })
	return err
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger.Init()

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if cfg.Engine.Seed == 0 {
		cfg.Engine.Seed = engine.NewConfig().Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Log.Info("Starting photo hunt server...")
	logger.Log.Info(version.String())
	logger.Log.Infof("🎲 Master seed: %d", cfg.Engine.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Таблица уровней: встроенная или файл с горячей перезагрузкой
	table := dungeon.DefaultLevels()
	if cfg.LevelsFile != "" {
		if table, err = dungeon.LoadLevelsFile(cfg.LevelsFile); err != nil {
			return err
		}
	}
	levels := dungeon.NewLevelStore(table)
	if cfg.LevelsFile != "" {
		go func() {
			if err := dungeon.WatchLevels(ctx, cfg.LevelsFile, levels); err != nil {
				logger.Log.WithError(err).Warn("levels watcher stopped")
			}
		}()
	}

	// 2. История счета
	scores, err := storage.Open(cfg.ScoreBackend, cfg.ScoreDSN)
	if err != nil {
		return err
	}
	defer func() {
		if err := scores.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close score store")
		}
	}()

	// 3. Движок
	game, err := engine.NewService(cfg.Engine, levels, engine.WithScoreRecorder(scores))
	if err != nil {
		return err
	}
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = game.Run(ctx)
	}()

	// 4. HTTP
	srv := server.New(game, scores, cfg.Port)
	srv.Debug = cfg.Debug
	err = srv.Run(ctx)

	stop()
	<-loopDone
	logger.Log.Info("Done.")
	return err
}
