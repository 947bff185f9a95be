package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"boingle/internal/agent"
	"boingle/internal/config"
	"boingle/internal/engine"
	"boingle/internal/infrastructure/storage"
	"boingle/internal/server"
	"boingle/internal/version"
	"boingle/pkg/logger"
	"boingle/pkg/playfield"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Флаги перекрывают переменные окружения
	var (
		seed       int64
		replayPath string
		simFrames  int
		preset     string
		withBot    bool
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 = BOINGLE_SEED or random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .bgrp replay file to play back headless")
	flag.IntVar(&simFrames, "sim", 0, "Run a headless bot for N frames and exit")
	flag.StringVar(&preset, "preset", "", "Balance preset: default, casual, hard")
	flag.BoolVar(&withBot, "bot", false, "Attach a bot client to the live server")
	flag.Parse()

	if preset != "" {
		os.Setenv(config.EnvPreset, preset)
	}
	appCfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	if appCfg.Debug {
		logger.Log.SetLevel(logrus.DebugLevel)
	}

	logger.Log.Info("Starting Boingle...")
	logger.Log.Info(version.String())

	cfg := engine.FromAppConfig(appCfg)
	if seed != 0 {
		cfg.Seed = seed
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		runReplay(cfg, appCfg.ReplayDir, replayPath)
		return
	}

	// РЕЖИМ СИМУЛЯЦИИ
	if simFrames > 0 {
		runSimulation(cfg, simFrames)
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"seed":   cfg.Seed,
		"preset": cfg.Balance.Name,
	}).Info("Session config")

	replays, err := storage.NewReplayService(appCfg.ReplayDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("Replay storage unavailable")
	}

	// 2. Ядро
	gameService, err := engine.NewService(cfg, replays)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create game service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		gameService.Run(ctx)
		close(done)
	}()

	if withBot {
		bot := agent.NewBot(playfield.BoundsOf(cfg.Balance), cfg.Seed)
		bot.Retry = true
		go bot.Run(ctx, gameService)
	}

	// 3. HTTP
	srv := server.New(gameService, appCfg.Port, appCfg.Debug)
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server error")
		stop()
	}

	logger.Log.Info("Shutting down...")
	<-done // игровой цикл сохраняет реплей при остановке
	logger.Log.Info("Done.")
}

func runReplay(cfg engine.Config, dir, path string) {
	logger.Log.WithField("path", path).Info("Mode: replay playback")

	replays, err := storage.NewReplayService(dir)
	if err != nil {
		logger.Log.WithError(err).Fatal("Replay storage unavailable")
	}
	rec, err := replays.Load(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load replay")
	}

	if rec.Preset != "" && rec.Preset != cfg.Balance.Name {
		if b, err := config.Preset(rec.Preset); err == nil {
			cfg.Balance = b
		}
	}

	s, err := engine.Playback(cfg, *rec)
	if err != nil {
		logger.Log.WithError(err).Warn("Replay finished with errors")
	}
	if s == nil {
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"frames": s.FrameNo(),
		"phase":  s.Phase().String(),
		"points": s.Player.Points,
		"level":  s.Player.CurrentLevel,
		"coins":  s.Player.Coins,
	}).Info("Replay result")
}

func runSimulation(cfg engine.Config, frames int) {
	logger.Log.WithFields(logrus.Fields{
		"frames": frames,
		"seed":   cfg.Seed,
	}).Info("Mode: headless simulation")

	s, err := engine.NewSession(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create session")
	}
	s.Boot()

	agent.Simulate(s, agent.NewBot(playfield.BoundsOf(cfg.Balance), cfg.Seed), frames)
}
