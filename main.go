package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hatetris/go-server/internal/daily"
	"github.com/hatetris/go-server/internal/enemy"
	"github.com/hatetris/go-server/internal/game"
	"github.com/hatetris/go-server/internal/httpserver"
	"github.com/hatetris/go-server/internal/rotations"
	"github.com/hatetris/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	rs, err := rotations.Load(cfg.RotationSystemFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load rotation system")
	}
	engine, err := game.NewEngine(rs, cfg.WellWidth, cfg.WellDepth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build engine")
	}

	h0, err := enemy.Hatetris0(rs, engine, cfg.WellWidth, cfg.WellDepth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build hatetris-0")
	}
	h1, err := enemy.Hatetris1(rs, engine, cfg.WellWidth, cfg.WellDepth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build hatetris-1")
	}
	rnd, err := enemy.NewDailyRandom(rs, cfg.DailySalt, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build random enemy")
	}
	enemies, err := enemy.NewRegistry(h0, h1, rnd)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register enemies")
	}
	if _, err := enemies.Get(cfg.DefaultEnemy); err != nil {
		log.Fatal().Err(err).Msg("bad DEFAULT_ENEMY")
	}

	srv := httpserver.New(httpserver.Config{
		ClientOrigin:   cfg.ClientOrigin,
		RequestTimeout: cfg.RequestTimeout,
		DefaultEnemy:   cfg.DefaultEnemy,
		MaxSearchDepth: cfg.MaxSearchDepth,
		JWTSecret:      cfg.JWTSecret,
		APIKeyHash:     cfg.APIKeyHash,
		TokenTTL:       cfg.TokenTTL,
	}, engine, enemies, store.NewMemoryStore(cfg.CacheMaxEntries))

	log.Info().
		Str("port", cfg.Port).
		Str("rotationSystem", rs.Name).
		Int("wellWidth", cfg.WellWidth).
		Int("wellDepth", cfg.WellDepth).
		Str("dailyKey", daily.DateKey(time.Now())).
		Bool("auth", cfg.JWTSecret != "" && cfg.APIKeyHash != "").
		Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
