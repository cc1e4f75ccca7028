package main

import (
	"context"
	"crypto/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/console"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/httpserver"
	"github.com/robalobadob/mastermind/internal/results"
	"github.com/robalobadob/mastermind/internal/store"
)

func main() {
	_ = godotenv.Load()

	mode := "play"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	switch mode {
	case "serve":
		setLogLevel("info")
		serve()
	case "play":
		setLogLevel("warn")
		os.Exit(play())
	default:
		log.Fatal().Str("mode", mode).Msg("usage: mastermind [play|serve]")
	}
}

func setLogLevel(def string) {
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", def)); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// play runs one console session and returns the process exit status.
func play() int {
	c := console.New(os.Stdin, os.Stdout, game.NewLogObserver(log.Logger))
	if err := c.Run(); err != nil {
		log.Debug().Err(err).Msg("session ended abnormally")
		return 1
	}
	return 0
}

func serve() {
	rs, err := results.Open(context.Background(), getEnv("RESULTS_DSN", results.DefaultDSN))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open results store")
	}
	defer rs.Close()

	srv := httpserver.New(store.NewMemoryStore(), rs, httpserver.Options{
		Secret:       sessionSecret(),
		TTL:          time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		ClientOrigin: os.Getenv("CLIENT_ORIGIN"),
	})
	port := getEnv("PORT", "5176")
	log.Info().Str("port", port).Msg("starting mastermind server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// sessionSecret returns SESSION_SECRET, or a random key that lives as long
// as the process.
func sessionSecret() []byte {
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		return []byte(v)
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("generate session secret")
	}
	log.Warn().Msg("SESSION_SECRET not set; tokens will not survive a restart")
	return b
}
