package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ayusman/humanhanddetect/internal/app"
	"github.com/ayusman/humanhanddetect/internal/config"
	"github.com/ayusman/humanhanddetect/internal/logging"
	"github.com/ayusman/humanhanddetect/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to the JSON configuration file (required)")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	log := logging.New(*verbose)

	if *configPath == "" {
		log.Error().Msg("--config is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, log)
	if err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}

	// The journal is advisory; a run proceeds without one.
	st := openJournal(log)
	if st != nil {
		defer st.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := app.New(app.Config{
		Cfg:   cfg,
		Store: st,
		Log:   log,
	})

	if err := a.Run(ctx); err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}
}

// openJournal opens the capture-session journal under the user's home
// directory. Failures are logged and tolerated.
func openJournal(log zerolog.Logger) *store.Store {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("failed to locate home directory, journal disabled")
		return nil
	}

	dataDir := filepath.Join(homeDir, ".humanhanddetect")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Warn().Err(err).Msg("failed to create data directory, journal disabled")
		return nil
	}

	st, err := store.New(filepath.Join(dataDir, "humanhanddetect.db"))
	if err != nil {
		log.Warn().Err(err).Msg("failed to open journal, continuing without it")
		return nil
	}

	return st
}
