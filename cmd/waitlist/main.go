package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/himaSH97/tc-servey/client"
	"github.com/himaSH97/tc-servey/form"
	"github.com/himaSH97/tc-servey/locale"
	"go.uber.org/zap"
)

func main() {

	log, err := newLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorw("waitlist", "err", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		Server struct {
			URL string `conf:"default:http://localhost:3000"`
		}
		Lang     string
		PrefFile string
	}{}

	help, err := conf.Parse("WAITLIST_CLIENT", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	if cfg.PrefFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("locating config dir: %w", err)
		}
		cfg.PrefFile = filepath.Join(dir, "tourconnect", "lang")
	}

	// =========================================================================
	// Language preference

	pref, err := locale.LoadPreference(cfg.PrefFile)
	if err != nil {
		return fmt.Errorf("loading language preference: %w", err)
	}
	if cfg.Lang != "" {
		if err := pref.Set(cfg.Lang); err != nil {
			return fmt.Errorf("setting language: %w", err)
		}
	}
	log.Debugw("startup", "server", cfg.Server.URL, "lang", pref.Tag().String())

	// =========================================================================
	// Form

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := &terminal{
		in:   bufio.NewScanner(os.Stdin),
		out:  os.Stdout,
		pref: pref,
		log:  log,
	}
	t.session = client.NewSession(form.New(), client.New(cfg.Server.URL), client.WithCelebration(t.celebrate))

	t.printf("Join the Tour connect waitlist. Type :lang si to switch language, :quit to leave.\n")

	if err := t.run(ctx); err != nil && !errors.Is(err, errQuit) {
		return err
	}

	// Let a pending celebration print before exiting.
	time.Sleep(client.CelebrationDelay)
	return nil
}

func newLog() (*zap.SugaredLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if os.Getenv("WAITLIST_CLIENT_DEBUG") != "" {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}
