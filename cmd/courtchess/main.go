// Command courtchess plays 3×3 court chess by trading links. Each move prints
// a link for the opponent; opening the opponent's link with `receive` brings
// the local game up to date.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"courtchess/internal/store"
)

func main() {
	// Flags (env fallbacks).
	dataDir := flag.String("data", getenv("COURTCHESS_DATA", defaultDataDir()), "directory holding the local game store")
	baseURL := flag.String("base-url", getenv("COURTCHESS_BASE_URL", "https://courtchess.app/play"), "page the shared links point at")
	name := flag.String("name", getenv("COURTCHESS_NAME", ""), "your display name (2-20 characters)")
	mode := flag.String("mode", getenv("COURTCHESS_MODE", ""), "link or hotseat; remembered once set")
	debug := flag.Bool("debug", getenb("COURTCHESS_DEBUG", false), "verbose logging")
	flag.Usage = usage
	flag.Parse()

	logger := newLogger(*debug)
	defer func() { _ = logger.Sync() }()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	backend, err := store.OpenBadger(*dataDir, logger)
	if err != nil {
		logger.Fatal("open store", zap.String("dir", *dataDir), zap.Error(err))
	}
	st := store.New(backend, logger)

	a := &app{
		store:   st,
		log:     logger,
		out:     os.Stdout,
		baseURL: *baseURL,
		name:    strings.TrimSpace(*name),
		mode:    strings.TrimSpace(*mode),
	}
	runErr := a.run(flag.Arg(0), flag.Args()[1:])
	if err := st.Close(); err != nil {
		logger.Warn("close store", zap.Error(err))
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "courtchess: %v\n", runErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: courtchess [flags] <command> [args]

commands:
  new [-lineup RNB] [-dark-lineup RNB]   start a game as light and print its link
  join <link>                            take the dark seat of a game you were sent
  receive <link>                         apply your opponent's latest link
  resync <link>                          replace a diverged local game with a fresh link
  move <row,col> <row,col|off>           make a move and print the link to send back
  moves <row,col>                        list legal destinations of a piece
  show                                   print the board
  link                                   print the link for the current position

flags:
`)
	flag.PrintDefaults()
}

func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.OutputPaths = []string{"stderr"}
		logger, err = cfg.Build()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "courtchess: logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "courtchess")
	}
	return ".courtchess"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
