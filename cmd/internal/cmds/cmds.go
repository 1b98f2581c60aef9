package cmds

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.senan.xyz/flagconf"
	"go.senan.xyz/preptag"
	"go.senan.xyz/preptag/naming"
	"go.senan.xyz/preptag/pathformat"
)

func Logging() (exit func()) {
	var logLevel slog.LevelVar
	flag.TextVar(&logLevel, "log-level", &logLevel, "set the logging level")

	h := &slogErrorHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel}),
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(slog.LevelError)

	return func() {
		if h.hadSlogError.Load() {
			os.Exit(1)
		}
		os.Exit(0)
	}
}

type slogErrorHandler struct {
	slog.Handler
	hadSlogError atomic.Bool
}

func (n *slogErrorHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level == slog.LevelError {
		n.hadSlogError.Store(true)
	}
	return n.Handler.Handle(ctx, r)
}

func FlagParse() {
	userConfig, _ := os.UserConfigDir()
	defaultConfigPath := filepath.Join(userConfig, preptag.Name, "config")
	configPath := flag.String("config-path", defaultConfigPath, "path config file")

	printVersion := flag.Bool("version", false, "print the version")
	printConfig := flag.Bool("config", false, "print the parsed config")

	flag.Parse()
	flagconf.ReadEnvPrefix = func(_ *flag.FlagSet) string { return preptag.Name }
	flagconf.ParseEnv()
	flagconf.ParseConfig(*configPath)

	if *printVersion {
		fmt.Printf("%s %s\n", flag.CommandLine.Name(), preptag.Version)
		os.Exit(0)
	}
	if *printConfig {
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("%-16s %s\n", f.Name, f.Value)
		})
		os.Exit(0)
	}
}

func FlagConfig() *preptag.Config {
	cfg := preptag.NewConfig()

	flag.Var(&formatParser{&cfg.AlbumFormat, naming.AlbumFields}, "album-format", "album folder output format. fields: {album}, {year}")
	flag.Var(&formatParser{&cfg.TrackFormat, naming.TrackFields}, "track-format", "track filename output format, without extension. fields: {track}, {title}")
	flag.BoolVar(&cfg.PrettyDiff, "diff", false, "show planned renames as a coloured diff")

	return cfg
}

var _ flag.Value = (*formatParser)(nil)

type formatParser struct {
	*pathformat.Format
	fields pathformat.Fields
}

func (pf *formatParser) Set(value string) error {
	return pf.Parse(value, pf.fields)
}
func (pf formatParser) String() string {
	if pf.Format == nil {
		return ""
	}
	return pf.Format.String()
}
