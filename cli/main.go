package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/text/message"

	"ytexport/internal/config"
	"ytexport/internal/i18n"
	xlog "ytexport/internal/log"
	"ytexport/internal/retry"
	"ytexport/internal/storage"
	"ytexport/internal/youtube"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ytexport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Config file (yaml or json). Default: ytexport.yaml, ytexport.yml or ytexport.json if present")
	channelID := fs.String("channel", "", "Channel ID (overrides "+config.EnvChannelID+")")
	outPath := fs.String("out", "", "Output file (default "+config.DefaultOutputPath+")")
	lang := fs.String("lang", "", "Message language: ja or en")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, `ytexport - export a YouTube channel and its uploads to JSON

Usage:
  ytexport [flags]

Environment:
  %s       YouTube Data API key (required)
  %s    Channel ID, e.g. UCxxxxxxxxxxxxxxxxxxxxxx (required)

Flags:
`, config.EnvAPIKey, config.EnvChannelID)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(getenv, *configPath)
	if err != nil {
		p := i18n.NewPrinter(firstNonEmpty(*lang, getenv(config.EnvLanguage)))
		fmt.Fprintln(stderr, p.Sprintf(i18n.ConfigError, err))
		return 1
	}
	setFlag(&cfg.ChannelID, *channelID)
	setFlag(&cfg.OutputPath, *outPath)
	setFlag(&cfg.Language, *lang)
	setFlag(&cfg.LogLevel, *logLevel)

	p := i18n.NewPrinter(cfg.Language)
	runID := uuid.NewString()
	xlog.Configure(xlog.Config{Level: cfg.LogLevel, Output: stderr, RunID: runID})
	logger := xlog.WithComponent("cli")

	if err := cfg.Validate(); err != nil {
		printConfigError(p, stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, p.Sprintf(i18n.Fetching))
	logger.Info().Str("channel_id", cfg.ChannelID).Str("output", cfg.OutputPath).Msg("starting export")

	rc := retry.DefaultConfig()
	rc.MaxRetries = cfg.MaxRetries
	rc.InitialBackoff = cfg.InitialBackoff
	rc.MaxBackoff = cfg.MaxBackoff

	api, err := youtube.NewDataAPI(ctx, youtube.Options{
		APIKey:            cfg.APIKey,
		Endpoint:          cfg.Endpoint,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Retry:             rc,
	})
	if err != nil {
		fmt.Fprintln(stderr, p.Sprintf(i18n.FetchFailedCause, err))
		return 1
	}

	dataset, err := youtube.FetchChannelData(ctx, api, cfg.ChannelID)
	if err != nil {
		logger.Error().Err(err).Msg("export failed")
		if errors.Is(err, youtube.ErrChannelNotFound) {
			fmt.Fprintln(stderr, p.Sprintf(i18n.ChannelNotFound))
			fmt.Fprintln(stderr, p.Sprintf(i18n.FetchFailed))
		} else {
			fmt.Fprintln(stderr, p.Sprintf(i18n.FetchFailedCause, err))
		}
		return 1
	}

	if err := storage.WriteJSON(cfg.OutputPath, dataset); err != nil {
		logger.Error().Err(err).Msg("write failed")
		fmt.Fprintln(stderr, p.Sprintf(i18n.WriteFailed, cfg.OutputPath, err))
		return 1
	}

	logger.Info().Int("videos", len(dataset.Videos)).Msg("export complete")
	fmt.Fprintln(stdout, p.Sprintf(i18n.Saved, cfg.OutputPath))
	return 0
}

func printConfigError(p *message.Printer, w io.Writer, err error) {
	switch {
	case errors.Is(err, config.ErrMissingAPIKey):
		fmt.Fprintln(w, p.Sprintf(i18n.MissingAPIKey, config.EnvAPIKey))
	case errors.Is(err, config.ErrMissingChannelID):
		fmt.Fprintln(w, p.Sprintf(i18n.MissingChannelID, config.EnvChannelID))
	default:
		fmt.Fprintln(w, p.Sprintf(i18n.ConfigError, err))
	}
}

func setFlag(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
