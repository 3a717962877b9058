package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/bornholm/compass/internal/config"
	"github.com/bornholm/compass/internal/setup"
	"github.com/bornholm/compass/pkg/log"
	"github.com/pkg/errors"

	_ "github.com/bornholm/compass/internal/docs/all"
)

var (
	configFile string = ""
	dumpConfig bool   = false
)

func init() {
	flag.StringVar(&configFile, "config", configFile, "configuration file")
	flag.BoolVar(&dumpConfig, "dump-config", dumpConfig, "dump default configuration file and exit")
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := config.NewDefaultConfig()

	if dumpConfig {
		if err := config.Dump(os.Stdout, conf); err != nil {
			slog.ErrorContext(ctx, "could not dump config file", log.Error(errors.WithStack(err)))
			os.Exit(1)
		}

		os.Exit(0)
	}

	if configFile != "" {
		if err := config.LoadFile(configFile, conf); err != nil {
			slog.ErrorContext(ctx, "could not parse config file", log.Error(errors.WithStack(err)), slog.String("file", configFile))
			os.Exit(1)
		}
	}

	if err := config.Interpolate(conf); err != nil {
		slog.ErrorContext(ctx, "could not interpolate config file", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	handlerOptions := &slog.HandlerOptions{
		Level:     slog.Level(conf.Logger.Level),
		AddSource: true,
	}

	var logHandler slog.Handler
	switch conf.Logger.Format {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOptions)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOptions)
	}

	logger := slog.New(log.ContextHandler{
		Handler: logHandler,
	})

	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(slog.Level(conf.Logger.Level))

	handler, err := setup.NewHandlerFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not generate handler from config", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	if conf.Debug.Address != "" {
		debugHandler, err := setup.NewDebugHandlerFromConfig(ctx, conf)
		if err != nil {
			slog.ErrorContext(ctx, "could not generate debug handler from config", log.Error(errors.WithStack(err)))
			os.Exit(1)
		}

		go func() {
			slog.InfoContext(ctx, "debug server listening", slog.String("addr", string(conf.Debug.Address)))

			if err := http.ListenAndServe(string(conf.Debug.Address), debugHandler); err != nil {
				slog.ErrorContext(ctx, "could not listen", log.Error(errors.WithStack(err)))
			}
		}()
	}

	server := http.Server{
		Addr:    string(conf.HTTP.Address),
		Handler: handler,
	}

	slog.InfoContext(ctx, "http server listening", slog.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.ErrorContext(ctx, "could not listen", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}
}
