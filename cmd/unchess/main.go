package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mway1/unchess/internal/config"
)

func main() {
	cfgPath := pflag.StringP("config", "c", "", "path to a configuration file")
	pflag.Parse()

	cfg, err := config.Setup(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup configuration:", err)
		os.Exit(1)
	}

	logger := NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	r, err := newRepl(cfg, logger, os.Stdout)
	if err != nil {
		logger.Fatalw("Failed to start session", zap.Error(err))
	}
	fmt.Fprint(os.Stdout, helpText)
	if err := r.run(os.Stdin); err != nil {
		logger.Fatalw("Session ended with error", zap.Error(err))
	}
}

func NewLogger(level string) *zap.SugaredLogger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
