package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/kjeyarn/lending-gateway/client/cli"
	"github.com/kjeyarn/lending-gateway/pkg/logger"
)

func main() {
	_ = godotenv.Load() //nolint:errcheck

	var cfg cli.Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	// KJEYARN_LOG_LEVEL, KJEYARN_LOG_SINK. Stdout belongs to the command output.
	if err := envconfig.Process("kjeyarn", &cfg.Log); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := zap.NewNop()
	if cfg.Log.Sink != "" {
		log = logger.NewLogger(cfg.Log, "kjeyarn")
	}
	defer log.Sync() //nolint:errcheck

	if err := cli.NewApp(cfg, log, os.Stdin, os.Stdout).RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
