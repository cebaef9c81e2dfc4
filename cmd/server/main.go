// Package main - Entry point for the website-audit estimation server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"website-audit/api"
	"website-audit/internal/config"
	"website-audit/internal/logging"
)

var version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "", "Config file (default $HOME/.website-audit.json)")
	addr := flag.String("addr", "", "Server address (default from config)")
	flag.Parse()

	if err := run(*cfgPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, addr string) error {
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("starting server", zap.String("addr", addr), zap.String("version", version))
	return api.NewServer(version, cfg).ListenAndServe(ctx, addr)
}
