package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bkga-dev/bkga/pkg/serve"
)

var serveFlags annotatorFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as streaming server for editor integration",
	Long: `Run bkga as a long-lived streaming server that accepts analyze requests
via stdin and writes annotations to stdout using NDJSON format.

This mode is designed for editor hosts. The process loads its configuration,
rules and dictionary once at startup and processes requests until stdin
closes or SIGTERM is received.`,
	RunE: runServe,
}

func init() {
	serveFlags.register(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	serveFlags.apply(cmd, cfg)

	// stdout carries the protocol, so logs always go to stderr
	logger := newLogger(cmd.ErrOrStderr())

	annotator, err := newAnnotator(cfg, logger)
	if err != nil {
		return err
	}

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create and run server
	srv := serve.NewServer(annotator, cmd.InOrStdin(), cmd.OutOrStdout(),
		serve.WithLogger(logger),
		serve.WithDefaults(cfg.IgnoreEnglish, cfg.Enabled),
	)
	return srv.Run(ctx)
}
