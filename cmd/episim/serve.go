package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/episim/internal/logging"
	"github.com/san-kum/episim/internal/server"
)

var (
	serveAddr string
	maxSteps  int
)

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// serve logs requests at info unless a level is given.
	if !cmd.Flags().Changed("log-level") {
		l, err := logging.New(logEnv, "info")
		if err != nil {
			return err
		}
		logger = l
	}

	srv := server.New(logger, server.Options{MaxSteps: maxSteps})
	return srv.ListenAndServe(ctx, serveAddr)
}
