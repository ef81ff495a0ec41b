package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jask/tickerdeck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := setup(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = a.cfg.Server.Addr
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		s := &server.Server{Collector: a.collector}
		return s.Serve(ctx, ln)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, 127.0.0.1:5002)")
}
