package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/navtree/internal/app"
	"github.com/dgallion1/navtree/internal/logging"
)

var servePort string

var errServeFile = errors.New("serve fetches from --url or NAVTREE_CONTENTS_URL; --file is not supported")

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the navigation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if srcFile != "" {
			return errServeFile
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != "" {
			cfg.Port = servePort
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
		return app.New(cfg, log).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (default from PORT)")
}
