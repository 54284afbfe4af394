/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"os"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ssargent/venuedb/pkg/api"
	"github.com/ssargent/venuedb/pkg/config"
	death "gopkg.in/vrecan/death.v3"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the VenueDB REST API server. Every /api/v1 route, including
/api/v1/health, needs the X-API-Key header. /metrics and /swagger are open.

When the configured key is "auto" a key is generated for this run and
logged once.

Examples:
  venuedb serve --port 8080
  VENUEDB_API_KEY=mysecretkey venuedb serve --bind 0.0.0.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			venueStore, err := storeFrom(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			serverConfig := api.ServerConfig{
				Port:   rt.cfg.Port,
				Bind:   rt.cfg.Bind,
				APIKey: rt.cfg.Security.APIKey,
				Color:  rt.cfg.Render.Color,
			}
			if flags.Changed("port") {
				serverConfig.Port, _ = flags.GetInt("port")
			}
			if flags.Changed("bind") {
				serverConfig.Bind, _ = flags.GetString("bind")
			}
			if flags.Changed("api-key") {
				serverConfig.APIKey, _ = flags.GetString("api-key")
			}

			if serverConfig.APIKey == "" || serverConfig.APIKey == "auto" {
				key, err := config.GenerateSecureKey(32)
				if err != nil {
					return err
				}
				serverConfig.APIKey = key
				rt.logger.WithField("api_key", key).Warn("no API key configured, generated one for this run")
			}

			starter := container.GetServerFactory().CreateServerStarter()
			return runUntilSignal(func() error {
				return starter.StartServer(venueStore, serverConfig, rt.logger)
			}, death.NewDeath(syscall.SIGINT, syscall.SIGTERM, os.Interrupt), rt.logger)
		},
	}
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key for authentication")
	return serveCmd
}

// runUntilSignal runs serve until it fails or d receives a shutdown signal.
// It returns only after the signal watcher goroutine has exited.
func runUntilSignal(serve func() error, d *death.Death, logger *logrus.Logger) error {
	served := make(chan error, 1)
	go func() {
		served <- serve()
	}()

	signalled := make(chan struct{})
	watcher := make(chan struct{})
	go func() {
		defer close(watcher)
		d.WaitForDeathWithFunc(func() { close(signalled) })
	}()

	select {
	case err := <-served:
		// release the watcher, it would otherwise wait for a signal forever
		d.FallOnSword()
		<-watcher
		if err == nil {
			return errors.New("server stopped unexpectedly")
		}
		return err
	case <-signalled:
		<-watcher
		logger.Info("shutting down")
		return nil
	}
}
