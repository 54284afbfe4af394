/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ssargent/venuedb/pkg/config"
	"github.com/ssargent/venuedb/pkg/di"
	"github.com/ssargent/venuedb/pkg/store"
)

var container *di.Container

// SetContainer sets the dependency injection container
func SetContainer(c *di.Container) {
	container = c
}

type contextKey string

const sessionKey contextKey = "session"

// skipStore marks commands that run without opening the venue store
const skipStore = "venuedb/skip-store"

// session is what PersistentPreRunE prepares for every command
type session struct {
	cfg    *config.Config
	logger *logrus.Logger
	store  *store.VenueStore
}

func sessionFrom(cmd *cobra.Command) (*session, error) {
	rt, ok := cmd.Context().Value(sessionKey).(*session)
	if !ok {
		return nil, errors.New("session not found in context")
	}
	return rt, nil
}

func storeFrom(cmd *cobra.Command) (*store.VenueStore, error) {
	rt, err := sessionFrom(cmd)
	if err != nil {
		return nil, err
	}
	if rt.store == nil {
		return nil, errors.New("store not found in context")
	}
	return rt.store, nil
}

// NewRootCmd builds the venuedb command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "venuedb",
		Short: "VenueDB - venue and seating plan manager",
		Long: `VenueDB manages venues, their seating plans and seat reservations.

All venues live in a single binary data file which is rewritten
atomically after every change.`,
		SilenceUsage:       true,
		PersistentPreRunE:  prepare,
		PersistentPostRunE: release,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/venuedb/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for the store")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file to load before reading config")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table or json)")

	rootCmd.AddCommand(
		newInitCmd(),
		newVenueCmd(),
		newPlanCmd(),
		newSeatCmd(),
		newSnapshotCmd(),
		newStatsCmd(),
		newServeCmd(),
	)
	releaseOnError(rootCmd)
	return rootCmd
}

// releaseOnError closes the store when a command fails. Cobra skips the
// post-run hooks after RunE returns an error.
func releaseOnError(c *cobra.Command) {
	for _, child := range c.Commands() {
		releaseOnError(child)
	}
	if c.RunE == nil {
		return
	}
	runE := c.RunE
	c.RunE = func(cmd *cobra.Command, args []string) error {
		if err := runE(cmd, args); err != nil {
			_ = release(cmd, args)
			return err
		}
		return nil
	}
}

// Execute builds the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// prepare resolves configuration, builds the logger and opens the store
func prepare(cmd *cobra.Command, args []string) error {
	if container == nil {
		container = di.NewContainer()
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := container.GetLoggerFactory().CreateLogger(cfg.Logging)
	if err != nil {
		return err
	}
	logger.SetOutput(cmd.ErrOrStderr())

	rt := &session{cfg: cfg, logger: logger}
	if cmd.Annotations[skipStore] != "true" {
		venueStore, result, err := container.GetStoreFactory().OpenStore(cfg, logger)
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"venues": result.Venues,
			"seats":  result.Seats,
			"bytes":  result.Bytes,
		}).Debug("store loaded")
		rt.store = venueStore
	}

	cmd.SetContext(context.WithValue(cmd.Context(), sessionKey, rt))
	return nil
}

func release(cmd *cobra.Command, args []string) error {
	rt, err := sessionFrom(cmd)
	if err != nil || rt.store == nil {
		return nil
	}
	return rt.store.Close()
}

// resolveConfig layers defaults, the config file, the environment and flags
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	configPath, _ := flags.GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if flags.Changed("data-dir") {
		cfg.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	return cfg, nil
}

// parseVenueID parses a venue or seat id argument
func parseVenueID(arg string) (int32, error) {
	id, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return int32(id), nil
}
