// Package di provides dependency injection container
package di

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ssargent/venuedb/pkg/api" //nolint:depguard
	"github.com/ssargent/venuedb/pkg/config"
	"github.com/ssargent/venuedb/pkg/logging"
	"github.com/ssargent/venuedb/pkg/store"
)

// StoreFactory opens venue stores
type StoreFactory interface {
	// OpenStore creates and opens the store described by cfg
	OpenStore(cfg *config.Config, logger *logrus.Logger) (*store.VenueStore, *store.LoadResult, error)
}

// LoggerFactory builds loggers
type LoggerFactory interface {
	CreateLogger(cfg config.Logging) (*logrus.Logger, error)
}

// Container holds all the dependencies for the application
type Container struct {
	storeFactory  StoreFactory
	loggerFactory LoggerFactory
	serverFactory api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		storeFactory:  &DefaultStoreFactory{},
		loggerFactory: &DefaultLoggerFactory{},
		serverFactory: api.NewServerFactory(),
	}
}

// GetStoreFactory returns the store factory
func (c *Container) GetStoreFactory() StoreFactory {
	return c.storeFactory
}

// GetLoggerFactory returns the logger factory
func (c *Container) GetLoggerFactory() LoggerFactory {
	return c.loggerFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetStoreFactory allows overriding the store factory (for testing)
func (c *Container) SetStoreFactory(factory StoreFactory) {
	c.storeFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// DefaultStoreFactory opens a store on the local filesystem
type DefaultStoreFactory struct{}

// OpenStore creates and opens the store described by cfg
func (f *DefaultStoreFactory) OpenStore(cfg *config.Config, logger *logrus.Logger) (*store.VenueStore, *store.LoadResult, error) {
	venueStore, err := store.NewVenueStore(store.Config{
		DataDir:     cfg.DataDir,
		DataFile:    cfg.DataFile,
		SnapshotDir: cfg.SnapshotDir(),
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create store: %w", err)
	}

	result, err := venueStore.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return venueStore, result, nil
}

// DefaultLoggerFactory builds stderr loggers
type DefaultLoggerFactory struct{}

// CreateLogger builds a logger from the logging configuration
func (f *DefaultLoggerFactory) CreateLogger(cfg config.Logging) (*logrus.Logger, error) {
	return logging.New(cfg)
}
