package config

import (
	"quotation-merger/internal/domain"
	"quotation-merger/internal/pdf"
	"quotation-merger/internal/service"
	"quotation-merger/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config       domain.Config
	Logger       domain.Logger
	Compositor   domain.Compositor
	Assembler    domain.Assembler
	MergeService domain.MergeService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	compositor := pdf.NewCompositor()
	assembler := pdf.NewAssembler(compositor)
	mergeService := service.NewMergeService(assembler, compositor, config, appLogger)

	return &Container{
		Config:       config,
		Logger:       appLogger,
		Compositor:   compositor,
		Assembler:    assembler,
		MergeService: mergeService,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetMergeService returns the merge use case
func (c *Container) GetMergeService() domain.MergeService {
	return c.MergeService
}
