package audit

import (
	"context"
	"time"

	"stock-manager/core/market"
	"stock-manager/core/reconcile"
	"stock-manager/feature/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	config  reconcile.Config
	service *Service
	handler *Handler
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewFeature creates the audit feature with its scheduled sweep.
func NewFeature(cfg reconcile.Config, entries stock.EntryRepository, marketClient market.Client, logger *zap.Logger) *Feature {
	svc := NewService(entries, marketClient, time.Duration(cfg.CacheTTLSeconds)*time.Second, logger)
	return &Feature{
		config:  cfg,
		service: svc,
		handler: NewHandler(svc),
		logger:  logger,
	}
}

// Service exposes the audit service for commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "audit"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.config.Enabled
}

// Load registers the feature's routes and starts the scheduled sweep.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)

	f.cron = cron.New()
	if _, err := f.cron.AddFunc(f.config.Schedule, func() {
		f.service.Sweep(context.Background())
	}); err != nil {
		return err
	}
	f.cron.Start()
	f.logger.Info("listing audit sweep scheduled", zap.String("schedule", f.config.Schedule))
	return nil
}

// Stop halts the scheduled sweep and waits for a running one to finish.
func (f *Feature) Stop() {
	if f.cron != nil {
		<-f.cron.Stop().Done()
	}
}
