package stock

import (
	"stock-manager/core/market"
	"stock-manager/core/notify"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	engine  *Engine
	handler *Handler
}

// NewFeature creates the stock feature with its full dependency chain.
func NewFeature(
	db *gorm.DB,
	resolver CatalogResolver,
	marketClient market.Client,
	notifier notify.Notifier,
	errs ErrorRecorder,
	logger *zap.Logger,
) *Feature {
	engine := NewEngine(
		NewEntryRepository(db),
		NewTransactionLog(db),
		resolver,
		marketClient,
		notifier,
		errs,
		logger,
	)
	return &Feature{engine: engine, handler: NewHandler(engine, logger)}
}

// Engine exposes the reconciliation engine for other features and commands.
func (f *Feature) Engine() *Engine {
	return f.engine
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "stock"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
