package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"stock-manager/core/config"
	"stock-manager/core/database"
	"stock-manager/core/errlog"
	"stock-manager/core/loader"
	"stock-manager/core/logger"
	"stock-manager/core/market"
	"stock-manager/core/middleware/auth"
	"stock-manager/core/middleware/rayid"
	"stock-manager/core/notify"
	"stock-manager/core/storage"

	"stock-manager/feature/audit"
	"stock-manager/feature/catalog"
	"stock-manager/feature/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "stock-manager/docs/swagger"
)

// @title Stock Manager API
// @version 1.0
// @description API for managing a trader's stock ledger and marketplace listings.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stock manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the ledger database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to ledger database", zap.Error(err))
		}
		logg.Info("Connected to ledger database")

		// 4. Durable error log
		errLog, err := errlog.Open(cfg.ErrLog.Path)
		if err != nil {
			logg.Fatal("Failed to open error log", zap.Error(err))
		}
		defer errLog.Close()

		// 5. Catalog storage and resolver
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		resolver := catalog.NewResolver(store, cfg.Storage.Bucket, logg)

		// 6. Marketplace client and notifiers, constructed eagerly so a
		// misconfiguration surfaces at startup, not on the first sale.
		marketClient := market.NewClient(cfg.Market)
		notifier := notify.Multi{notify.NewLogNotifier(logg)}
		if cfg.Server.WebhookURL != "" {
			notifier = append(notifier, notify.NewWebhookNotifier(cfg.Server.WebhookURL, logg))
		}

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 8. Features
		mgr := loader.NewManager()
		stockFeature := stock.NewFeature(db, resolver, marketClient, notifier, errLog, logg)
		auditFeature := audit.NewFeature(cfg.Audit, stock.NewEntryRepository(db), marketClient, logg)
		mgr.Register(stockFeature)
		mgr.Register(auditFeature)

		// Middleware: ray id first so everything downstream is traceable.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger documentation stays public; the API itself is keyed.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		auditFeature.Stop()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
