package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"pharmacy-manager/core/config"
	"pharmacy-manager/core/loader"
	"pharmacy-manager/core/logger"
	"pharmacy-manager/core/middleware/auth"
	"pharmacy-manager/core/middleware/rayid"
	"pharmacy-manager/core/store"
	"pharmacy-manager/feature/catalog"
	"pharmacy-manager/feature/inventory"
	"pharmacy-manager/feature/orders"
	"pharmacy-manager/feature/purchasing"
	"pharmacy-manager/feature/schema"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the pharmacy manager server",
	Long:  `Opens the store (running pending migrations) and starts the HTTP server with all enabled features.`,
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

		// 3. Open the store. A migration failure is fatal: no degraded mode.
		st, err := store.Open(cfg.Store, schema.Current())
		if err != nil {
			logg.Fatal("Failed to open store", zap.Error(err))
		}
		defer st.Close()
		logg.Info("Store opened",
			zap.String("driver", cfg.Store.Driver),
			zap.Int("schema_version", st.Version()))

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request failed", zap.Error(err))
			}
			return err
		})

		// 3. API key check (disabled when no key is configured)
		app.Use(auth.New(cfg.Server.ApiKey))

		// 5. Register Features
		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(st, logg))
		mgr.Register(inventory.NewFeature(st, logg))
		mgr.Register(purchasing.NewFeature(st, logg))
		mgr.Register(orders.NewFeature(st, logg))

		if err := mgr.LoadAll(app, logg); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Graceful shutdown on SIGINT/SIGTERM
		go func() {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			logg.Info("Shutting down")
			_ = app.Shutdown()
		}()

		logg.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logg.Fatal("Server failed", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
