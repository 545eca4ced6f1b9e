package app

import (
	"strings"

	"go-parts-inventory/internal/handler"
	"go-parts-inventory/internal/middleware"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/internal/service"
	"go-parts-inventory/internal/ws"
	"go-parts-inventory/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Options struct {
	AppName     string
	DB          *gorm.DB
	Hub         *ws.Hub // nil disables /ws and event publishing
	CORSOrigins []string
	Registry    *prometheus.Registry // nil uses a fresh registry
}

// New wires repositories, services and handlers onto a fiber app
func New(opts Options) *fiber.App {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	// Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(opts.DB)
	txRepo := repository.NewTransactionRepo(opts.DB)

	var publisher service.EventPublisher
	if opts.Hub != nil {
		publisher = opts.Hub
	}
	invService := service.NewInventoryService(productRepo, txRepo, publisher)
	sumService := service.NewSummaryService(txRepo)

	invHandler := handler.NewInventoryHandler(invService)
	sumHandler := handler.NewSummaryHandler(sumService)

	app := fiber.New(fiber.Config{
		AppName: opts.AppName,
	})

	metrics := middleware.NewMetrics(opts.Registry)

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(opts.CORSOrigins),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(middleware.StructuredLogging())
	app.Use(metrics.Handler())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to the Phone Repair Parts Inventory API"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := opts.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			logger.Error(c.UserContext()).Err(err).Msg("Health check failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	// Product Routes; low-stock is registered before :id so it is not parsed as an ID
	products := app.Group("/products")
	products.Get("/", invHandler.GetProducts)
	products.Post("/", invHandler.CreateProduct)
	products.Get("/low-stock", invHandler.GetLowStockProducts)
	products.Get("/:id", invHandler.GetProduct)
	products.Put("/:id", invHandler.UpdateProduct)
	products.Delete("/:id", invHandler.DeleteProduct)

	// Transaction Routes
	transactions := app.Group("/transactions")
	transactions.Get("/", invHandler.GetTransactions)
	transactions.Post("/", invHandler.CreateTransaction)
	transactions.Get("/:id", invHandler.GetTransaction)
	transactions.Delete("/:id", invHandler.DeleteTransaction)

	// Summary Routes
	summary := app.Group("/summary")
	summary.Get("/", sumHandler.GetFinancialSummary)
	summary.Get("/stock-movement", sumHandler.GetStockMovement)

	if opts.Hub != nil {
		registerWebSocket(app, opts.Hub)
	}

	return app
}

func registerWebSocket(app *fiber.App, hub *ws.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Add(c) {
			return
		}
		defer hub.Remove(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}

// corsOrigins collapses the list to "*" when any entry is a wildcard
func corsOrigins(origins []string) string {
	cleaned := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" {
			return "*"
		}
		cleaned = append(cleaned, o)
	}
	if len(cleaned) == 0 {
		return "*"
	}
	return strings.Join(cleaned, ",")
}
