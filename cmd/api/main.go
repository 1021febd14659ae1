package main

import (
	"log"
	"time"

	config "github.com/anjiri1684/car_rental/configs"
	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/anjiri1684/car_rental/jobs"
	"github.com/anjiri1684/car_rental/notifications"
	"github.com/anjiri1684/car_rental/payments"
	"github.com/anjiri1684/car_rental/repository"
	"github.com/anjiri1684/car_rental/routes"
	"github.com/anjiri1684/car_rental/services"
	"github.com/anjiri1684/car_rental/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	gateways := payments.NewRegistry(
		payments.NewStripeGateway(config.Config("STRIPE_SECRET_KEY")),
		payments.NewFlutterwaveGateway(config.Config("FLUTTERWAVE_SECRET_KEY")),
		payments.NewPaystackGateway(config.Config("PAYSTACK_SECRET_KEY")),
	)

	rentalStore := repository.NewRentalRepository(database.DB)
	rentalService := services.NewRentalService(rentalStore)
	paymentService := services.NewPaymentService(rentalStore, gateways, config.Config("FRONTEND_URL"))

	rentalHandler := handlers.NewRentalHandler(rentalService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	c := cron.New()
	c.AddFunc("@hourly", jobs.ActivateDueRentals)
	c.AddFunc("@hourly", jobs.CompleteFinishedRentals)
	go c.Start()
	log.Println("✅ Cron jobs for rental lifecycle scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Car Rental",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Car Rental API",
		})
	})

	routes.AuthRoutes(app)
	routes.CarRoutes(app)
	routes.RentalRoutes(app, rentalHandler)
	routes.PaymentRoutes(app, paymentHandler)
	routes.SellRoutes(app)
	routes.BlogRoutes(app)
	routes.AdminRoutes(app)
	routes.UploadRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
