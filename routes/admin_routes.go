package routes

import (
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/anjiri1684/car_rental/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/analytics", handlers.GetDashboardAnalytics)

	// The feed socket authenticates itself with a first-frame token message.
	api.Use("/admin/feed", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/admin/feed", websocket.New(handlers.ServeAdminFeed))
}
