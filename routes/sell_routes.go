package routes

import (
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/anjiri1684/car_rental/middleware"
	"github.com/gofiber/fiber/v2"
)

func SellRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/sell", handlers.SubmitSellForm)

	adminSell := api.Group("/admin/sell-submissions", middleware.Protected(), middleware.AdminRequired())
	adminSell.Get("/stats", handlers.GetSellSubmissionStats)
	adminSell.Get("", handlers.GetSellSubmissions)
	adminSell.Patch("/:submissionId/status", handlers.UpdateSellSubmissionStatus)
}
