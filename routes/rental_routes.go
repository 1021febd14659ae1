package routes

import (
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/anjiri1684/car_rental/middleware"
	"github.com/gofiber/fiber/v2"
)

func RentalRoutes(app *fiber.App, h *handlers.RentalHandler) {
	api := app.Group("/api/v1")

	rentals := api.Group("/rentals")
	rentals.Post("/check-availability", h.CheckAvailability)
	rentals.Post("", middleware.Protected(), h.CreateRental)
	rentals.Get("/my-rentals", middleware.Protected(), h.GetMyRentals)
	rentals.Get("/all", middleware.Protected(), middleware.AdminRequired(), h.GetAllRentals)
	rentals.Patch("/:rentalId/status", middleware.Protected(), middleware.AdminRequired(), h.UpdateRentalStatus)
}
