package routes

import (
	"github.com/anjiri1684/car_rental/handlers"
	"github.com/anjiri1684/car_rental/middleware"
	"github.com/gofiber/fiber/v2"
)

func CarRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	cars := api.Group("/cars")
	cars.Get("", handlers.GetCars)
	cars.Get("/:carId", handlers.GetCar)

	adminCars := api.Group("/admin/cars", middleware.Protected(), middleware.AdminRequired())
	adminCars.Post("", handlers.CreateCar)
	adminCars.Put("/:carId", handlers.UpdateCar)
	adminCars.Delete("/:carId", handlers.DeleteCar)
}
