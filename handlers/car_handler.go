package handlers

import (
	"errors"

	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarRequest struct {
	Make        string  `json:"make" validate:"required"`
	Model       string  `json:"model" validate:"required"`
	Year        int     `json:"year" validate:"required,min=1950"`
	DailyRate   float64 `json:"daily_rate" validate:"required,gt=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=available maintenance retired"`
	ImageURL    *string `json:"image_url,omitempty"`
	Description *string `json:"description,omitempty"`
}

func GetCars(c *fiber.Ctx) error {
	query := database.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var cars []models.Car
	if err := query.Find(&cars).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch cars"})
	}
	return c.JSON(cars)
}

func GetCar(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("carId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid car ID format"})
	}

	var car models.Car
	if err := database.DB.First(&car, "id = ?", carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch car"})
	}
	return c.JSON(car)
}

func CreateCar(c *fiber.Ctx) error {
	var req CarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	car := models.Car{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		DailyRate:   req.DailyRate,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}
	if req.Status != "" {
		car.Status = req.Status
	}

	if err := database.DB.Create(&car).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create car"})
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

func UpdateCar(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("carId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid car ID format"})
	}

	var car models.Car
	if err := database.DB.First(&car, "id = ?", carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch car"})
	}

	var req CarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	car.Make = req.Make
	car.Model = req.Model
	car.Year = req.Year
	car.DailyRate = req.DailyRate
	if req.Status != "" {
		car.Status = req.Status
	}
	if req.ImageURL != nil {
		car.ImageURL = req.ImageURL
	}
	if req.Description != nil {
		car.Description = req.Description
	}

	if err := database.DB.Save(&car).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update car"})
	}
	return c.JSON(car)
}

func DeleteCar(c *fiber.Ctx) error {
	carID, err := uuid.Parse(c.Params("carId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid car ID format"})
	}

	result := database.DB.Delete(&models.Car{}, "id = ?", carID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete car"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
	}
	return c.JSON(fiber.Map{"message": "Car deleted successfully"})
}
