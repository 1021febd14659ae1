package handlers

import (
	"time"

	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/gofiber/fiber/v2"
)

// GetDashboardAnalytics aggregates the headline numbers for the admin
// dashboard landing page.
func GetDashboardAnalytics(c *fiber.Ctx) error {
	var totalCustomers, availableCars, rentalsLast30Days int64
	var totalRevenue float64

	if err := database.DB.Model(&models.User{}).Where("role = ?", "customer").Count(&totalCustomers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch analytics"})
	}
	if err := database.DB.Model(&models.Car{}).Where("status = ?", "available").Count(&availableCars).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch analytics"})
	}
	if err := database.DB.Model(&models.Rental{}).
		Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(total_cost), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch analytics"})
	}
	if err := database.DB.Model(&models.Rental{}).
		Where("created_at >= ?", time.Now().AddDate(0, 0, -30)).
		Count(&rentalsLast30Days).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch analytics"})
	}

	var recentRentals []models.Rental
	if err := database.DB.
		Preload("User").
		Preload("Car").
		Order("created_at desc").
		Limit(5).
		Find(&recentRentals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch analytics"})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"totalCustomers":    totalCustomers,
			"availableCars":     availableCars,
			"totalRevenue":      totalRevenue,
			"rentalsLast30Days": rentalsLast30Days,
			"recentRentals":     recentRentals,
		},
	})
}
