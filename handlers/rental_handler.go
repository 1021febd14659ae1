package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/payments"
	"github.com/anjiri1684/car_rental/services"
	"github.com/anjiri1684/car_rental/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type RentalHandler struct {
	rentals *services.RentalService
}

func NewRentalHandler(rentals *services.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type AvailabilityRequest struct {
	CarID     string `json:"carId" validate:"required,uuid"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type CreateRentalRequest struct {
	CarID         string `json:"carId" validate:"required,uuid"`
	StartDate     string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"endDate" validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

func parseDate(value string) time.Time {
	// Validated upstream with datetime=2006-01-02.
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func (h *RentalHandler) CheckAvailability(c *fiber.Ctx) error {
	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	carID, _ := uuid.Parse(req.CarID)

	available, message, err := h.rentals.CheckAvailability(c.Context(), carID, parseDate(req.StartDate), parseDate(req.EndDate))
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date range"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error checking availability"})
	}

	return c.JSON(fiber.Map{"available": available, "message": message})
}

func (h *RentalHandler) CreateRental(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateRentalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	carID, _ := uuid.Parse(req.CarID)

	var paymentMethod *string
	if req.PaymentMethod != "" {
		provider, err := payments.ParseProvider(req.PaymentMethod)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment provider"})
		}
		tag := string(provider)
		paymentMethod = &tag
	}

	rental, err := h.rentals.CreateRental(c.Context(), userID, carID, parseDate(req.StartDate), parseDate(req.EndDate), paymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRange):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date range"})
		case errors.Is(err, services.ErrCarNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Car not found"})
		case errors.Is(err, services.ErrNotAvailable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Car is no longer available for these dates."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating rental"})
	}

	websocket.Notify("rental.created", "New rental booking created", rental)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Rental booking created",
		"rental":  rental,
	})
}

func (h *RentalHandler) GetMyRentals(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	rentals, err := h.rentals.ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching rentals"})
	}
	return c.JSON(rentals)
}

func (h *RentalHandler) GetAllRentals(c *fiber.Ctx) error {
	rentals, err := h.rentals.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching rentals"})
	}
	return c.JSON(rentals)
}

type UpdateRentalStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *RentalHandler) UpdateRentalStatus(c *fiber.Ctx) error {
	rentalID, err := uuid.Parse(c.Params("rentalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rental ID format"})
	}

	var req UpdateRentalStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	status := models.RentalStatus(req.Status)
	if !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rental status"})
	}

	if err := h.rentals.UpdateStatus(c.Context(), rentalID, status); err != nil {
		if errors.Is(err, services.ErrRentalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rental not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update rental status"})
	}

	return c.JSON(fiber.Map{"message": "Rental status updated successfully"})
}
