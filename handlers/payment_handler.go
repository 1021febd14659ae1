package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/anjiri1684/car_rental/notifications"
	"github.com/anjiri1684/car_rental/payments"
	"github.com/anjiri1684/car_rental/services"
	"github.com/anjiri1684/car_rental/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: paymentService}
}

type InitiatePaymentRequest struct {
	RentalID string `json:"rentalId" validate:"required,uuid"`
	Provider string `json:"provider" validate:"required"`
}

type VerifyPaymentRequest struct {
	RentalID  string `json:"rentalId" validate:"required,uuid"`
	Provider  string `json:"provider" validate:"required"`
	Reference string `json:"reference" validate:"required"`
}

func (h *PaymentHandler) InitiatePayment(c *fiber.Ctx) error {
	var req InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	rentalID, _ := uuid.Parse(req.RentalID)

	result, err := h.payments.Initiate(c.Context(), rentalID, req.Provider)
	if err != nil {
		var upstreamErr *payments.UpstreamError
		switch {
		case errors.Is(err, services.ErrRentalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rental not found"})
		case errors.Is(err, services.ErrAlreadyPaid):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rental is already paid"})
		case errors.Is(err, services.ErrInvalidProvider):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment provider"})
		case errors.As(err, &upstreamErr):
			log.Printf("🔥 Payment initiation failed via %s: %v", upstreamErr.Provider, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error initiating payment"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error initiating payment"})
	}

	return c.JSON(fiber.Map{
		"message":  "Payment initiated",
		"data":     result.Raw,
		"provider": req.Provider,
	})
}

func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	rentalID, _ := uuid.Parse(req.RentalID)

	rental, err := h.payments.Verify(c.Context(), rentalID, req.Provider, req.Reference)
	if err != nil {
		var upstreamErr *payments.UpstreamError
		switch {
		case errors.Is(err, services.ErrVerificationFailed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Payment verification failed", "status": "failed"})
		case errors.Is(err, services.ErrRentalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Rental not found", "status": "failed"})
		case errors.As(err, &upstreamErr):
			log.Printf("🔥 Payment verification failed via %s: %v", upstreamErr.Provider, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error verifying payment"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error verifying payment"})
	}

	go notifications.SendEmail(
		rental.User.FullName,
		rental.User.Email,
		"Your Rental is Confirmed!",
		fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your payment was successful and your rental of the %s %s is confirmed.</p>", rental.Car.Make, rental.Car.Model),
	)
	go services.GenerateRentalReceipt(*rental)
	websocket.Notify("payment.settled", "Rental payment verified", rental)

	return c.JSON(fiber.Map{"message": "Payment verified and rental confirmed", "status": "success"})
}
