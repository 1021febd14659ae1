package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	config "github.com/anjiri1684/car_rental/configs"
	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/notifications"
	"github.com/anjiri1684/car_rental/websocket"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SellFormRequest struct {
	FullName          string   `json:"fullName" validate:"required"`
	PhoneNumber       string   `json:"phoneNumber" validate:"required"`
	EmailAddress      string   `json:"emailAddress" validate:"required,email"`
	CarMake           string   `json:"carMake" validate:"required"`
	CarModel          string   `json:"carModel" validate:"required"`
	YearOfManufacture int      `json:"yearOfManufacture" validate:"required,min=1950"`
	MileageKm         int      `json:"mileageKm" validate:"required,min=0"`
	Condition         string   `json:"condition" validate:"required"`
	UploadPhotos      []string `json:"uploadPhotos" validate:"max=8"`
}

type UpdateSellStatusRequest struct {
	OfferStatus string `json:"offerStatus" validate:"required,oneof=Pending Reviewed Accepted Rejected"`
}

func SubmitSellForm(c *fiber.Ctx) error {
	var req SellFormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var photoURLs []string
	if len(req.UploadPhotos) > 0 {
		cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize Cloudinary"})
		}
		for _, photo := range req.UploadPhotos {
			result, err := cld.Upload.Upload(c.Context(), photo, uploader.UploadParams{
				Folder: "car_rental_submissions",
			})
			if err != nil {
				log.Printf("🔥 Failed to upload submission photo: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload photos"})
			}
			photoURLs = append(photoURLs, result.SecureURL)
		}
	}

	submission := models.SellSubmission{
		FullName:          req.FullName,
		PhoneNumber:       req.PhoneNumber,
		EmailAddress:      req.EmailAddress,
		CarMake:           req.CarMake,
		CarModel:          req.CarModel,
		YearOfManufacture: req.YearOfManufacture,
		MileageKm:         req.MileageKm,
		Condition:         req.Condition,
		PhotoURLs:         strings.Join(photoURLs, ","),
	}
	if err := database.DB.Create(&submission).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save submission"})
	}

	go notifications.SendEmail(
		submission.FullName,
		submission.EmailAddress,
		"We received your car details",
		fmt.Sprintf("<h1>Thank you!</h1><p>We received the details of your %d %s %s and our team will get back to you with an offer.</p>", submission.YearOfManufacture, submission.CarMake, submission.CarModel),
	)
	websocket.Notify("sell.submitted", "New sell submission received", submission)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Submission received",
		"data":    submission,
	})
}

type submissionStatusCount struct {
	OfferStatus string
	Count       int64
}

func summarizeSubmissionStats(rows []submissionStatusCount) fiber.Map {
	var total, pending, reviewed, accepted, rejected int64
	for _, row := range rows {
		total += row.Count
		switch row.OfferStatus {
		case "Pending":
			pending = row.Count
		case "Reviewed":
			reviewed = row.Count
		case "Accepted":
			accepted = row.Count
		case "Rejected":
			rejected = row.Count
		}
	}
	return fiber.Map{
		"totalSubmissions": total,
		"pending":          pending,
		"reviewed":         reviewed,
		"accepted":         accepted,
		"rejected":         rejected,
	}
}

func GetSellSubmissionStats(c *fiber.Ctx) error {
	var rows []submissionStatusCount
	if err := database.DB.Model(&models.SellSubmission{}).
		Select("offer_status, COUNT(*) AS count").
		Group("offer_status").
		Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}

	return c.JSON(fiber.Map{"data": summarizeSubmissionStats(rows)})
}

func GetSellSubmissions(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	if err := database.DB.Model(&models.SellSubmission{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}

	var submissions []models.SellSubmission
	if err := database.DB.
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&submissions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch submissions"})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"submissions": submissions,
			"pagination": fiber.Map{
				"total": total,
				"page":  page,
				"limit": limit,
				"pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}

func UpdateSellSubmissionStatus(c *fiber.Ctx) error {
	submissionID, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid submission ID format"})
	}

	var req UpdateSellStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var submission models.SellSubmission
	if err := database.DB.First(&submission, "id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch submission"})
	}

	submission.OfferStatus = req.OfferStatus
	if err := database.DB.Save(&submission).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update submission"})
	}

	if req.OfferStatus == "Accepted" || req.OfferStatus == "Rejected" {
		go notifications.SendEmail(
			submission.FullName,
			submission.EmailAddress,
			"Update on your car submission",
			fmt.Sprintf("<h1>Submission %s</h1><p>Your %s %s submission has been %s.</p>", req.OfferStatus, submission.CarMake, submission.CarModel, strings.ToLower(req.OfferStatus)),
		)
	}

	return c.JSON(fiber.Map{"message": "Submission status updated", "data": submission})
}
