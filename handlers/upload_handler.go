package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	config "github.com/anjiri1684/car_rental/configs"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

const carPhotoFolder = "car_rental_uploads"

// GenerateUploadSignature signs the upload params the frontend needs to push
// car photos straight to Cloudinary.
func GenerateUploadSignature(c *fiber.Ctx) error {
	cloudinaryURL := config.Config("CLOUDINARY_URL")
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to initialize Cloudinary"})
	}

	secret, err := cloudinarySecret(cloudinaryURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to parse Cloudinary URL"})
	}

	paramsToSign, err := api.StructToParams(uploader.UploadParams{Folder: carPhotoFolder})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare signature params"})
	}

	timestamp := time.Now().Unix()
	paramsToSign.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign upload params"})
	}

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"api_key":   cld.Config.Cloud.APIKey,
		"folder":    carPhotoFolder,
	})
}

func cloudinarySecret(cloudinaryURL string) (string, error) {
	parsed, err := url.Parse(cloudinaryURL)
	if err != nil {
		return "", err
	}
	secret, ok := parsed.User.Password()
	if !ok {
		return "", errors.New("cloudinary URL carries no API secret")
	}
	return secret, nil
}
