package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/anjiri1684/car_rental/configs"
	"github.com/anjiri1684/car_rental/database"
	"github.com/anjiri1684/car_rental/models"
	"github.com/anjiri1684/car_rental/notifications"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GenerateRentalReceipt renders a PDF receipt for a paid rental, uploads it
// to Cloudinary and emails the customer the link. Best effort: failures are
// logged and never affect the payment outcome. Run in a goroutine.
func GenerateRentalReceipt(rental models.Rental) {
	if rental.PaymentStatus != models.PaymentPaid {
		return
	}

	htmlData, err := renderReceiptHTML(rental)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML for rental %s: %v", rental.ID, err)
		return
	}

	pdfBytes, err := printPDF(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for rental %s: %v", rental.ID, err)
		return
	}

	receiptURL, err := uploadReceipt(pdfBytes, rental.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for rental %s: %v", rental.ID, err)
		return
	}

	if err := database.DB.Model(&models.Rental{}).Where("id = ?", rental.ID).Update("receipt_url", receiptURL).Error; err != nil {
		log.Printf("🔥 Failed to save receipt URL for rental %s: %v", rental.ID, err)
		return
	}

	go notifications.SendEmail(
		rental.User.FullName,
		rental.User.Email,
		"Your Rental Payment Receipt",
		fmt.Sprintf("<h1>Payment Received</h1><p>Thank you for your payment. You can download your receipt <a href='%s'>here</a>.</p>", receiptURL),
	)

	log.Printf("✅ Generated receipt for rental %s.", rental.ID)
}

func renderReceiptHTML(rental models.Rental) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	reference := ""
	if rental.TransactionReference != nil {
		reference = *rental.TransactionReference
	}
	method := ""
	if rental.PaymentMethod != nil {
		method = *rental.PaymentMethod
	}

	data := struct {
		CustomerName string
		CarName      string
		StartDate    string
		EndDate      string
		TotalCost    string
		Method       string
		Reference    string
		IssuedAt     string
	}{
		CustomerName: rental.User.FullName,
		CarName:      fmt.Sprintf("%s %s (%d)", rental.Car.Make, rental.Car.Model, rental.Car.Year),
		StartDate:    rental.StartDate.Format("January 2, 2006"),
		EndDate:      rental.EndDate.Format("January 2, 2006"),
		TotalCost:    fmt.Sprintf("%.2f", rental.TotalCost),
		Method:       method,
		Reference:    reference,
		IssuedAt:     time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, rentalID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", rentalID, uuid.New().String()),
		Folder:       "car_rental_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
