package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentReference builds the idempotent reference handed to hosted-checkout
// providers, e.g. "rent_6f1c..._1735689600".
func PaymentReference(rentalID uuid.UUID) string {
	return fmt.Sprintf("rent_%s_%d", rentalID, time.Now().Unix())
}
