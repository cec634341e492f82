package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== PAYMENT REFERENCES ====================

// GenerateTransactionID builds the gateway-style transaction id recorded on a
// paid payment. Format: tx_YYYYMMDDHHMMSS_<payment id>
func GenerateTransactionID(paymentID uuid.UUID) string {
	return fmt.Sprintf("tx_%s_%s", time.Now().UTC().Format("20060102150405"), paymentID.String())
}

// GenerateWithdrawalRef builds the ledger reference for a withdrawal request.
func GenerateWithdrawalRef() string {
	return fmt.Sprintf("withdrawal_%s", time.Now().UTC().Format("20060102150405"))
}
