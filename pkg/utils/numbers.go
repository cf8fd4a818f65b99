package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateInvoiceNo generates a unique invoice number, e.g. INV-9F3C21AB
func GenerateInvoiceNo() string {
	return "INV-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateQuoteNo generates a unique quotation number, e.g. QT-4B01DD72
func GenerateQuoteNo() string {
	return "QT-" + strings.ToUpper(uuid.New().String()[:8])
}

// GeneratePurchaseNo generates a unique purchase number, e.g. PO-77A0E4C9
func GeneratePurchaseNo() string {
	return "PO-" + strings.ToUpper(uuid.New().String()[:8])
}
