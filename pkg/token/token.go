// Package token generates the short identifiers printed on labels and
// receipts. Tokens are random hex and can collide; callers rely on the
// store's unique index plus a bounded regenerate-and-retry loop.
package token

import (
	"strings"

	"github.com/google/uuid"
)

const (
	skuLength     = 8
	invoiceLength = 6
)

// NewSKU returns a short product identifier.
func NewSKU() string {
	return short(skuLength)
}

// NewInvoice returns a short sale invoice identifier.
func NewInvoice() string {
	return short(invoiceLength)
}

func short(n int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hex[:n]
}
