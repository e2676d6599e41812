package common

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeAmount strips thousands separators from an amount token and
// returns it with exactly two fraction digits. The value round-trips through
// decimal so a token like "12,345.67" comes back as "12345.67" with no
// float precision loss.
func NormalizeAmount(raw string) (string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return "", err
	}
	return amount.StringFixed(2), nil
}
