package payments

import (
	"strings"
	"time"

	"github.com/avelarq/tableside-backend/pkg/enums"
	"github.com/avelarq/tableside-backend/pkg/pricing"
)

// Default gateway fee schedule. Overridable via configuration.
const (
	DefaultProcessingFeeRate = 0.029
	DefaultProcessingFeeFlat = 0.30
)

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCardNumber runs the Luhn check over a PAN of 13 to 19 digits.
// Non-digit characters (spaces, dashes) are stripped first.
func ValidateCardNumber(cardNumber string) bool {
	digits := digitsOnly(cardNumber)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// ValidateExpiration accepts 2-digit years as 20xx and rejects months
// outside 1-12 or dates before the current month.
func ValidateExpiration(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	if year < 100 {
		year += 2000
	}
	currentYear := now.Year()
	currentMonth := int(now.Month())
	if year < currentYear {
		return false
	}
	if year == currentYear && month < currentMonth {
		return false
	}
	return true
}

// ValidateCVV checks the security code length: 4 digits for amex, 3 for
// every other network.
func ValidateCVV(cvv string, cardType enums.CardType) bool {
	digits := digitsOnly(cvv)
	expected := 3
	if cardType == enums.CardTypeAmex {
		expected = 4
	}
	return len(digits) == expected
}

// DetectCardType classifies a PAN by its issuer prefix.
func DetectCardType(cardNumber string) enums.CardType {
	digits := digitsOnly(cardNumber)
	switch {
	case strings.HasPrefix(digits, "4"):
		return enums.CardTypeVisa
	case hasPrefixInRange(digits, '5', '1', '5'), hasPrefixInRange(digits, '2', '2', '7'):
		return enums.CardTypeMastercard
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return enums.CardTypeAmex
	case strings.HasPrefix(digits, "6011"), strings.HasPrefix(digits, "65"):
		return enums.CardTypeDiscover
	default:
		return enums.CardTypeUnknown
	}
}

func hasPrefixInRange(digits string, first, lo, hi byte) bool {
	return len(digits) >= 2 && digits[0] == first && digits[1] >= lo && digits[1] <= hi
}

// FormatCardNumber groups a PAN for display: 4-6-5 for amex, blocks of
// four for everything else.
func FormatCardNumber(cardNumber string) string {
	digits := digitsOnly(cardNumber)
	if digits == "" {
		return ""
	}

	if DetectCardType(digits) == enums.CardTypeAmex && len(digits) == 15 {
		return digits[:4] + " " + digits[4:10] + " " + digits[10:]
	}

	var groups []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		groups = append(groups, digits[i:end])
	}
	return strings.Join(groups, " ")
}

// ProcessingFee computes the gateway surcharge on a dollar amount,
// rounded to cents.
func ProcessingFee(amount, rate, flatFee float64) float64 {
	return pricing.Round2(amount*rate + flatFee)
}
