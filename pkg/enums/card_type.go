package enums

// CardType is the card network detected from a PAN prefix.
type CardType string

const (
	CardTypeVisa       CardType = "visa"
	CardTypeMastercard CardType = "mastercard"
	CardTypeAmex       CardType = "amex"
	CardTypeDiscover   CardType = "discover"
	CardTypeUnknown    CardType = "unknown"
)

// String implements fmt.Stringer.
func (c CardType) String() string {
	return string(c)
}
