package value

import "strings"

// DiscountKind tells how a CRM line discount is expressed.
type DiscountKind int

const (
	DiscountPercentage DiscountKind = iota
	// DiscountAmount is a currency amount for the whole line.
	DiscountAmount
	// DiscountTotalPercentage already combines line and deal discounts and
	// is applied as given.
	DiscountTotalPercentage
)

func ParseDiscountKind(s string) DiscountKind {
	if strings.EqualFold(strings.TrimSpace(s), "amount") {
		return DiscountAmount
	}

	return DiscountPercentage
}

func (k DiscountKind) String() string {
	switch k {
	case DiscountAmount:
		return "amount"
	case DiscountTotalPercentage:
		return "total_percentage"
	default:
		return "percentage"
	}
}
