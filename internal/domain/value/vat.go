package value

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// VATRate is an integer VAT percentage. The zero value means the rate is
// unknown and the configured default applies.
type VATRate struct {
	percent int
	known   bool
}

func NewVATRate(percent int) VATRate {
	return VATRate{percent: percent, known: true}
}

// VATRateFromDecimal truncates a CRM or caller supplied rate to whole
// percent. A null value gives an unknown rate.
func VATRateFromDecimal(d decimal.NullDecimal) VATRate {
	if !d.Valid {
		return VATRate{}
	}

	return NewVATRate(int(d.Decimal.IntPart()))
}

func (v VATRate) Percent() (int, bool) {
	return v.percent, v.known
}

func (v VATRate) String() string {
	if !v.known {
		return "unknown"
	}

	return strconv.Itoa(v.percent)
}
