package tests

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

type Randomizer struct {
	Float64 func() float64
	Bool    func() bool
	// Percent returns a percentage in [0, 100] with two decimal places.
	Percent func() decimal.Decimal
	// IntN returns an int in [0, n).
	IntN func(n int) int
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().Unix())) //nolint:gosec // for tests

	return Randomizer{
		Float64: random.Float64,
		Bool:    func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		Percent: func() decimal.Decimal {
			return decimal.New(random.Int63n(10001), -2) //nolint:mnd // skip
		},
		IntN: random.Intn,
	}
}
