package money

import (
	"fmt"
	"math"
	"strings"
)

// All monetary amounts in RaspePix are int64 centavos. Conversion to a
// display representation happens here and nowhere else.

// Percent applies a percentage rate (0..100 scale) to an amount in centavos,
// rounding half away from zero to the nearest centavo.
func Percent(amountCentavos int64, rate float64) int64 {
	return int64(math.Round(float64(amountCentavos) * rate / 100))
}

// FormatBRL renders centavos as a pt-BR currency string, e.g. 123456789 ->
// "R$ 1.234.567,89".
func FormatBRL(centavos int64) string {
	negative := centavos < 0
	if negative {
		centavos = -centavos
	}

	integer := centavos / 100
	fraction := centavos % 100

	digits := fmt.Sprintf("%d", integer)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	value := fmt.Sprintf("R$ %s,%02d", strings.Join(groups, "."), fraction)
	if negative {
		return "-" + value
	}
	return value
}
