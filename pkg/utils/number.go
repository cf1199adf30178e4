package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatBRL formata o valor em reais, com ponto como separador de milhar e vírgula decimal
func FormatBRL(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	cents := int64(math.Round(value * 100))
	integer := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), cents%100)
}
