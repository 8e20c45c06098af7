package movement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/depo-terminal/internal/domain"
)

// ParseQuantity interpreta la cantidad tecleada en el terminal.
// Acepta coma decimal ("2,5") y separador de miles con punto ("1.250,5").
// ok es false si la entrada está vacía, no es numérica o no es mayor que cero.
func ParseQuantity(raw string) (qty decimal.Decimal, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	q, err := decimal.NewFromString(s)
	if err != nil || !q.IsPositive() {
		return decimal.Zero, false
	}
	return q, true
}

// ValidateCollectQuantity rechaza localmente cantidades no positivas antes de llamar al ERP.
func ValidateCollectQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	return nil
}
