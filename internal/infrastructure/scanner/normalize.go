package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/movement"
)

// Normalize convierte una lectura cruda en el texto que se envía al ERP:
// decodifica ISO-8859-9 si no es UTF-8 válido y quita caracteres de control.
// No cambia mayúsculas: el código llega al ERP igual que por la API HTTP.
func Normalize(raw []byte) string {
	s := string(raw)
	// Los lectores con distribución turca envían Latin-5 si el terminal no es UTF-8.
	if !utf8.Valid(raw) {
		if dec, err := charmap.ISO8859_9.NewDecoder().Bytes(raw); err == nil {
			s = string(dec)
		}
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// Reading una línea del lector ya interpretada.
type Reading struct {
	Barcode  string
	Quantity decimal.Decimal
}

// ParseLine interpreta "cantidad*código" o solo "código" (cantidad 1).
// La cantidad admite coma decimal.
func ParseLine(line string) (Reading, error) {
	qtyPart, code, hasQty := strings.Cut(line, "*")
	if !hasQty {
		code, qtyPart = qtyPart, ""
	}
	barcode := Normalize([]byte(code))
	if barcode == "" {
		return Reading{}, &domain.ValidationError{Field: "barcode", Reason: "vacío"}
	}
	if !hasQty {
		return Reading{Barcode: barcode, Quantity: decimal.NewFromInt(1)}, nil
	}
	qty, ok := movement.ParseQuantity(qtyPart)
	if !ok {
		return Reading{}, domain.ErrInvalidQuantity
	}
	return Reading{Barcode: barcode, Quantity: qty}, nil
}
