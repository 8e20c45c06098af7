package scanner

import "fmt"

// Symbology simbología de código de barras que el dispositivo debe reconocer.
type Symbology string

const (
	Code128 Symbology = "code_128"
	Code39  Symbology = "code_39"
	Code93  Symbology = "code_93"
	Codabar Symbology = "codabar"
	EAN13   Symbology = "ean_13"
	EAN8    Symbology = "ean_8"
	ITF     Symbology = "itf"
	UPCA    Symbology = "upc_a"
	UPCE    Symbology = "upc_e"

	QRCode     Symbology = "qr_code"
	DataMatrix Symbology = "data_matrix"
	PDF417     Symbology = "pdf_417"
)

// Linear formatos 1D de retail/industria configurados para la recolección.
var Linear = []Symbology{Code128, Code39, Code93, Codabar, EAN13, EAN8, ITF, UPCA, UPCE}

var linearSet = func() map[Symbology]bool {
	m := make(map[Symbology]bool, len(Linear))
	for _, s := range Linear {
		m[s] = true
	}
	return m
}()

// IsLinear indica si s es una simbología 1D.
func IsLinear(s Symbology) bool { return linearSet[s] }

// ValidateFormats exige al menos un formato y solo formatos 1D.
func ValidateFormats(formats []Symbology) error {
	if len(formats) == 0 {
		return fmt.Errorf("scanner: sin simbologías configuradas")
	}
	for _, f := range formats {
		if !IsLinear(f) {
			return fmt.Errorf("scanner: simbología no soportada en recolección: %s", f)
		}
	}
	return nil
}
