package erp

import (
	"encoding/json"
	"strings"

	"github.com/jhoicas/depo-terminal/internal/domain"
)

// envelope sobre común de todas las respuestas del ERP.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Errors  []json.RawMessage `json:"errors"`
}

// remoteError convierte un sobre con success=false en *domain.RemoteError.
// errors puede traer cadenas u objetos {field,message}; ambos se aplanan a texto.
func (e envelope) remoteError() *domain.RemoteError {
	re := &domain.RemoteError{Message: strings.TrimSpace(e.Message)}
	for _, raw := range e.Errors {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			re.Errors = append(re.Errors, s)
			continue
		}
		var obj struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
			if obj.Field != "" {
				re.Errors = append(re.Errors, obj.Field+": "+obj.Message)
			} else {
				re.Errors = append(re.Errors, obj.Message)
			}
			continue
		}
		re.Errors = append(re.Errors, string(raw))
	}
	if re.Message == "" {
		re.Message = "el ERP rechazó la operación"
	}
	return re
}
