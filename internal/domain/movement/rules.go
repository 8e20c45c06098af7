package movement

import (
	"time"

	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

// DocumentRule reglas de cabecera de un tipo de documento. Un único RequestBuilder
// consume esta tabla en lugar de tener un módulo por tipo.
type DocumentRule struct {
	Type string
	// CompletedAtCreation: el documento nace completo y no tiene fase de recolección.
	CompletedAtCreation bool
	// BlankTargetWarehouse: el destino es la contraparte, no un almacén.
	BlankTargetWarehouse bool
	// SourceFromFirstItem: en modo orden el almacén origen se hereda del primer ítem.
	SourceFromFirstItem bool
	// FreeModeWithoutCustomer: en modo libre no hay contraparte.
	FreeModeWithoutCustomer bool
	RequiresSource          bool
	RequiresTarget          bool
	RequiresCustomer        bool
}

// RequiresCollection indica si el documento pasa por la fase de recolección en planta.
func (r DocumentRule) RequiresCollection() bool { return !r.CompletedAtCreation }

var rules = map[string]DocumentRule{
	entity.DocTypeTransfer: {
		Type:                    entity.DocTypeTransfer,
		SourceFromFirstItem:     true,
		FreeModeWithoutCustomer: true,
		RequiresSource:          true,
		RequiresTarget:          true,
	},
	entity.DocTypeShipment: {
		Type:                 entity.DocTypeShipment,
		BlankTargetWarehouse: true,
		RequiresSource:       true,
		RequiresCustomer:     true,
	},
	entity.DocTypeSubcontractingIssue: {
		Type:             entity.DocTypeSubcontractingIssue,
		RequiresSource:   true,
		RequiresCustomer: true,
	},
	entity.DocTypeSubcontractingReceipt: {
		Type:                entity.DocTypeSubcontractingReceipt,
		CompletedAtCreation: true,
		RequiresTarget:      true,
		RequiresCustomer:    true,
	},
	entity.DocTypeWarehouseInbound: {
		Type:           entity.DocTypeWarehouseInbound,
		RequiresTarget: true,
	},
	entity.DocTypeWarehouseOutbound: {
		Type:           entity.DocTypeWarehouseOutbound,
		RequiresSource: true,
	},
}

// RuleFor devuelve la regla del tipo de documento o ErrUnknownDocType.
func RuleFor(docType string) (DocumentRule, error) {
	r, ok := rules[docType]
	if !ok {
		return DocumentRule{}, domain.ErrUnknownDocType
	}
	return r, nil
}

// HeaderForm datos de cabecera introducidos por el operario.
type HeaderForm struct {
	Free            bool      `json:"free"`
	BranchCode      string    `json:"branchCode"`
	DocumentDate    time.Time `json:"documentDate"`
	PlannedDate     time.Time `json:"plannedDate"`
	SourceWarehouse string    `json:"sourceWarehouse"`
	TargetWarehouse string    `json:"targetWarehouse"`
	CustomerCode    string    `json:"customerCode"`
	Description     string    `json:"description"`
	OperatorIDs     []int64   `json:"operatorIds"`
}

// ValidateForm comprueba los campos obligatorios de cabecera antes de cualquier llamada remota.
// En un traslado ligado a orden el origen puede faltar si el primer ítem lo aporta.
func ValidateForm(rule DocumentRule, form HeaderForm, items []entity.SelectedItem) error {
	if form.BranchCode == "" {
		return &domain.ValidationError{Field: "branchCode", Reason: "obligatorio"}
	}
	if rule.RequiresSource && form.SourceWarehouse == "" {
		inherited := rule.SourceFromFirstItem && !form.Free && len(items) > 0 && items[0].SourceWarehouse != ""
		if !inherited {
			return &domain.ValidationError{Field: "sourceWarehouse", Reason: "obligatorio"}
		}
	}
	if rule.RequiresTarget && form.TargetWarehouse == "" {
		return &domain.ValidationError{Field: "targetWarehouse", Reason: "obligatorio"}
	}
	if rule.RequiresSource && rule.RequiresTarget && form.Free &&
		form.SourceWarehouse == form.TargetWarehouse {
		return &domain.ValidationError{Field: "targetWarehouse", Reason: "debe ser distinto del origen"}
	}
	// Las órdenes se piden por contraparte: en modo orden siempre hay cliente.
	needsCustomer := rule.RequiresCustomer || !form.Free
	if needsCustomer && form.CustomerCode == "" {
		return &domain.ValidationError{Field: "customerCode", Reason: "obligatorio"}
	}
	for _, it := range items {
		if it.FromOrder == form.Free {
			return &domain.ValidationError{Field: "items", Reason: "mezcla de ítems libres y de orden: " + it.ID}
		}
	}
	return nil
}
