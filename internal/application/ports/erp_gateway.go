package ports

import (
	"context"

	"github.com/jhoicas/depo-terminal/internal/domain/entity"
)

// CatalogReader lectura de órdenes y stock libre. Los datos cambian despacio,
// por lo que los adaptadores pueden servirlos desde una caché con TTL.
type CatalogReader interface {
	// ListOrderHeaders cabeceras de órdenes abiertas de la contraparte para el tipo de documento.
	ListOrderHeaders(ctx context.Context, docType, customerCode string) ([]entity.OrderHeader, error)
	// ListOrderLines líneas planificables (con restante por importar) de la contraparte.
	ListOrderLines(ctx context.Context, docType, customerCode string) ([]entity.OrderLine, error)
	// SearchStock búsqueda libre de stock para el modo sin orden.
	SearchStock(ctx context.Context, query string) ([]entity.StockRecord, error)
}

// ERPGateway puerto de salida hacia la API REST del ERP.
// Toda respuesta viaja en el sobre {success,data,message,errors}: success=false se devuelve
// como *domain.RemoteError y los fallos de transporte envuelven domain.ErrGatewayUnavailable.
// El token del operario viaja en el contexto (ver WithBearerToken).
type ERPGateway interface {
	CatalogReader

	// LookupStockByBarcode resuelve un código de barras a cero o más fichas de stock.
	LookupStockByBarcode(ctx context.Context, barcode string) ([]entity.StockRecord, error)
	// GenerateDocument crea el documento completo en una sola llamada.
	GenerateDocument(ctx context.Context, docType string, req entity.GenerateRequest) (entity.GenerateResult, error)

	ListAssignedDocuments(ctx context.Context, docType string) ([]entity.AssignedDocument, error)
	ListAssignedLines(ctx context.Context, docType string, headerID int64) ([]entity.AssignedLine, error)
	ListCollectedBarcodes(ctx context.Context, docType string, headerID int64) ([]entity.CollectedBarcodeItem, error)

	AddRoute(ctx context.Context, docType string, req entity.AddRouteRequest) (entity.Route, error)
	// DeleteRoute borra la ruta; si pertenecía a un paquete queda desligada de él.
	DeleteRoute(ctx context.Context, docType string, routeID int64) error
	CompleteDocument(ctx context.Context, docType string, headerID int64) error
}
