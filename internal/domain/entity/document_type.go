package entity

// Tipos de documento de movimiento. El valor es el segmento usado en rutas HTTP y en el ERP.
const (
	DocTypeTransfer              = "transfer"               // traslado entre almacenes
	DocTypeShipment              = "shipment"               // despacho a cliente
	DocTypeSubcontractingIssue   = "subcontracting-issue"   // salida a subcontratista
	DocTypeSubcontractingReceipt = "subcontracting-receipt" // recepción de subcontratista
	DocTypeWarehouseInbound      = "warehouse-inbound"      // entrada a almacén
	DocTypeWarehouseOutbound     = "warehouse-outbound"     // salida de almacén
)

// DocumentTypes lista los tipos soportados, en el orden del menú del terminal.
var DocumentTypes = []string{
	DocTypeTransfer,
	DocTypeShipment,
	DocTypeSubcontractingIssue,
	DocTypeSubcontractingReceipt,
	DocTypeWarehouseInbound,
	DocTypeWarehouseOutbound,
}
