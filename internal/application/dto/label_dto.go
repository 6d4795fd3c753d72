package dto

// MintLabelsRequest body para POST /api/labels/mint.
// Prefix vacío usa el prefijo por defecto configurado.
type MintLabelsRequest struct {
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
	Prefix    string `json:"prefix,omitempty"`
}

// MintLabelsResponse respuesta de la impresión de un lote de rótulos.
type MintLabelsResponse struct {
	GeneratedFile string       `json:"generated_file"`
	CreatedCount  int          `json:"created_count"`
	Barcodes      []BarcodeDTO `json:"barcodes"`
}

// RenderLabelsRequest body para POST /api/labels/render: reimprime la hoja de
// un lote ya asignado (reintento tras falla de render, sin re-asignar seriales).
type RenderLabelsRequest struct {
	BarcodeValues []string `json:"barcode_values"`
}

// RenderFailureResponse cuerpo del 502 cuando el render falla tras confirmar
// los seriales: el lote viene en Barcodes para reintentar solo el render.
type RenderFailureResponse struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Barcodes []BarcodeDTO `json:"barcodes"`
}

// BarcodeDTO resumen de un código de barras.
type BarcodeDTO struct {
	BarcodeValue string `json:"barcode_value"`
	SerialNumber string `json:"serial_number"`
	ProductID    string `json:"product_id"`
	BoxQuantity  int    `json:"box_quantity"`
	Status       string `json:"status"`
}

// BarcodeLookupResponse respuesta de GET /api/barcodes/:value.
type BarcodeLookupResponse struct {
	Barcode BarcodeDTO        `json:"barcode"`
	Product ProductSummaryDTO `json:"product"`
}

// ProductSummaryDTO resumen denormalizado de producto.
type ProductSummaryDTO struct {
	ID          string `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	BoxQuantity int    `json:"box_quantity"`
}

// AddPrefixRequest body para POST /api/prefixes.
type AddPrefixRequest struct {
	Code string `json:"code"`
}

// PrefixListResponse respuesta de GET /api/prefixes.
type PrefixListResponse struct {
	Defaults []string `json:"defaults"`
	Custom   []string `json:"custom"`
}
