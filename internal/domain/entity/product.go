package entity

import "time"

// Product representa un producto o SKU del catálogo. Desde el núcleo de
// custodia el catálogo es de solo lectura: únicamente BoxQuantity alimenta
// la creación de códigos de barras (se copia como snapshot en cada rótulo).
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	BoxQuantity int // unidades por caja; semilla del snapshot en Barcode
	TotalStock  int
	Status      string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
