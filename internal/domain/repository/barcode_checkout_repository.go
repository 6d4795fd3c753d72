package repository

import (
	"time"

	"github.com/jhoicas/Custodia-api/internal/domain/entity"
)

// BarcodeCheckoutRepository define el puerto de las ventanas de entrega.
type BarcodeCheckoutRepository interface {
	Create(checkout *entity.BarcodeCheckout) error

	// LatestOpen devuelve la ventana abierta más reciente para el par
	// (código, empleado), o nil si no hay ninguna abierta.
	LatestOpen(barcodeID, employeeID string) (*entity.BarcodeCheckout, error)

	// Close marca la ventana como devuelta con la hora indicada.
	Close(id string, returnTime time.Time) error
}
