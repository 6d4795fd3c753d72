package entity

import "time"

// Allocation mantiene las unidades actualmente en custodia de un empleado para
// un producto (una fila por par empleado-producto). Invariante: AllocatedUnits
// siempre es igual al neto CHECKOUT − RETURN del libro mayor para ese par, y
// la fila se elimina cuando el neto llega a cero (nunca se persisten ceros).
type Allocation struct {
	EmployeeID     string
	ProductID      string
	AllocatedUnits int
	UpdatedAt      time.Time
}
