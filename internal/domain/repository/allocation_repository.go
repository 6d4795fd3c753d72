package repository

import "github.com/jhoicas/Custodia-api/internal/domain/entity"

// AllocationRepository define el puerto de la proyección de asignaciones por
// (empleado, producto). Una fila por par; nunca se persisten filas en cero.
type AllocationRepository interface {
	// Get devuelve la asignación actual, o nil si el par no tiene fila
	// (semánticamente cero).
	Get(employeeID, productID string) (*entity.Allocation, error)

	// LockPair toma un advisory lock transaccional con clave = (empleado,
	// producto). Debe tomarse ANTES de GetForUpdate: cuando el par aún no
	// tiene fila, FOR UPDATE no bloquea nada y dos primeros CHECKOUT
	// concurrentes calcularían ambos un valor absoluto desde cero.
	LockPair(employeeID, productID string) error

	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE)
	// para el ciclo leer-calcular-escribir de la máquina de custodia.
	GetForUpdate(employeeID, productID string) (*entity.Allocation, error)

	Upsert(allocation *entity.Allocation) error
	Delete(employeeID, productID string) error
}
