package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Custodia-api/internal/domain/entity"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación de AllocationRepository sobre PostgreSQL
// (usable con pool o tx). Clave compuesta (employee_id, product_id).
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

// LockPair toma un advisory lock transaccional con clave = (empleado,
// producto). Igual que LockPrefix en la impresión: la ausencia de fila deja a
// FOR UPDATE sin nada que bloquear, así que la exclusión del ciclo
// leer-calcular-escribir se ancla en el lock y no en la fila. Se libera solo
// al terminar la transacción.
func (r *AllocationRepo) LockPair(employeeID, productID string) error {
	_, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock(hashtextextended($1 || '|' || $2, 0))`,
		employeeID, productID,
	)
	if err != nil {
		return fmt.Errorf("lock allocation pair: %w", err)
	}
	return nil
}

// Get obtiene la asignación vigente del par, o nil si no hay fila.
func (r *AllocationRepo) Get(employeeID, productID string) (*entity.Allocation, error) {
	return r.get(employeeID, productID, false)
}

// GetForUpdate obtiene la asignación y bloquea la fila (SELECT FOR UPDATE).
func (r *AllocationRepo) GetForUpdate(employeeID, productID string) (*entity.Allocation, error) {
	return r.get(employeeID, productID, true)
}

func (r *AllocationRepo) get(employeeID, productID string, forUpdate bool) (*entity.Allocation, error) {
	query := `
		SELECT employee_id, product_id, allocated_units, updated_at
		FROM allocations WHERE employee_id = $1 AND product_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var a entity.Allocation
	err := r.q.QueryRow(context.Background(), query, employeeID, productID).Scan(
		&a.EmployeeID, &a.ProductID, &a.AllocatedUnits, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	return &a, nil
}

// Upsert inserta o actualiza las unidades asignadas del par.
func (r *AllocationRepo) Upsert(allocation *entity.Allocation) error {
	query := `
		INSERT INTO allocations (employee_id, product_id, allocated_units, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, product_id)
		DO UPDATE SET allocated_units = EXCLUDED.allocated_units, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		allocation.EmployeeID, allocation.ProductID, allocation.AllocatedUnits, allocation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert allocation: %w", err)
	}
	return nil
}

// Delete elimina la fila del par (neto en cero: no se persisten ceros).
func (r *AllocationRepo) Delete(employeeID, productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM allocations WHERE employee_id = $1 AND product_id = $2`,
		employeeID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete allocation: %w", err)
	}
	return nil
}
