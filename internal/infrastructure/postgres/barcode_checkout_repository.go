package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Custodia-api/internal/domain/entity"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

var _ repository.BarcodeCheckoutRepository = (*BarcodeCheckoutRepo)(nil)

// BarcodeCheckoutRepo implementación de las ventanas de entrega sobre
// PostgreSQL (usable con pool o tx).
type BarcodeCheckoutRepo struct {
	q Querier
}

// NewBarcodeCheckoutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBarcodeCheckoutRepository(q Querier) *BarcodeCheckoutRepo {
	return &BarcodeCheckoutRepo{q: q}
}

// Create abre una ventana de entrega.
func (r *BarcodeCheckoutRepo) Create(checkout *entity.BarcodeCheckout) error {
	query := `
		INSERT INTO barcode_checkouts (id, barcode_id, employee_id, is_returned, return_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		checkout.ID, checkout.BarcodeID, checkout.EmployeeID,
		checkout.IsReturned, checkout.ReturnTime, checkout.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create barcode checkout: %w", err)
	}
	return nil
}

// LatestOpen devuelve la ventana abierta más reciente del par (código,
// empleado), o nil si no hay ninguna abierta.
func (r *BarcodeCheckoutRepo) LatestOpen(barcodeID, employeeID string) (*entity.BarcodeCheckout, error) {
	query := `
		SELECT id, barcode_id, employee_id, is_returned, return_time, created_at
		FROM barcode_checkouts
		WHERE barcode_id = $1 AND employee_id = $2 AND is_returned = false
		ORDER BY created_at DESC
		LIMIT 1`
	var c entity.BarcodeCheckout
	err := r.q.QueryRow(context.Background(), query, barcodeID, employeeID).Scan(
		&c.ID, &c.BarcodeID, &c.EmployeeID, &c.IsReturned, &c.ReturnTime, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest open checkout: %w", err)
	}
	return &c, nil
}

// Close marca la ventana como devuelta.
func (r *BarcodeCheckoutRepo) Close(id string, returnTime time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE barcode_checkouts SET is_returned = true, return_time = $2 WHERE id = $1`,
		id, returnTime,
	)
	if err != nil {
		return fmt.Errorf("close barcode checkout: %w", err)
	}
	return nil
}
