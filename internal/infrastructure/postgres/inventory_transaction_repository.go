package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Custodia-api/internal/domain/entity"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implementación del libro mayor sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lista: las entradas son inmutables.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create persiste una entrada del libro mayor.
func (r *InventoryTransactionRepo) Create(tx *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, type, checkout_qty, returned_qty, used_qty, remarks, barcode_id, product_id, employee_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	remarks := (*string)(nil)
	if tx.Remarks != "" {
		remarks = &tx.Remarks
	}
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.Type, tx.CheckoutQty, tx.ReturnedQty, tx.UsedQty,
		remarks, tx.BarcodeID, tx.ProductID, tx.EmployeeID, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// List lista entradas del más reciente al más antiguo con filtro exacto por
// empleado, producto o tipo.
func (r *InventoryTransactionRepo) List(filter repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, type, checkout_qty, returned_qty, used_qty, remarks, barcode_id, product_id, employee_id, created_at
		FROM inventory_transactions WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.EmployeeID != "" {
		query += fmt.Sprintf(" AND employee_id = $%d", pos)
		args = append(args, filter.EmployeeID)
		pos++
	}
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	// created_at DESC, id DESC: orden estable aun con timestamps iguales
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		var remarks *string
		if err := rows.Scan(&t.ID, &t.Type, &t.CheckoutQty, &t.ReturnedQty, &t.UsedQty,
			&remarks, &t.BarcodeID, &t.ProductID, &t.EmployeeID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if remarks != nil {
			t.Remarks = *remarks
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
