package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Custodia-api/internal/application/custody"
	"github.com/jhoicas/Custodia-api/internal/application/labels"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

// Ensure TxRunner implements custody.TxRunner and labels.MintTxRunner.
var _ custody.TxRunner = (*TxRunner)(nil)
var _ labels.MintTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. La
// transacción es la unidad de exclusión mutua del núcleo: junto con los
// SELECT FOR UPDATE y el advisory lock por prefijo, serializa operaciones
// que comparten clave (mismo código, mismo par empleado-producto, mismo
// prefijo) y deja el resto en paralelo.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de la máquina de custodia y hace
// Commit o Rollback según el resultado de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(
	barcodeRepo repository.BarcodeRepository,
	ledgerRepo repository.InventoryTransactionRepository,
	checkoutRepo repository.BarcodeCheckoutRepository,
	allocationRepo repository.AllocationRepository,
	employeeRepo repository.EmployeeRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	barcodeRepo := NewBarcodeRepository(tx)
	ledgerRepo := NewInventoryTransactionRepository(tx)
	checkoutRepo := NewBarcodeCheckoutRepository(tx)
	allocationRepo := NewAllocationRepository(tx)
	employeeRepo := NewEmployeeRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(barcodeRepo, ledgerRepo, checkoutRepo, allocationRepo, employeeRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunMint inicia una transacción con los repos de la asignación de seriales
// (leer máximo del prefijo + insertar N códigos).
func (r *TxRunner) RunMint(ctx context.Context, fn func(
	barcodeRepo repository.BarcodeRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	barcodeRepo := NewBarcodeRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(barcodeRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
