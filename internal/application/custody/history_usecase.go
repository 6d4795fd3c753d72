package custody

import (
	"context"

	"github.com/jhoicas/Custodia-api/internal/application/dto"
	"github.com/jhoicas/Custodia-api/internal/domain"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

// HistoryUseCase expone las lecturas del núcleo: historial del libro mayor,
// búsqueda de códigos por valor o serial y asignación vigente por par.
type HistoryUseCase struct {
	ledgerRepo     repository.InventoryTransactionRepository
	barcodeRepo    repository.BarcodeRepository
	productRepo    repository.ProductRepository
	allocationRepo repository.AllocationRepository
}

// NewHistoryUseCase construye el caso de uso con repos atados al pool.
func NewHistoryUseCase(
	ledgerRepo repository.InventoryTransactionRepository,
	barcodeRepo repository.BarcodeRepository,
	productRepo repository.ProductRepository,
	allocationRepo repository.AllocationRepository,
) *HistoryUseCase {
	return &HistoryUseCase{
		ledgerRepo:     ledgerRepo,
		barcodeRepo:    barcodeRepo,
		productRepo:    productRepo,
		allocationRepo: allocationRepo,
	}
}

// ListTransactions lista el libro mayor del más reciente al más antiguo,
// con filtro exacto por empleado, producto o tipo.
func (uc *HistoryUseCase) ListTransactions(_ context.Context, filter repository.TransactionFilter) ([]dto.TransactionDTO, error) {
	entries, err := uc.ledgerRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.TransactionDTO{
			ID:          e.ID,
			Type:        e.Type,
			CheckoutQty: e.CheckoutQty,
			ReturnedQty: e.ReturnedQty,
			UsedQty:     e.UsedQty,
			Remarks:     e.Remarks,
			BarcodeID:   e.BarcodeID,
			ProductID:   e.ProductID,
			EmployeeID:  e.EmployeeID,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out, nil
}

// LookupBarcode resuelve un código por barcode_value o serial_number y arma
// el resumen del producto. La cantidad de caja devuelta es la guardada en el
// código (snapshot al imprimir), no la actual del producto.
func (uc *HistoryUseCase) LookupBarcode(_ context.Context, value string) (*dto.BarcodeLookupResponse, error) {
	if value == "" {
		return nil, domain.ErrInvalidInput
	}
	barcode, err := uc.barcodeRepo.GetByValueOrSerial(value)
	if err != nil {
		return nil, err
	}
	if barcode == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(barcode.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.BarcodeLookupResponse{
		Barcode: dto.BarcodeDTO{
			BarcodeValue: barcode.BarcodeValue,
			SerialNumber: barcode.SerialNumber,
			ProductID:    barcode.ProductID,
			BoxQuantity:  barcode.BoxQuantity,
			Status:       barcode.Status,
		},
		Product: dto.ProductSummaryDTO{
			ID:          product.ID,
			SKU:         product.SKU,
			Name:        product.Name,
			BoxQuantity: product.BoxQuantity,
		},
	}, nil
}

// GetAllocation devuelve la asignación vigente del par (empleado, producto).
// La ausencia de fila es semánticamente cero, no un error.
func (uc *HistoryUseCase) GetAllocation(_ context.Context, employeeID, productID string) (*dto.AllocationDTO, error) {
	if employeeID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	allocation, err := uc.allocationRepo.Get(employeeID, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.AllocationDTO{EmployeeID: employeeID, ProductID: productID}
	if allocation != nil {
		out.AllocatedUnits = allocation.AllocatedUnits
	}
	return out, nil
}
