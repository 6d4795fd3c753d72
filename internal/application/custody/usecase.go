package custody

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Custodia-api/internal/application/dto"
	"github.com/jhoicas/Custodia-api/internal/domain"
	"github.com/jhoicas/Custodia-api/internal/domain/custody"
	"github.com/jhoicas/Custodia-api/internal/domain/entity"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

// RecordTransactionUseCase es la máquina de estados de custodia: dado un
// escaneo (valor de código + tipo de operación + empleado) valida
// precondiciones, agrega al libro mayor, cambia el estado del código, maneja
// la ventana de entrega y actualiza la asignación — todo dentro de UNA
// transacción de BD (Commit/Rollback vía TxRunner).
type RecordTransactionUseCase struct {
	txRunner TxRunner
}

// NewRecordTransactionUseCase construye el caso de uso.
func NewRecordTransactionUseCase(txRunner TxRunner) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{txRunner: txRunner}
}

// operationFromRequest traduce el body HTTP a la unión etiquetada de
// operaciones: cada tipo solo conserva su propia cantidad.
func operationFromRequest(in dto.RecordTransactionRequest) (custody.Operation, error) {
	switch in.Type {
	case entity.TxTypeCheckout:
		return custody.Checkout{Quantity: in.CheckoutQty}, nil
	case entity.TxTypeReturn:
		return custody.Return{Quantity: in.ReturnedQty}, nil
	case entity.TxTypeUse:
		return custody.Use{Quantity: in.UsedQty}, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}

// RecordTransaction procesa un escaneo. El código se resuelve por
// barcode_value O serial_number (gana la primera coincidencia) y se bloquea
// su fila para serializar escaneos concurrentes del mismo código. Cualquier
// falla intermedia (por ejemplo empleado inexistente) revierte todo: sin
// entrada parcial en el libro, sin cambio de estado, sin mutación de
// asignación.
func (uc *RecordTransactionUseCase) RecordTransaction(ctx context.Context, in dto.RecordTransactionRequest) (*dto.RecordTransactionResponse, error) {
	if in.BarcodeValue == "" || in.EmployeeID == "" {
		return nil, domain.ErrInvalidInput
	}
	op, err := operationFromRequest(in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var resp *dto.RecordTransactionResponse

	err = uc.txRunner.Run(ctx, func(
		barcodeRepo repository.BarcodeRepository,
		ledgerRepo repository.InventoryTransactionRepository,
		checkoutRepo repository.BarcodeCheckoutRepository,
		allocationRepo repository.AllocationRepository,
		employeeRepo repository.EmployeeRepository,
		productRepo repository.ProductRepository,
	) error {
		barcode, err := barcodeRepo.GetByValueOrSerialForUpdate(in.BarcodeValue)
		if err != nil {
			return err
		}
		if barcode == nil {
			return domain.ErrNotFound
		}
		employee, err := employeeRepo.GetByID(in.EmployeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetByID(barcode.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		entry := &entity.InventoryTransaction{
			ID:         uuid.New().String(),
			Type:       op.TxType(),
			Remarks:    in.Remarks,
			BarcodeID:  barcode.ID,
			ProductID:  barcode.ProductID,
			EmployeeID: employee.ID,
			CreatedAt:  now,
		}

		switch o := op.(type) {
		case custody.Checkout:
			err = uc.applyCheckout(barcodeRepo, checkoutRepo, allocationRepo, barcode, employee.ID, entry, o, now)
		case custody.Return:
			err = uc.applyReturn(barcodeRepo, checkoutRepo, allocationRepo, barcode, employee.ID, entry, o, now)
		case custody.Use:
			entry.UsedQty = fallbackQty(o.Quantity, barcode)
		}
		if err != nil {
			return err
		}

		if err := ledgerRepo.Create(entry); err != nil {
			return err
		}

		resp = buildResponse(entry, barcode, product, employee)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// applyCheckout: estado CHECKED_OUT, abre ventana de entrega y suma la
// asignación. Deliberadamente NO exige que el código esté AVAILABLE: un
// CHECKOUT sobre un código ya entregado se registra igual (el estado es un
// set idempotente, no una guarda estricta); regla heredada del negocio.
func (uc *RecordTransactionUseCase) applyCheckout(
	barcodeRepo repository.BarcodeRepository,
	checkoutRepo repository.BarcodeCheckoutRepository,
	allocationRepo repository.AllocationRepository,
	barcode *entity.Barcode,
	employeeID string,
	entry *entity.InventoryTransaction,
	op custody.Checkout,
	now time.Time,
) error {
	qty := fallbackQty(op.Quantity, barcode)
	entry.CheckoutQty = qty

	if err := barcodeRepo.UpdateStatus(barcode.ID, entity.BarcodeStatusCheckedOut); err != nil {
		return err
	}
	barcode.Status = entity.BarcodeStatusCheckedOut

	window := &entity.BarcodeCheckout{
		ID:         uuid.New().String(),
		BarcodeID:  barcode.ID,
		EmployeeID: employeeID,
		IsReturned: false,
		CreatedAt:  now,
	}
	if err := checkoutRepo.Create(window); err != nil {
		return err
	}

	return uc.applyAllocationDelta(allocationRepo, employeeID, barcode.ProductID, qty, now)
}

// applyReturn: estado AVAILABLE, cierra la ventana abierta más reciente del
// par (código, empleado) — si no hay ninguna abierta es un no-op silencioso —
// y descuenta la asignación con recorte en cero (la fila se borra al llegar
// a cero).
func (uc *RecordTransactionUseCase) applyReturn(
	barcodeRepo repository.BarcodeRepository,
	checkoutRepo repository.BarcodeCheckoutRepository,
	allocationRepo repository.AllocationRepository,
	barcode *entity.Barcode,
	employeeID string,
	entry *entity.InventoryTransaction,
	op custody.Return,
	now time.Time,
) error {
	qty := fallbackQty(op.Quantity, barcode)
	entry.ReturnedQty = qty

	if err := barcodeRepo.UpdateStatus(barcode.ID, entity.BarcodeStatusAvailable); err != nil {
		return err
	}
	barcode.Status = entity.BarcodeStatusAvailable

	window, err := checkoutRepo.LatestOpen(barcode.ID, employeeID)
	if err != nil {
		return err
	}
	if window != nil {
		if err := checkoutRepo.Close(window.ID, now); err != nil {
			return err
		}
	}

	return uc.applyAllocationDelta(allocationRepo, employeeID, barcode.ProductID, -qty, now)
}

// applyAllocationDelta: ciclo leer-calcular-escribir de la asignación bajo el
// advisory lock del par. El lock va antes de la lectura porque en el primer
// CHECKOUT del par no existe fila que FOR UPDATE pueda bloquear; sin él, dos
// primeros checkouts concurrentes por códigos distintos escribirían ambos un
// valor absoluto y el último pisaría al primero. El cálculo en sí es la
// función pura custody.NextAllocation.
func (uc *RecordTransactionUseCase) applyAllocationDelta(
	allocationRepo repository.AllocationRepository,
	employeeID, productID string,
	delta int,
	now time.Time,
) error {
	if err := allocationRepo.LockPair(employeeID, productID); err != nil {
		return err
	}
	current, err := allocationRepo.GetForUpdate(employeeID, productID)
	if err != nil {
		return err
	}
	units, exists := 0, false
	if current != nil {
		units, exists = current.AllocatedUnits, true
	}
	next, keep := custody.NextAllocation(units, exists, delta)
	if !keep {
		if exists {
			return allocationRepo.Delete(employeeID, productID)
		}
		return nil
	}
	return allocationRepo.Upsert(&entity.Allocation{
		EmployeeID:     employeeID,
		ProductID:      productID,
		AllocatedUnits: next,
		UpdatedAt:      now,
	})
}

// fallbackQty: cantidad solicitada, o la cantidad de caja guardada en el
// código si no se indicó (<= 0).
func fallbackQty(requested int, barcode *entity.Barcode) int {
	if requested > 0 {
		return requested
	}
	return barcode.BoxQuantity
}

func buildResponse(entry *entity.InventoryTransaction, barcode *entity.Barcode, product *entity.Product, employee *entity.Employee) *dto.RecordTransactionResponse {
	return &dto.RecordTransactionResponse{
		Transaction: dto.TransactionDTO{
			ID:          entry.ID,
			Type:        entry.Type,
			CheckoutQty: entry.CheckoutQty,
			ReturnedQty: entry.ReturnedQty,
			UsedQty:     entry.UsedQty,
			Remarks:     entry.Remarks,
			BarcodeID:   entry.BarcodeID,
			ProductID:   entry.ProductID,
			EmployeeID:  entry.EmployeeID,
			CreatedAt:   entry.CreatedAt,
		},
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
		Employee: dto.EmployeeSummaryDTO{
			ID:   employee.ID,
			Name: employee.Name,
		},
	}
}
