package labels

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Custodia-api/internal/application/dto"
	"github.com/jhoicas/Custodia-api/internal/domain"
	"github.com/jhoicas/Custodia-api/internal/domain/entity"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
	"github.com/jhoicas/Custodia-api/internal/domain/serial"
)

// Límites de tamaño de lote. Lotes pequeños mantienen acotada la duración de
// la transacción que retiene el lock del prefijo.
const (
	MinBatchCount = 1
	MaxBatchCount = 100
)

// MintLabelsUseCase asigna seriales por prefijo y produce la hoja de rótulos.
// La asignación (leer máximo + insertar N) corre dentro de una transacción
// con advisory lock por prefijo; el render corre después, fuera de la
// transacción. Si el render falla los seriales quedan persistidos: nunca se
// "devuelven" seriales, el reintento usa RenderExisting.
type MintLabelsUseCase struct {
	txRunner      MintTxRunner
	barcodeRepo   repository.BarcodeRepository
	productRepo   repository.ProductRepository
	prefixRepo    repository.BarcodePrefixRepository
	symbols       *SymbolStrategy
	sheets        SheetRenderer
	defaultPrefix string
}

// NewMintLabelsUseCase construye el caso de uso. barcodeRepo y productRepo
// van atados al pool (lecturas de reimpresión, fuera de transacción).
func NewMintLabelsUseCase(
	txRunner MintTxRunner,
	barcodeRepo repository.BarcodeRepository,
	productRepo repository.ProductRepository,
	prefixRepo repository.BarcodePrefixRepository,
	symbols *SymbolStrategy,
	sheets SheetRenderer,
	defaultPrefix string,
) *MintLabelsUseCase {
	return &MintLabelsUseCase{
		txRunner:      txRunner,
		barcodeRepo:   barcodeRepo,
		productRepo:   productRepo,
		prefixRepo:    prefixRepo,
		symbols:       symbols,
		sheets:        sheets,
		defaultPrefix: defaultPrefix,
	}
}

// MintOutput resultado de una impresión o reimpresión. Tras una falla de
// render, Barcodes viene poblado junto con el error: los seriales ya están
// confirmados y el caller puede reintentar solo el render.
type MintOutput struct {
	Sheet    []byte
	Barcodes []dto.BarcodeDTO
}

// MintLabels valida el lote, reserva count seriales contiguos del prefijo en
// una transacción y genera la hoja A4. Toda validación ocurre ANTES de tocar
// el almacenamiento: un lote inválido no reserva ningún serial.
func (uc *MintLabelsUseCase) MintLabels(ctx context.Context, in dto.MintLabelsRequest) (*MintOutput, error) {
	if in.ProductID == "" || in.Count < MinBatchCount || in.Count > MaxBatchCount {
		return nil, domain.ErrInvalidInput
	}
	prefix := in.Prefix
	if prefix == "" {
		prefix = uc.defaultPrefix
	}
	if !serial.ValidPrefix(prefix) {
		return nil, domain.ErrInvalidInput
	}
	allowed, err := uc.prefixAllowed(prefix)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var minted []*entity.Barcode
	var product *entity.Product

	err = uc.txRunner.RunMint(ctx, func(
		barcodeRepo repository.BarcodeRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err = productRepo.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		// Serializa impresiones concurrentes del mismo prefijo; sin esto dos
		// lecturas del máximo podrían producir seriales superpuestos.
		if err := barcodeRepo.LockPrefix(prefix); err != nil {
			return err
		}
		lastValue, err := barcodeRepo.LastValueByPrefix(prefix)
		if err != nil {
			return err
		}
		last := serial.None()
		if lastValue != "" {
			if last, err = serial.Parse(prefix, lastValue); err != nil {
				return err
			}
		}

		for _, value := range last.Next(prefix, in.Count) {
			barcode := &entity.Barcode{
				ID:           uuid.New().String(),
				BarcodeValue: value,
				SerialNumber: value,
				ProductID:    product.ID,
				BoxQuantity:  product.BoxQuantity,
				Status:       entity.BarcodeStatusAvailable,
				CreatedAt:    now,
			}
			if err := barcodeRepo.Create(barcode); err != nil {
				return err
			}
			minted = append(minted, barcode)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.renderBatch(ctx, minted, product)
}

// RenderExisting reimprime la hoja de un lote ya asignado: lee los códigos
// existentes (lectura combinada, sin re-asignar) y vuelve a hacer el render.
// Es la ruta de reintento tras un ErrRenderFailed de MintLabels.
func (uc *MintLabelsUseCase) RenderExisting(ctx context.Context, values []string) (*MintOutput, error) {
	if len(values) == 0 {
		return nil, domain.ErrInvalidInput
	}
	barcodes, err := uc.barcodeRepo.ListByValues(values)
	if err != nil {
		return nil, err
	}
	if len(barcodes) != len(values) {
		return nil, domain.ErrNotFound
	}
	return uc.renderBatch(ctx, barcodes, nil)
}

// renderBatch rasteriza cada símbolo (primario → respaldo) y arma la hoja.
// product nil hace buscar cada producto referenciado (reimpresión).
func (uc *MintLabelsUseCase) renderBatch(ctx context.Context, barcodes []*entity.Barcode, product *entity.Product) (*MintOutput, error) {
	out := &MintOutput{Barcodes: make([]dto.BarcodeDTO, 0, len(barcodes))}
	for _, b := range barcodes {
		out.Barcodes = append(out.Barcodes, dto.BarcodeDTO{
			BarcodeValue: b.BarcodeValue,
			SerialNumber: b.SerialNumber,
			ProductID:    b.ProductID,
			BoxQuantity:  b.BoxQuantity,
			Status:       b.Status,
		})
	}

	products := map[string]*entity.Product{}
	if product != nil {
		products[product.ID] = product
	}

	cells := make([]LabelCell, 0, len(barcodes))
	for _, b := range barcodes {
		p, ok := products[b.ProductID]
		if !ok {
			var err error
			if p, err = uc.productRepo.GetByID(b.ProductID); err != nil {
				return out, err
			}
			if p == nil {
				return out, domain.ErrNotFound
			}
			products[b.ProductID] = p
		}
		symbol, err := uc.symbols.Render(b.BarcodeValue)
		if err != nil {
			// Los seriales ya están confirmados; se reporta la falla de
			// render con el lote para que el caller reintente solo el render.
			return out, err
		}
		cells = append(cells, LabelCell{
			BarcodeValue: b.BarcodeValue,
			SKU:          p.SKU,
			ProductName:  p.Name,
			BoxQuantity:  b.BoxQuantity,
			Symbol:       symbol,
		})
	}

	sheet, err := uc.sheets.RenderSheet(ctx, cells)
	if err != nil {
		return out, err
	}
	out.Sheet = sheet
	return out, nil
}

// prefixAllowed: prefijo del conjunto fijo o personalizado persistido.
func (uc *MintLabelsUseCase) prefixAllowed(prefix string) (bool, error) {
	if entity.IsDefaultPrefix(prefix) {
		return true, nil
	}
	return uc.prefixRepo.Exists(prefix)
}
