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

// PrefixUseCase administra la lista de prefijos personalizados que se suma al
// conjunto fijo por defecto.
type PrefixUseCase struct {
	prefixRepo repository.BarcodePrefixRepository
}

// NewPrefixUseCase construye el caso de uso.
func NewPrefixUseCase(prefixRepo repository.BarcodePrefixRepository) *PrefixUseCase {
	return &PrefixUseCase{prefixRepo: prefixRepo}
}

// Add registra un prefijo personalizado. Rechaza formato inválido y
// duplicados contra ambos conjuntos (fijo y persistido).
func (uc *PrefixUseCase) Add(_ context.Context, code string) error {
	if !serial.ValidPrefix(code) {
		return domain.ErrInvalidInput
	}
	if entity.IsDefaultPrefix(code) {
		return domain.ErrConflict
	}
	exists, err := uc.prefixRepo.Exists(code)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrConflict
	}
	return uc.prefixRepo.Create(&entity.BarcodePrefix{
		ID:        uuid.New().String(),
		Code:      code,
		CreatedAt: time.Now(),
	})
}

// List devuelve el conjunto fijo y los personalizados persistidos.
func (uc *PrefixUseCase) List(_ context.Context) (*dto.PrefixListResponse, error) {
	custom, err := uc.prefixRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.PrefixListResponse{
		Defaults: append([]string(nil), entity.DefaultPrefixes...),
		Custom:   make([]string, 0, len(custom)),
	}
	for _, p := range custom {
		out.Custom = append(out.Custom, p.Code)
	}
	return out, nil
}
