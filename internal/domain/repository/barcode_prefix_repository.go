package repository

import "github.com/jhoicas/Custodia-api/internal/domain/entity"

// BarcodePrefixRepository define el puerto de los prefijos personalizados
// persistidos (complementan el conjunto fijo entity.DefaultPrefixes).
type BarcodePrefixRepository interface {
	Create(prefix *entity.BarcodePrefix) error
	List() ([]*entity.BarcodePrefix, error)
	Exists(code string) (bool, error)
}
