package repository

import "github.com/jhoicas/Custodia-api/internal/domain/entity"

// ProductRepository define el puerto de lectura del catálogo de productos.
// El núcleo de custodia no crea ni modifica productos.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
}
