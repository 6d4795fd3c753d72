package repository

import "github.com/jhoicas/Custodia-api/internal/domain/entity"

// BarcodeRepository define el puerto de persistencia del registro de códigos
// de barras. Los códigos se crean solo al imprimir, nunca se eliminan, y su
// estado solo lo cambia la máquina de custodia.
type BarcodeRepository interface {
	Create(barcode *entity.Barcode) error

	// GetByValueOrSerial resuelve un escaneo: busca primero por barcode_value
	// y luego por serial_number; gana la primera coincidencia. nil si no hay.
	GetByValueOrSerial(value string) (*entity.Barcode, error)

	// GetByValueOrSerialForUpdate igual que GetByValueOrSerial pero bloquea la
	// fila (SELECT FOR UPDATE) para serializar escaneos del mismo código.
	GetByValueOrSerialForUpdate(value string) (*entity.Barcode, error)

	// LastValueByPrefix devuelve el barcode_value lexicográficamente máximo
	// entre los valores {prefijo}{sufijo numérico}, o "" si el prefijo no
	// tiene seriales aún. Valores de prefijos solapados más largos ("BXA"
	// frente a "BX") no cuentan: su sufijo no es numérico para el corto.
	LastValueByPrefix(prefix string) (string, error)

	// LockPrefix toma un advisory lock transaccional con clave = prefijo.
	// Serializa la secuencia leer-máximo-insertar entre impresiones
	// concurrentes del mismo prefijo; prefijos distintos no se bloquean.
	LockPrefix(prefix string) error

	// ListByValues devuelve los códigos cuyos valores estén en values,
	// ordenados por barcode_value ascendente (reimpresión de lotes).
	ListByValues(values []string) ([]*entity.Barcode, error)

	UpdateStatus(id, status string) error
}
