package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Custodia-api/internal/domain"
	"github.com/jhoicas/Custodia-api/internal/domain/entity"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

var _ repository.BarcodeRepository = (*BarcodeRepo)(nil)

// BarcodeRepo implementación sobre PostgreSQL (usable con pool o tx).
type BarcodeRepo struct {
	q Querier
}

// NewBarcodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBarcodeRepository(q Querier) *BarcodeRepo {
	return &BarcodeRepo{q: q}
}

const barcodeColumns = `id, barcode_value, serial_number, product_id, box_quantity, status, created_at`

// Create persiste un código de barras recién impreso.
func (r *BarcodeRepo) Create(barcode *entity.Barcode) error {
	query := `
		INSERT INTO barcodes (id, barcode_value, serial_number, product_id, box_quantity, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		barcode.ID, barcode.BarcodeValue, barcode.SerialNumber,
		barcode.ProductID, barcode.BoxQuantity, barcode.Status, barcode.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create barcode: %w", err)
	}
	return nil
}

// GetByValueOrSerial resuelve un escaneo buscando por barcode_value y luego
// por serial_number; gana la primera coincidencia. nil si no existe.
func (r *BarcodeRepo) GetByValueOrSerial(value string) (*entity.Barcode, error) {
	return r.getByValueOrSerial(value, false)
}

// GetByValueOrSerialForUpdate igual pero bloquea la fila (SELECT FOR UPDATE)
// para serializar transacciones concurrentes sobre el mismo código.
func (r *BarcodeRepo) GetByValueOrSerialForUpdate(value string) (*entity.Barcode, error) {
	return r.getByValueOrSerial(value, true)
}

func (r *BarcodeRepo) getByValueOrSerial(value string, forUpdate bool) (*entity.Barcode, error) {
	query := `
		SELECT ` + barcodeColumns + `
		FROM barcodes
		WHERE barcode_value = $1 OR serial_number = $1
		ORDER BY (barcode_value = $1) DESC
		LIMIT 1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var b entity.Barcode
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&b.ID, &b.BarcodeValue, &b.SerialNumber, &b.ProductID,
		&b.BoxQuantity, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get barcode: %w", err)
	}
	return &b, nil
}

// LastValueByPrefix devuelve el barcode_value lexicográficamente máximo del
// prefijo, o "" si el prefijo aún no tiene seriales. El patrón exige sufijo
// numérico completo: un prefijo solapado más largo ("BXA" junto a "BX") no
// debe colarse como máximo de la familia corta.
func (r *BarcodeRepo) LastValueByPrefix(prefix string) (string, error) {
	query := `
		SELECT barcode_value
		FROM barcodes
		WHERE barcode_value ~ ('^' || $1 || '[0-9]+$')
		ORDER BY barcode_value DESC
		LIMIT 1`
	var value string
	err := r.q.QueryRow(context.Background(), query, prefix).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last value by prefix: %w", err)
	}
	return value, nil
}

// LockPrefix toma un advisory lock transaccional con clave = prefijo. Un
// SELECT FOR UPDATE sobre la fila máxima no basta: con el prefijo vacío no
// hay fila que bloquear y dos lecturas concurrentes del máximo chocarían.
// El lock se libera solo al terminar la transacción.
func (r *BarcodeRepo) LockPrefix(prefix string) error {
	_, err := r.q.Exec(context.Background(),
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, prefix)
	if err != nil {
		return fmt.Errorf("lock prefix %s: %w", prefix, err)
	}
	return nil
}

// ListByValues devuelve los códigos cuyos valores estén en values, ordenados
// por barcode_value ascendente (lectura combinada para reimpresión).
func (r *BarcodeRepo) ListByValues(values []string) ([]*entity.Barcode, error) {
	query := `
		SELECT ` + barcodeColumns + `
		FROM barcodes
		WHERE barcode_value = ANY($1)
		ORDER BY barcode_value ASC`
	rows, err := r.q.Query(context.Background(), query, values)
	if err != nil {
		return nil, fmt.Errorf("list barcodes by values: %w", err)
	}
	defer rows.Close()
	var list []*entity.Barcode
	for rows.Next() {
		var b entity.Barcode
		if err := rows.Scan(&b.ID, &b.BarcodeValue, &b.SerialNumber, &b.ProductID,
			&b.BoxQuantity, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan barcode: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de custodia de un código.
func (r *BarcodeRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE barcodes SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update barcode status: %w", err)
	}
	return nil
}
