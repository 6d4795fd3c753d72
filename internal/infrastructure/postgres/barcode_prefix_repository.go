package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Custodia-api/internal/domain"
	"github.com/jhoicas/Custodia-api/internal/domain/entity"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

var _ repository.BarcodePrefixRepository = (*BarcodePrefixRepo)(nil)

// BarcodePrefixRepo prefijos personalizados sobre PostgreSQL (usable con pool o tx).
type BarcodePrefixRepo struct {
	q Querier
}

// NewBarcodePrefixRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBarcodePrefixRepository(q Querier) *BarcodePrefixRepo {
	return &BarcodePrefixRepo{q: q}
}

// Create persiste un prefijo personalizado. Código único.
func (r *BarcodePrefixRepo) Create(prefix *entity.BarcodePrefix) error {
	query := `
		INSERT INTO barcode_prefixes (id, code, created_at)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, prefix.ID, prefix.Code, prefix.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create barcode prefix: %w", err)
	}
	return nil
}

// List devuelve los prefijos personalizados ordenados por código.
func (r *BarcodePrefixRepo) List() ([]*entity.BarcodePrefix, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, code, created_at FROM barcode_prefixes ORDER BY code ASC`)
	if err != nil {
		return nil, fmt.Errorf("list barcode prefixes: %w", err)
	}
	defer rows.Close()
	var list []*entity.BarcodePrefix
	for rows.Next() {
		var p entity.BarcodePrefix
		if err := rows.Scan(&p.ID, &p.Code, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan barcode prefix: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Exists verifica si un código ya está persistido.
func (r *BarcodePrefixRepo) Exists(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM barcode_prefixes WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("barcode prefix exists: %w", err)
	}
	return exists, nil
}
