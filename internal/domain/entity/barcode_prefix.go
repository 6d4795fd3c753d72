package entity

import "time"

// DefaultPrefixes es el conjunto fijo de prefijos siempre permitidos.
var DefaultPrefixes = []string{"BX", "CJ", "PQ"}

// BarcodePrefix es un prefijo personalizado persistido (2-4 letras mayúsculas)
// que se suma al conjunto fijo por defecto.
type BarcodePrefix struct {
	ID        string
	Code      string
	CreatedAt time.Time
}

// IsDefaultPrefix indica si code pertenece al conjunto fijo.
func IsDefaultPrefix(code string) bool {
	for _, p := range DefaultPrefixes {
		if p == code {
			return true
		}
	}
	return false
}
