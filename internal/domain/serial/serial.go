// Package serial implementa la numeración de seriales por prefijo: valores
// {prefijo}{ordinal con ceros a la izquierda, ancho fijo 6}, estrictamente
// crecientes dentro de cada prefijo.
package serial

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/Custodia-api/internal/domain"
)

// Width ancho fijo del ordinal con ceros a la izquierda.
const Width = 6

var prefixPattern = regexp.MustCompile(`^[A-Z]{2,4}$`)

// ValidPrefix valida el formato de un prefijo: 2 a 4 letras mayúsculas.
func ValidPrefix(prefix string) bool {
	return prefixPattern.MatchString(prefix)
}

// Last es el opcional explícito "último serial del prefijo, o ninguno".
// Evita arrastrar un string nullable por el parseo: o existe un ordinal o no.
type Last struct {
	ordinal int
	found   bool
}

// None representa un prefijo sin seriales previos (el siguiente será 1).
func None() Last {
	return Last{}
}

// Parse interpreta el valor de código de barras lexicográficamente máximo de
// un prefijo y devuelve su ordinal. El valor debe empezar por el prefijo y el
// sufijo debe ser numérico.
func Parse(prefix, barcodeValue string) (Last, error) {
	if !strings.HasPrefix(barcodeValue, prefix) {
		return Last{}, fmt.Errorf("serial %q no pertenece al prefijo %q: %w", barcodeValue, prefix, domain.ErrInvalidInput)
	}
	suffix := barcodeValue[len(prefix):]
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return Last{}, fmt.Errorf("serial %q con sufijo no numérico: %w", barcodeValue, domain.ErrInvalidInput)
	}
	return Last{ordinal: n, found: true}, nil
}

// Ordinal devuelve el ordinal y si existe un serial previo.
func (l Last) Ordinal() (int, bool) {
	return l.ordinal, l.found
}

// Next genera los siguientes count valores del prefijo, contiguos y en orden
// ascendente a partir del último ordinal (o desde 1 si no hay previo).
func (l Last) Next(prefix string, count int) []string {
	values := make([]string, 0, count)
	for k := l.ordinal + 1; k <= l.ordinal+count; k++ {
		values = append(values, Format(prefix, k))
	}
	return values
}

// Format arma un valor de código de barras: prefijo + ordinal con ceros.
func Format(prefix string, ordinal int) string {
	return fmt.Sprintf("%s%0*d", prefix, Width, ordinal)
}
