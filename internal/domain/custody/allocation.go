// Package custody contiene las reglas puras de la máquina de custodia:
// el cálculo incremental de asignaciones por (empleado, producto) y la unión
// etiquetada de operaciones de transacción.
package custody

// NextAllocation calcula el siguiente estado de la asignación de un par
// (empleado, producto) al aplicar un delta firmado (positivo en CHECKOUT,
// negativo en RETURN). current/exists modelan el opcional "fila actual o
// ninguna". Devuelve (unidades, true) si debe persistirse una fila, o
// (0, false) si no debe existir fila (el neto llegó a cero o menos).
//
// Es una función pura e independiente del almacenamiento: la equivalencia con
// reproducir el libro mayor completo se verifica por tests de propiedad.
func NextAllocation(current int, exists bool, delta int) (int, bool) {
	if !exists {
		current = 0
	}
	next := current + delta
	if next <= 0 {
		return 0, false
	}
	return next, true
}
