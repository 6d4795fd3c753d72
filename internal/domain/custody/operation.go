package custody

import "github.com/jhoicas/Custodia-api/internal/domain/entity"

// Operation es la unión etiquetada de operaciones sobre un código de barras.
// Cada tipo lleva solo su propia cantidad, de modo que procesar un RETURN no
// puede leer por accidente la cantidad de un CHECKOUT. La interfaz está
// sellada: solo Checkout, Return y Use la implementan.
type Operation interface {
	// TxType devuelve el tipo de transacción del libro mayor que produce.
	TxType() string

	isOperation()
}

// Checkout entrega el código en custodia del empleado.
// Quantity <= 0 usa como respaldo la cantidad de caja guardada en el código.
type Checkout struct {
	Quantity int
}

// Return devuelve unidades y libera el código.
type Return struct {
	Quantity int
}

// Use registra consumo sin transferencia de custodia.
type Use struct {
	Quantity int
}

func (Checkout) TxType() string { return entity.TxTypeCheckout }
func (Return) TxType() string   { return entity.TxTypeReturn }
func (Use) TxType() string      { return entity.TxTypeUse }

func (Checkout) isOperation() {}
func (Return) isOperation()   {}
func (Use) isOperation()      {}
