package entity

import "time"

// Employee representa un empleado que puede tener unidades en custodia.
// La gestión de empleados vive fuera de este núcleo; aquí solo se consulta.
type Employee struct {
	ID        string
	Name      string
	Email     string
	Active    bool
	CreatedAt time.Time
}
