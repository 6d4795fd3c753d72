package repository

import "github.com/jhoicas/Custodia-api/internal/domain/entity"

// EmployeeRepository define el puerto de lectura de empleados.
type EmployeeRepository interface {
	GetByID(id string) (*entity.Employee, error)
}
