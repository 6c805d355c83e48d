package entity

import "fmt"

// Nombres de campo aceptados por el motor de filtros.
const (
	FieldName         = "name"
	FieldCategory     = "category"
	FieldArea         = "area"
	FieldSupplier     = "supplier"
	FieldObservations = "observations"
	FieldProduct      = "product"
	FieldUser         = "user"
	FieldStatus       = "status"

	FieldQuantity  = "quantity"
	FieldUnitPrice = "unitPrice"
	FieldMinStock  = "minStock"
	FieldMaxStock  = "maxStock"
	FieldTotal     = "total"

	FieldSaved                 = "saved"
	FieldRequiresRefrigeration = "requiresRefrigeration"
)

// unknownField falla de inmediato: pedir un campo inexistente es un error de programación.
func unknownField(kind, field string) {
	panic(fmt.Sprintf("entity: %s no tiene el campo %q", kind, field))
}
