package entity

// OrderCustomer datos mínimos del comprador que se muestran en back-office.
type OrderCustomer struct {
	Name  string
	Email string
}

// OrderLine línea del pedido con el plato unido (puede ser nil si el plato fue eliminado).
type OrderLine struct {
	OrderItem
	MenuItem *MenuItem
}

// OrderDetail vista de lectura de un pedido con usuario, líneas y pago unidos.
type OrderDetail struct {
	Order
	Customer OrderCustomer
	Items    []OrderLine
	Payment  *Payment
}
