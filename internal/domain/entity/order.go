package entity

import "time"

// OrderItem es la forma de un renglón de pedido confirmado tal como lo entrega
// el subsistema de pedidos. DoubleSided viaja como booleano explícito desde la
// creación del pedido; nunca se deriva del texto visible del renglón.
type OrderItem struct {
	Selections  []Selection `json:"selections"`
	Pages       int         `json:"pages"`
	DoubleSided bool        `json:"double_sided"`
	Spoiled     int         `json:"spoiled"`
}

// Estados de una tarea de consumo encolada tras confirmar un pedido.
const (
	UsageTaskPending = "pending"
	UsageTaskDone    = "done"
	UsageTaskFailed  = "failed"
)

// UsageTask tarea persistida de registro de consumo (at-least-once).
// Se crea al confirmar el pedido y un worker la procesa con reintentos;
// si agota los reintentos queda failed y solo se reporta, nunca bloquea
// ni revierte el pedido ya confirmado.
type UsageTask struct {
	ID        string
	OrderRef  string
	Items     []OrderItem
	Status    string
	Attempts  int
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}
