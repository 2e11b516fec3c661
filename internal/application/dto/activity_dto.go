package dto

import "time"

// Tipos de entrada en la línea de tiempo de actividad.
const (
	ActivityAdjustment     = "adjustment"     // snapshot: fija el saldo
	ActivityTransfer       = "transfer"       // delta con signo según dirección
	ActivityUsage          = "usage"          // delta negativo por consumo
	ActivityCurrent        = "current"        // sintética: sin historial, saldo vivo
	ActivityReconciliation = "reconciliation" // sintética: el replay no cuadra con el saldo vivo
)

// ActivityEntry una entrada de la línea de tiempo reconstruida de una fila de stock.
type ActivityEntry struct {
	Type string `json:"type"`
	// Kind subtipo del ajuste (add/delta/absolute) cuando Type=adjustment.
	Kind string `json:"kind,omitempty"`
	// Delta cambio aplicado al saldo; 0 en snapshots y entradas sintéticas.
	Delta int64 `json:"delta,omitempty"`
	// Balance saldo reproducido tras aplicar esta entrada.
	Balance   int64     `json:"balance"`
	OrderRef  string    `json:"order_ref,omitempty"`
	PeerStore string    `json:"peer_store,omitempty"` // tienda contraparte en traslados
	Actor     string    `json:"actor,omitempty"`
	At        time.Time `json:"at"`
}

// ActivityResponse línea de tiempo completa de una fila de stock.
// LiveRemaining siempre es el valor autoritativo (stocked − consumido, fresco);
// la última entrada de Entries nunca lo contradice.
type ActivityResponse struct {
	StockID       string          `json:"stock_id"`
	LiveRemaining int64           `json:"live_remaining"`
	Reconciled    bool            `json:"reconciled"` // true si hubo que forzar una entrada de conciliación
	Entries       []ActivityEntry `json:"entries"`
}
