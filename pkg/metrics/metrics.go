// Package metrics define los contadores Prometheus del libro de stock.
// Se registran en el registry por defecto y se exponen en /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UsageTasksProcessed tareas de consumo procesadas, por resultado (done/failed).
	UsageTasksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imprenta",
		Subsystem: "usage",
		Name:      "tasks_processed_total",
		Help:      "Tareas de consumo procesadas por resultado.",
	}, []string{"result"})

	// UsageTaskRetries reintentos de tareas de consumo.
	UsageTaskRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "imprenta",
		Subsystem: "usage",
		Name:      "task_retries_total",
		Help:      "Reintentos de tareas de consumo.",
	})

	// UsageEventsRecorded eventos de consumo escritos en el log.
	UsageEventsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "imprenta",
		Subsystem: "usage",
		Name:      "events_recorded_total",
		Help:      "Eventos de consumo registrados.",
	})

	// TransfersRejected traslados rechazados por saldo insuficiente.
	TransfersRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "imprenta",
		Subsystem: "stock",
		Name:      "transfers_rejected_total",
		Help:      "Traslados rechazados por saldo insuficiente.",
	})
)
