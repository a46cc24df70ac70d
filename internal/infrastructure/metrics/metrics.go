package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores del motor de libro mayor, etiquetados por tipo de operación y
// por categoría de fallo (validation, not_found, conflict, internal).
var (
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warehouse_operations_total",
		Help: "Operaciones de bodega registradas con éxito, por tipo.",
	}, []string{"type"})

	OperationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warehouse_operation_failures_total",
		Help: "Operaciones de bodega rechazadas o fallidas, por categoría.",
	}, []string{"reason"})
)
