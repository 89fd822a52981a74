package measure

import "time"

// Traversal directions recorded against a metric.
const (
	Inbound  = "inbound"
	Outbound = "outbound"
)

type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

type Metric interface {
	AddDuration(direction string, elapsed time.Duration)
	Count(direction string) int64
	AVGDuration(direction string) time.Duration
	AllDirections() map[string]*DirectionInfo
}
