// Package measure collects per-stage traversal metrics for a pipeline.
package measure

import (
	"sync"
)

// DefaultMeasure keeps one metric per stage name.
type DefaultMeasure struct {
	mu     sync.Mutex
	stages map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		stages: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt := &DefaultMetric{
		allDirections: make(map[string]*DirectionInfo),
	}
	m.stages[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stages[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make(map[string]Metric, len(m.stages))
	for name, mt := range m.stages {
		all[name] = mt
	}

	return all
}

var _ Measure = (*DefaultMeasure)(nil)
