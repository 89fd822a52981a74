package measure

import (
	"sync"
	"time"
)

// DirectionInfo accumulates the invocations of one stage in one traversal
// direction.
type DirectionInfo struct {
	Elapsed time.Duration
	Total   int64
}

// DefaultMetric tracks the handler invocations of a single stage. Shareable
// handlers may be invoked from many channels at once, hence the mutex.
type DefaultMetric struct {
	mu            sync.Mutex
	allDirections map[string]*DirectionInfo
}

func (mt *DefaultMetric) AddDuration(direction string, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.allDirections[direction] == nil {
		mt.allDirections[direction] = &DirectionInfo{}
	}

	info := mt.allDirections[direction]
	info.Elapsed += elapsed
	info.Total++
}

func (mt *DefaultMetric) Count(direction string) int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	info := mt.allDirections[direction]
	if info == nil {
		return 0
	}

	return info.Total
}

func (mt *DefaultMetric) AVGDuration(direction string) time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	info := mt.allDirections[direction]
	if info == nil || info.Total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(info.Elapsed) / float64(info.Total)))
}

func (mt *DefaultMetric) AllDirections() map[string]*DirectionInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	all := make(map[string]*DirectionInfo, len(mt.allDirections))
	for direction, info := range mt.allDirections {
		all[direction] = &DirectionInfo{Elapsed: info.Elapsed, Total: info.Total}
	}

	return all
}

var _ Metric = (*DefaultMetric)(nil)

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
