package measure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-netpipe/pkg/pipeline/measure"
)

func TestAddMetric(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()

	metric := msr.AddMetric("stage")
	assert.Same(t, metric, msr.GetMetric("stage"))
	assert.Nil(t, msr.GetMetric("missing"))
	assert.Len(t, msr.AllMetrics(), 1)
}

func TestMetricAverages(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	metric := msr.AddMetric("stage")

	metric.AddDuration(measure.Inbound, 10*time.Millisecond)
	metric.AddDuration(measure.Inbound, 30*time.Millisecond)
	metric.AddDuration(measure.Outbound, 5*time.Millisecond)

	assert.Equal(t, int64(2), metric.Count(measure.Inbound))
	assert.Equal(t, int64(1), metric.Count(measure.Outbound))
	assert.Equal(t, 20*time.Millisecond, metric.AVGDuration(measure.Inbound))
	assert.Equal(t, 5*time.Millisecond, metric.AVGDuration(measure.Outbound))
	assert.Equal(t, time.Duration(0), metric.AVGDuration("unknown"))
}

func TestMetricAllDirectionsIsCopy(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	metric := msr.AddMetric("stage")
	metric.AddDuration(measure.Inbound, time.Millisecond)

	all := metric.AllDirections()
	require.Contains(t, all, measure.Inbound)
	all[measure.Inbound].Total = 42

	assert.Equal(t, int64(1), metric.Count(measure.Inbound))
}

func TestMetricConcurrentAdd(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	metric := msr.AddMetric("stage")

	done := make(chan struct{})

	for i := 0; i < 4; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				metric.AddDuration(measure.Inbound, time.Microsecond)
			}
			done <- struct{}{}
		}()
	}

	for i := 0; i < 4; i++ {
		<-done
	}

	assert.Equal(t, int64(400), metric.Count(measure.Inbound))
}
