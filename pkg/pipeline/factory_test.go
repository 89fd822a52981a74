package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-netpipe/pkg/pipeline"
)

func TestFixedFactoryReturnsSamePipeline(t *testing.T) {
	t.Parallel()

	pipe := pipeline.New()
	factory := pipeline.FixedFactory(pipe)

	first, err := factory.New()
	require.NoError(t, err)
	second, err := factory.New()
	require.NoError(t, err)

	assert.Same(t, pipe, first)
	assert.Same(t, pipe, second)
}

func TestFixedFactoryInstancesAreDistinct(t *testing.T) {
	t.Parallel()

	pipe := pipeline.New()

	assert.NotSame(t, pipeline.FixedFactory(pipe), pipeline.FixedFactory(pipe))
}

func TestFactoryFunc(t *testing.T) {
	t.Parallel()

	calls := 0
	factory := pipeline.FactoryFunc(func() (*pipeline.Pipeline, error) {
		calls++

		return pipeline.New(), nil
	})

	first, err := factory.New()
	require.NoError(t, err)
	second, err := factory.New()
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 2, calls)
}
