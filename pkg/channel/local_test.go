package channel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-netpipe/pkg/bootstrap"
	"github.com/askiada/go-netpipe/pkg/channel"
	"github.com/askiada/go-netpipe/pkg/pipeline"
)

type suffixHandler struct {
	suffix string
}

func (h *suffixHandler) Handle(_ context.Context, msg any) (any, error) {
	s, ok := msg.(string)
	if !ok {
		return msg, nil
	}

	return s + h.suffix, nil
}

type failingHandler struct{}

func (h *failingHandler) Handle(_ context.Context, _ any) (any, error) {
	return nil, assert.AnError
}

func newSuffixFactory(calls *int, pipes *[]*pipeline.Pipeline) pipeline.Factory {
	return pipeline.FactoryFunc(func() (*pipeline.Pipeline, error) {
		*calls++

		pipe := pipeline.New()

		err := pipe.AddLast("suffix", &suffixHandler{suffix: "!"})
		if err != nil {
			return nil, err
		}

		*pipes = append(*pipes, pipe)

		return pipe, nil
	})
}

func receiveOne(t *testing.T, chn channel.Channel) any {
	t.Helper()

	select {
	case msg, ok := <-chn.Inbound():
		require.True(t, ok)

		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for inbound message")

		return nil
	}
}

func TestLocalFactoryRequiresPipelineFactory(t *testing.T) {
	t.Parallel()

	_, err := channel.NewLocalFactory().Create(context.Background(), nil, nil)
	assert.ErrorIs(t, err, channel.ErrPipelineFactoryMustBeSet)
}

func TestLocalFactoryInvalidBufferOption(t *testing.T) {
	t.Parallel()

	factory := pipeline.FixedFactory(pipeline.New())

	_, err := channel.NewLocalFactory().Create(context.Background(), factory, map[string]any{
		channel.OptionBuffer: "not an int",
	})
	assert.ErrorIs(t, err, channel.ErrInvalidOption)

	_, err = channel.NewLocalFactory().Create(context.Background(), factory, map[string]any{
		channel.OptionBuffer: 0,
	})
	assert.ErrorIs(t, err, channel.ErrInvalidOption)
}

func TestLocalChannelLoopback(t *testing.T) {
	t.Parallel()

	var (
		calls int
		pipes []*pipeline.Pipeline
	)

	boot, err := bootstrap.NewWithFactory(channel.NewLocalFactory())
	require.NoError(t, err)
	require.NoError(t, boot.SetPipelineFactory(newSuffixFactory(&calls, &pipes)))
	require.NoError(t, boot.SetOption(channel.OptionBuffer, 4))

	chn, err := boot.NewChannel(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, chn.ID())

	require.NoError(t, chn.Write(context.Background(), "ping"))

	// One suffix per traversal direction: outbound then inbound.
	assert.Equal(t, "ping!!", receiveOne(t, chn))
	require.NoError(t, chn.Close())
}

func TestLocalChannelOnePipelinePerChannel(t *testing.T) {
	t.Parallel()

	var (
		calls int
		pipes []*pipeline.Pipeline
	)

	boot, err := bootstrap.NewWithFactory(channel.NewLocalFactory())
	require.NoError(t, err)
	require.NoError(t, boot.SetPipelineFactory(newSuffixFactory(&calls, &pipes)))

	first, err := boot.NewChannel(context.Background())
	require.NoError(t, err)
	second, err := boot.NewChannel(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	require.Len(t, pipes, 2)
	assert.NotSame(t, pipes[0], pipes[1])
	assert.NotEqual(t, first.ID(), second.ID())

	localFirst, ok := first.(*channel.LocalChannel)
	require.True(t, ok)
	localSecond, ok := second.(*channel.LocalChannel)
	require.True(t, ok)
	assert.NotSame(t, localFirst.Pipeline(), localSecond.Pipeline())

	require.NoError(t, first.Close())
	require.NoError(t, second.Close())
}

func TestLocalChannelCloseDrains(t *testing.T) {
	t.Parallel()

	var (
		calls int
		pipes []*pipeline.Pipeline
	)

	chn, err := channel.NewLocalFactory().Create(context.Background(), newSuffixFactory(&calls, &pipes), nil)
	require.NoError(t, err)

	require.NoError(t, chn.Write(context.Background(), "last"))
	require.NoError(t, chn.Close())

	assert.Equal(t, "last!!", receiveOne(t, chn))

	_, ok := <-chn.Inbound()
	assert.False(t, ok)

	// Writing after close must fail, not block or panic.
	err = chn.Write(context.Background(), "late")
	assert.ErrorIs(t, err, channel.ErrChannelClosed)

	// Close is idempotent.
	assert.NoError(t, chn.Close())
}

func TestLocalChannelCloseAfterConsumingBeyondBuffer(t *testing.T) {
	t.Parallel()

	var (
		calls int
		pipes []*pipeline.Pipeline
	)

	chn, err := channel.NewLocalFactory().Create(context.Background(), newSuffixFactory(&calls, &pipes), map[string]any{
		channel.OptionBuffer: 1,
	})
	require.NoError(t, err)

	// More messages in flight than the queues can hold: the owner consumes
	// Inbound along the way so the pump keeps making progress.
	require.NoError(t, chn.Write(context.Background(), "a"))
	require.NoError(t, chn.Write(context.Background(), "b"))
	assert.Equal(t, "a!!", receiveOne(t, chn))
	require.NoError(t, chn.Write(context.Background(), "c"))
	assert.Equal(t, "b!!", receiveOne(t, chn))

	require.NoError(t, chn.Close())

	assert.Equal(t, "c!!", receiveOne(t, chn))

	_, ok := <-chn.Inbound()
	assert.False(t, ok)
}

func TestLocalChannelHandlerErrorSurfacesOnClose(t *testing.T) {
	t.Parallel()

	factory := pipeline.FactoryFunc(func() (*pipeline.Pipeline, error) {
		pipe := pipeline.New()

		err := pipe.AddLast("boom", &failingHandler{})
		if err != nil {
			return nil, err
		}

		return pipe, nil
	})

	chn, err := channel.NewLocalFactory().Create(context.Background(), factory, nil)
	require.NoError(t, err)

	require.NoError(t, chn.Write(context.Background(), "msg"))

	err = chn.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLocalChannelParentCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	chn, err := channel.NewLocalFactory().Create(ctx, pipeline.FixedFactory(pipeline.New()), nil)
	require.NoError(t, err)

	cancel()

	// The pump observes the cancellation and stops; Close reports a clean
	// shutdown.
	select {
	case <-chn.Inbound():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for channel shutdown")
	}

	assert.NoError(t, chn.Close())
}
