package channel

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-netpipe/pkg/pipeline"
)

// OptionBuffer configures the queue capacity of a local channel (int).
const OptionBuffer = "buffer"

const defaultBufferSize = 16

// LocalFactory materialises in-memory loopback channels. Every channel gets
// its own pipeline from the pipeline factory; written messages run the
// outbound traversal, loop around, run the inbound traversal and are
// delivered on [Channel.Inbound].
type LocalFactory struct{}

func NewLocalFactory() *LocalFactory {
	return &LocalFactory{}
}

func (f *LocalFactory) Create(ctx context.Context, pipelineFactory pipeline.Factory, options map[string]any) (Channel, error) {
	if pipelineFactory == nil {
		return nil, errors.Wrap(ErrPipelineFactoryMustBeSet, "unable to create local channel")
	}

	pipe, err := pipelineFactory.New()
	if err != nil {
		return nil, errors.Wrap(err, "unable to build pipeline")
	}

	size := defaultBufferSize

	if v, ok := options[OptionBuffer]; ok {
		n, ok := v.(int)
		if !ok || n <= 0 {
			return nil, errors.Wrapf(ErrInvalidOption, "%q must be a positive int", OptionBuffer)
		}

		size = n
	}

	grp, grpCtx := errgroup.WithContext(ctx)

	localChan := &LocalChannel{
		id:   uuid.NewString(),
		pipe: pipe,
		out:  make(chan any, size),
		in:   make(chan any, size),
		grp:  grp,
		ctx:  grpCtx,
	}

	grp.Go(localChan.pump)

	return localChan, nil
}

var _ Factory = (*LocalFactory)(nil)

// LocalChannel is an in-memory loopback channel. It is owned by a single
// task: Write and Close must not race with each other.
type LocalChannel struct {
	id        string
	pipe      *pipeline.Pipeline
	out       chan any
	in        chan any
	grp       *errgroup.Group
	ctx       context.Context
	closed    bool
	closeOnce sync.Once
}

func (c *LocalChannel) ID() string {
	return c.id
}

// Pipeline returns the pipeline instance driving this channel.
func (c *LocalChannel) Pipeline() *pipeline.Pipeline {
	return c.pipe
}

func (c *LocalChannel) Write(ctx context.Context, msg any) error {
	if c.closed {
		return errors.Wrap(ErrChannelClosed, "unable to write to channel")
	}

	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "unable to write to channel")
	case <-c.ctx.Done():
		return errors.Wrap(ErrChannelClosed, "unable to write to channel")
	case c.out <- msg:
		return nil
	}
}

func (c *LocalChannel) Inbound() <-chan any {
	return c.in
}

// Close stops accepting writes, lets the pump finish the queued messages and
// reports the pump error, if any. Messages already looped back stay readable
// on Inbound after Close returns. The owner must keep consuming Inbound until
// Close returns when more messages are in flight than the configured buffer
// holds; with a full inbound queue and no reader the pump cannot finish.
func (c *LocalChannel) Close() error {
	c.closeOnce.Do(func() {
		c.closed = true
		close(c.out)
	})

	err := c.grp.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "unable to close channel")
	}

	return nil
}

func (c *LocalChannel) pump() error {
	defer close(c.in)

	for {
		select {
		case <-c.ctx.Done():
			return c.ctx.Err()
		case msg, ok := <-c.out:
			if !ok {
				return nil
			}

			res, err := c.pipe.Outbound(c.ctx, msg)
			if err != nil {
				return err
			}

			if res == nil {
				continue
			}

			res, err = c.pipe.Inbound(c.ctx, res)
			if err != nil {
				return err
			}

			if res == nil {
				continue
			}

			select {
			case <-c.ctx.Done():
				return c.ctx.Err()
			case c.in <- res:
			}
		}
	}
}

var _ Channel = (*LocalChannel)(nil)
