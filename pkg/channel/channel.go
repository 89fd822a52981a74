// Package channel defines the boundary between the configuration layer and
// the transport: a channel is a live endpoint driven by one pipeline, and a
// factory materialises channels from a pipeline factory plus options. The
// package also ships an in-memory loopback transport useful for tests and
// for exercising pipelines without sockets.
package channel

import (
	"context"

	"github.com/askiada/go-netpipe/pkg/pipeline"
)

// Channel is a live endpoint driven by one pipeline instance.
type Channel interface {
	// ID returns the channel's unique identifier.
	ID() string
	// Write submits a message for outbound processing. Write must only be
	// called by the task owning the channel.
	Write(ctx context.Context, msg any) error
	// Inbound returns the stream of messages that completed the inbound
	// traversal. It is closed when the channel shuts down.
	Inbound() <-chan any
	// Close shuts the channel down and waits for in-flight traffic to drain.
	Close() error
}

// Factory materialises channels. Implementations are given the resolved
// pipeline factory and a copy of the configured options; they do not
// interpret the bootstrap beyond that.
type Factory interface {
	Create(ctx context.Context, pipelineFactory pipeline.Factory, options map[string]any) (Channel, error)
}

// FactoryFunc adapts a function to the [Factory] interface.
type FactoryFunc func(ctx context.Context, pipelineFactory pipeline.Factory, options map[string]any) (Channel, error)

func (f FactoryFunc) Create(ctx context.Context, pipelineFactory pipeline.Factory, options map[string]any) (Channel, error) {
	return f(ctx, pipelineFactory, options)
}
