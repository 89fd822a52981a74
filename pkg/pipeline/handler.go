package pipeline

import "context"

// Handler is a single processing stage installed into a pipeline.
//
// Handle receives a message of unconstrained type and returns the message to
// hand to the next stage. A handler that does not recognise the message's
// shape must return it unchanged; that is the deliberate pass-through
// contract, not an error. Returning nil consumes the message and stops the
// traversal, which is how accumulating stages (e.g. frame decoders) signal
// that more input is needed.
type Handler interface {
	Handle(ctx context.Context, msg any) (any, error)
}

// Shareable marks a handler that holds no per-channel mutable state. A single
// shareable instance may be installed into many pipelines concurrently; its
// Handle method must tolerate concurrent invocation.
type Shareable interface {
	Handler

	// Shareable is a marker and carries no behaviour.
	Shareable()
}

// IsShareable reports whether a single instance of h can be installed into
// multiple pipelines.
func IsShareable(h Handler) bool {
	_, ok := h.(Shareable)

	return ok
}
