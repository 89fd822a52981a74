// Package pipeline provides an ordered, named chain of protocol handlers.
//
// A pipeline is the processing backbone of a single channel: every inbound
// message traverses the chain front to back, and every outbound message
// traverses it back to front. Each handler either transforms the message,
// passes it through unchanged when it does not recognise its shape, or
// consumes it by returning nil. This lets framing, transcoding and business
// logic be composed freely without any stage knowing about the others.
//
// A pipeline is a plain data structure with no threading model of its own.
// It is built once, usually through a [Factory] invoked per channel, and is
// only ever touched by the task that owns its channel. Handlers that
// implement [Shareable] hold no per-channel state and a single instance may
// be installed into many pipelines at once; any other handler must be
// created freshly per pipeline.
package pipeline
