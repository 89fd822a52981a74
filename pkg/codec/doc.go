// Package codec provides ready-made pipeline handlers that transcode
// messages between representations: base64 text, CBOR, compressed frames
// and delimiter-separated frames.
//
// Every handler follows the pass-through contract: a message whose shape the
// handler does not recognise is returned unchanged, so stages of different
// kinds can share one pipeline without knowing about each other. Handlers
// holding no per-channel state implement pipeline.Shareable and a single
// instance may serve many channels; the delimiter frame decoder accumulates
// partial frames and must be created freshly per pipeline.
package codec
