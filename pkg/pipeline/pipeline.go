package pipeline

import (
	"context"
	"reflect"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-netpipe/pkg/pipeline/measure"
)

// Pipeline is an ordered chain of named handlers driving one channel.
type Pipeline struct {
	contexts []*HandlerContext
	byName   map[string]*HandlerContext
	measure  measure.Measure
	drawer   Drawer
}

// New creates a new empty pipeline.
func New(opts ...Option) *Pipeline {
	pipe := &Pipeline{
		byName: make(map[string]*HandlerContext),
	}

	for _, opt := range opts {
		opt(pipe)
	}

	return pipe
}

// FromOrderedMap creates a pipeline whose handler order equals the iteration
// order of the given ordered map. A plain Go map cannot be used here because
// its iteration order is unspecified; see [OrderedMap].
func FromOrderedMap(mapping *OrderedMap, opts ...Option) (*Pipeline, error) {
	if mapping == nil {
		return nil, errors.Wrap(ErrMapMustBeSet, "unable to create pipeline")
	}

	pipe := New(opts...)

	for _, name := range mapping.Names() {
		err := pipe.AddLast(name, mapping.Get(name))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add handler %q", name)
		}
	}

	return pipe, nil
}

// AddFirst inserts a handler at the front of the pipeline.
func (p *Pipeline) AddFirst(name string, handler Handler) error {
	err := p.checkInsert(name, handler)
	if err != nil {
		return err
	}

	handlerCtx := &HandlerContext{pipe: p, name: name, handler: handler}
	p.contexts = append([]*HandlerContext{handlerCtx}, p.contexts...)
	p.byName[name] = handlerCtx
	p.registerMetric(name)

	return nil
}

// AddLast appends a handler at the end of the pipeline.
func (p *Pipeline) AddLast(name string, handler Handler) error {
	err := p.checkInsert(name, handler)
	if err != nil {
		return err
	}

	handlerCtx := &HandlerContext{pipe: p, name: name, handler: handler}
	p.contexts = append(p.contexts, handlerCtx)
	p.byName[name] = handlerCtx
	p.registerMetric(name)

	return nil
}

// checkInsert fails fast so that a rejected insertion never leaves a partial
// mutation behind.
func (p *Pipeline) checkInsert(name string, handler Handler) error {
	if name == "" {
		return errors.Wrap(ErrNameMustBeSet, "unable to add handler")
	}

	if handler == nil {
		return errors.Wrapf(ErrHandlerMustBeSet, "unable to add handler %q", name)
	}

	if _, ok := p.byName[name]; ok {
		return errors.Wrapf(ErrDuplicateName, "unable to add handler %q", name)
	}

	return nil
}

// Remove removes and returns the handler registered under name.
func (p *Pipeline) Remove(name string) (Handler, error) {
	handlerCtx, ok := p.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrHandlerNotFound, "unable to remove handler %q", name)
	}

	p.removeContext(handlerCtx)

	return handlerCtx.handler, nil
}

// RemoveFirst removes and returns the frontmost handler.
func (p *Pipeline) RemoveFirst() (Handler, error) {
	if len(p.contexts) == 0 {
		return nil, errors.Wrap(ErrEmptyPipeline, "unable to remove first handler")
	}

	handlerCtx := p.contexts[0]
	p.removeContext(handlerCtx)

	return handlerCtx.handler, nil
}

func (p *Pipeline) removeContext(handlerCtx *HandlerContext) {
	for i, curr := range p.contexts {
		if curr == handlerCtx {
			p.contexts = append(p.contexts[:i], p.contexts[i+1:]...)

			break
		}
	}

	delete(p.byName, handlerCtx.name)
}

// Get returns the handler registered under name, or nil if absent.
func (p *Pipeline) Get(name string) Handler {
	handlerCtx, ok := p.byName[name]
	if !ok {
		return nil
	}

	return handlerCtx.handler
}

// First returns the frontmost handler, or nil if the pipeline is empty.
func (p *Pipeline) First() Handler {
	if len(p.contexts) == 0 {
		return nil
	}

	return p.contexts[0].handler
}

// Context returns the context of the given handler instance within this
// pipeline, or nil if this exact instance is not installed here. The lookup
// matches by identity: a behaviourally equal but distinct instance living in
// another pipeline is never matched.
func (p *Pipeline) Context(handler Handler) *HandlerContext {
	if handler == nil {
		return nil
	}

	for _, handlerCtx := range p.contexts {
		if sameInstance(handlerCtx.handler, handler) {
			return handlerCtx
		}
	}

	return nil
}

// sameInstance compares two handlers by identity. Handlers are expected to be
// pointer-shaped; value types have no stable identity and never match.
func sameInstance(a, b Handler) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.Map, reflect.Slice:
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}

// Len returns the number of handlers in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.contexts)
}

// Names returns the handler names in pipeline order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.contexts))
	for _, handlerCtx := range p.contexts {
		names = append(names, handlerCtx.name)
	}

	return names
}

// ToOrderedMap returns a snapshot of the pipeline as an ordered map whose
// iteration order equals the pipeline order. Mutating the pipeline afterwards
// does not affect a previously returned map.
func (p *Pipeline) ToOrderedMap() *OrderedMap {
	mapping := NewOrderedMap()
	for _, handlerCtx := range p.contexts {
		// Names are unique within the pipeline, Set cannot fail here.
		_ = mapping.Set(handlerCtx.name, handlerCtx.handler)
	}

	return mapping
}

// Inbound dispatches a message through the chain front to back and returns
// the final message. A nil result means some stage consumed the message.
func (p *Pipeline) Inbound(ctx context.Context, msg any) (any, error) {
	for _, handlerCtx := range p.contexts {
		out, err := p.invoke(ctx, handlerCtx, measure.Inbound, msg)
		if err != nil {
			return nil, err
		}

		if out == nil {
			return nil, nil
		}

		msg = out
	}

	return msg, nil
}

// Outbound dispatches a message through the chain back to front and returns
// the final message. A nil result means some stage consumed the message.
func (p *Pipeline) Outbound(ctx context.Context, msg any) (any, error) {
	for i := len(p.contexts) - 1; i >= 0; i-- {
		out, err := p.invoke(ctx, p.contexts[i], measure.Outbound, msg)
		if err != nil {
			return nil, err
		}

		if out == nil {
			return nil, nil
		}

		msg = out
	}

	return msg, nil
}

func (p *Pipeline) invoke(ctx context.Context, handlerCtx *HandlerContext, direction string, msg any) (any, error) {
	start := time.Now()

	out, err := handlerCtx.handler.Handle(ctx, msg)

	if p.measure != nil {
		metric := p.measure.GetMetric(handlerCtx.name)
		if metric != nil {
			metric.AddDuration(direction, time.Since(start))
		}
	}

	if err != nil {
		return nil, errors.Wrapf(err, "handler %q", handlerCtx.name)
	}

	return out, nil
}

func (p *Pipeline) registerMetric(name string) {
	if p.measure == nil {
		return
	}

	if p.measure.GetMetric(name) == nil {
		p.measure.AddMetric(name)
	}
}

// Measure returns the metrics collector attached to the pipeline, or nil.
func (p *Pipeline) Measure() measure.Measure {
	return p.measure
}
