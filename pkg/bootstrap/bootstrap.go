// Package bootstrap assembles a network endpoint from three independently
// configured parts: a channel factory, a pipeline configuration source and a
// set of transport options.
//
// The pipeline can be configured along two mutually exclusive paths. In
// concrete-pipeline mode (the initial state) the bootstrap holds a live
// pipeline that can be read back directly or as an ordered map. Setting a
// pipeline factory switches to factory mode: the caller has opted into
// building pipelines dynamically per channel and direct pipeline
// introspection is no longer meaningful, so Pipeline and PipelineAsMap fail
// until a concrete pipeline is set again.
//
// A bootstrap is configured once, from a single goroutine, before it is used
// to spawn channels. The channel factory is write-once so that the setup
// phase stays easy to reason about without locking.
package bootstrap

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-netpipe/pkg/channel"
	"github.com/askiada/go-netpipe/pkg/pipeline"
)

// Bootstrap aggregates the configuration needed to materialise channels.
type Bootstrap struct {
	factory     channel.Factory
	pipe        *pipeline.Pipeline
	pipeFactory pipeline.Factory
	factoryMode bool
	options     map[string]any
}

// New creates a bootstrap in concrete-pipeline mode with a fresh empty
// pipeline, no channel factory and no options.
func New() *Bootstrap {
	pipe := pipeline.New()

	return &Bootstrap{
		pipe:        pipe,
		pipeFactory: pipeline.FixedFactory(pipe),
		options:     make(map[string]any),
	}
}

// NewWithFactory creates a bootstrap with its channel factory already set.
// The constructor argument counts as the one permitted set: any later
// SetFactory call fails, even with the identical instance.
func NewWithFactory(factory channel.Factory) (*Bootstrap, error) {
	if factory == nil {
		return nil, errors.Wrap(ErrFactoryMustBeSet, "unable to create bootstrap")
	}

	boot := New()
	boot.factory = factory

	return boot, nil
}

// Factory returns the channel factory.
func (b *Bootstrap) Factory() (channel.Factory, error) {
	if b.factory == nil {
		return nil, errors.Wrap(ErrNoFactory, "unable to get factory")
	}

	return b.factory, nil
}

// SetFactory sets the channel factory. It can succeed at most once for the
// lifetime of the bootstrap.
func (b *Bootstrap) SetFactory(factory channel.Factory) error {
	if factory == nil {
		return errors.Wrap(ErrFactoryMustBeSet, "unable to set factory")
	}

	if b.factory != nil {
		return errors.Wrap(ErrFactoryAlreadySet, "unable to set factory")
	}

	b.factory = factory

	return nil
}

// Pipeline returns the live pipeline. It fails in factory mode.
func (b *Bootstrap) Pipeline() (*pipeline.Pipeline, error) {
	if b.factoryMode {
		return nil, errors.Wrap(ErrFactoryMode, "unable to get pipeline")
	}

	return b.pipe, nil
}

// PipelineAsMap returns an ordered-map snapshot of the live pipeline. It
// fails in factory mode.
func (b *Bootstrap) PipelineAsMap() (*pipeline.OrderedMap, error) {
	if b.factoryMode {
		return nil, errors.Wrap(ErrFactoryMode, "unable to get pipeline map")
	}

	return b.pipe.ToOrderedMap(), nil
}

// PipelineFactory returns the current pipeline factory. In concrete-pipeline
// mode the factory hands back the live pipeline itself, not a copy.
func (b *Bootstrap) PipelineFactory() pipeline.Factory {
	return b.pipeFactory
}

// SetPipeline installs a concrete pipeline and forces concrete-pipeline
// mode. A new wrapping factory is installed, so the factory observed before
// and after the call are distinct instances.
func (b *Bootstrap) SetPipeline(pipe *pipeline.Pipeline) error {
	if pipe == nil {
		return errors.Wrap(ErrPipelineMustBeSet, "unable to set pipeline")
	}

	b.pipe = pipe
	b.pipeFactory = pipeline.FixedFactory(pipe)
	b.factoryMode = false

	return nil
}

// SetPipelineAsMap builds a pipeline from an order-preserving mapping and
// installs it like SetPipeline. Only [pipeline.OrderedMap] is accepted: a
// plain Go map has unspecified iteration order and is rejected rather than
// silently producing an arbitrary handler order.
func (b *Bootstrap) SetPipelineAsMap(mapping any) error {
	switch m := mapping.(type) {
	case nil:
		return errors.Wrap(ErrPipelineMapMustBeSet, "unable to set pipeline map")
	case *pipeline.OrderedMap:
		pipe, err := pipeline.FromOrderedMap(m)
		if err != nil {
			return errors.Wrap(err, "unable to set pipeline map")
		}

		return b.SetPipeline(pipe)
	case map[string]pipeline.Handler:
		return errors.Wrap(ErrUnorderedMap, "plain map iteration order is unspecified")
	default:
		return errors.Wrapf(ErrUnorderedMap, "unsupported mapping type %T", mapping)
	}
}

// SetPipelineFactory installs a pipeline factory and forces factory mode.
func (b *Bootstrap) SetPipelineFactory(factory pipeline.Factory) error {
	if factory == nil {
		return errors.Wrap(ErrPipelineFactoryMustBeSet, "unable to set pipeline factory")
	}

	b.pipeFactory = factory
	b.factoryMode = true

	return nil
}

// Option returns the value configured under key, or nil if absent.
func (b *Bootstrap) Option(key string) (any, error) {
	if key == "" {
		return nil, errors.Wrap(ErrKeyMustBeSet, "unable to get option")
	}

	return b.options[key], nil
}

// SetOption stores value under key. A nil value removes the key instead of
// storing an empty entry.
func (b *Bootstrap) SetOption(key string, value any) error {
	if key == "" {
		return errors.Wrap(ErrKeyMustBeSet, "unable to set option")
	}

	if value == nil {
		delete(b.options, key)

		return nil
	}

	b.options[key] = value

	return nil
}

// Options returns a copy of the option mapping. Mutating the returned map
// never affects the bootstrap.
func (b *Bootstrap) Options() map[string]any {
	options := make(map[string]any, len(b.options))
	for key, value := range b.options {
		options[key] = value
	}

	return options
}

// SetOptions replaces the whole option mapping with a defensive copy of the
// input. Nil values are dropped rather than stored.
func (b *Bootstrap) SetOptions(options map[string]any) error {
	if options == nil {
		return errors.Wrap(ErrOptionsMustBeSet, "unable to set options")
	}

	replaced := make(map[string]any, len(options))

	for key, value := range options {
		if key == "" {
			return errors.Wrap(ErrKeyMustBeSet, "unable to set options")
		}

		if value == nil {
			continue
		}

		replaced[key] = value
	}

	b.options = replaced

	return nil
}

// NewChannel asks the channel factory to materialise a channel from the
// resolved pipeline factory and a copy of the options.
func (b *Bootstrap) NewChannel(ctx context.Context) (channel.Channel, error) {
	factory, err := b.Factory()
	if err != nil {
		return nil, errors.Wrap(err, "unable to create channel")
	}

	chn, err := factory.Create(ctx, b.pipeFactory, b.Options())
	if err != nil {
		return nil, errors.Wrap(err, "unable to create channel")
	}

	return chn, nil
}
