package bootstrap

import (
	"github.com/pkg/errors"
)

var (
	ErrFactoryMustBeSet         = errors.New("channel factory must be set")
	ErrFactoryAlreadySet        = errors.New("channel factory already set")
	ErrNoFactory                = errors.New("channel factory is not set yet")
	ErrFactoryMode              = errors.New("pipeline is not readable while a pipeline factory is set")
	ErrPipelineMustBeSet        = errors.New("pipeline must be set")
	ErrPipelineFactoryMustBeSet = errors.New("pipeline factory must be set")
	ErrPipelineMapMustBeSet     = errors.New("pipeline map must be set")
	ErrUnorderedMap             = errors.New("pipeline map must preserve insertion order")
	ErrKeyMustBeSet             = errors.New("option key must be set")
	ErrOptionsMustBeSet         = errors.New("options must be set")
)
