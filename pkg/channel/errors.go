package channel

import (
	"github.com/pkg/errors"
)

var (
	ErrPipelineFactoryMustBeSet = errors.New("pipeline factory must be set")
	ErrInvalidOption            = errors.New("invalid option value")
	ErrChannelClosed            = errors.New("channel is closed")
)
