package codec

import (
	"github.com/pkg/errors"
)

var (
	ErrDialectMustBeSet   = errors.New("dialect must be set")
	ErrDelimiterMustBeSet = errors.New("delimiter must be set")
	ErrMaxFrameLength     = errors.New("max frame length must be greater than 0")
	ErrFrameTooLong       = errors.New("frame exceeds max frame length")
)
