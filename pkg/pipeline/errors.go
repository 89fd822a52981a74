package pipeline

import (
	"github.com/pkg/errors"
)

var (
	ErrNameMustBeSet    = errors.New("name must be set")
	ErrHandlerMustBeSet = errors.New("handler must be set")
	ErrDuplicateName    = errors.New("name already registered")
	ErrEmptyPipeline    = errors.New("pipeline is empty")
	ErrHandlerNotFound  = errors.New("no handler registered under name")
	ErrMapMustBeSet     = errors.New("ordered map must be set")
	ErrDrawerMustBeSet  = errors.New("drawer must be set")
)
