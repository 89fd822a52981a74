package pipeline

import (
	"github.com/askiada/go-netpipe/pkg/pipeline/measure"
)

type Option func(p *Pipeline)

// WithMeasure attaches a metrics collector. Every handler invocation records
// its duration under the handler's name and traversal direction.
func WithMeasure(msr measure.Measure) Option {
	return func(p *Pipeline) {
		p.measure = msr
	}
}

// WithDrawer attaches a drawer used by [Pipeline.Draw] to render the handler
// chain.
func WithDrawer(drw Drawer) Option {
	return func(p *Pipeline) {
		p.drawer = drw
	}
}
