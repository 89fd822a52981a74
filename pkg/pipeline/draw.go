package pipeline

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-netpipe/pkg/pipeline/measure"
)

// Drawer renders a handler chain. See the drawer subpackage for a DOT/SVG
// implementation.
type Drawer interface {
	// AddStage adds a stage to the chain graph.
	AddStage(name string) error
	// AddLink adds a link between two consecutive stages.
	AddLink(parentName, childName string) error
	// AddMeasure annotates the graph with collected stage metrics.
	AddMeasure(msr measure.Measure) error
	// Draw writes the rendered graph out.
	Draw() error
}

// Draw renders the current handler chain with the drawer attached through
// [WithDrawer], front stage first.
func (p *Pipeline) Draw() error {
	if p.drawer == nil {
		return errors.Wrap(ErrDrawerMustBeSet, "unable to draw pipeline")
	}

	for i, handlerCtx := range p.contexts {
		err := p.drawer.AddStage(handlerCtx.name)
		if err != nil {
			return errors.Wrapf(err, "unable to add stage %q", handlerCtx.name)
		}

		if i > 0 {
			err = p.drawer.AddLink(p.contexts[i-1].name, handlerCtx.name)
			if err != nil {
				return errors.Wrapf(err, "unable to link stage %q", handlerCtx.name)
			}
		}
	}

	if p.measure != nil {
		err := p.drawer.AddMeasure(p.measure)
		if err != nil {
			return errors.Wrap(err, "unable to add measure to drawer")
		}
	}

	err := p.drawer.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}
