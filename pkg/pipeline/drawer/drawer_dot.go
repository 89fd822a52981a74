// Package drawer renders a handler chain as a DOT graph file.
package drawer

import (
	"os"
	"sort"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-netpipe/pkg/pipeline/measure"
)

// DOTDrawer draws the handler chain of a pipeline as a DOT file, one vertex
// per stage, heat-coloured by average stage latency when metrics are
// available.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	stages      map[string]struct{}
	dotFileName string
}

// NewDOTDrawer creates a new DOT drawer writing to dotFileName.
func NewDOTDrawer(dotFileName string) *DOTDrawer {
	return &DOTDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed()),
		stages:      make(map[string]struct{}),
	}
}

// AddStage adds a stage to the chain graph.
func (d *DOTDrawer) AddStage(name string) error {
	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	d.stages[name] = struct{}{}

	return nil
}

// AddLink adds a link between two consecutive stages.
func (d *DOTDrawer) AddLink(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

const maxRGB = 240

// AddMeasure annotates every stage vertex with its average handler latency
// and colours it on a blue (fastest) to red (slowest) scale.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	stageAvg := make(map[string]time.Duration)
	sortedAvg := []time.Duration{}

	for name := range d.stages {
		metric := msr.GetMetric(name)
		if metric == nil {
			continue
		}

		avg := metric.AVGDuration(measure.Inbound) + metric.AVGDuration(measure.Outbound)
		if avg == 0 {
			continue
		}

		stageAvg[name] = avg
		sortedAvg = append(sortedAvg, avg)
	}

	if len(sortedAvg) == 0 {
		return nil
	}

	sort.Slice(sortedAvg, func(i, j int) bool {
		return sortedAvg[i] < sortedAvg[j]
	})

	minValue := sortedAvg[0]
	maxValue := sortedAvg[len(sortedAvg)-1]

	for name, avg := range stageAvg {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := -maxRGB*fraction + maxRGB

		heatColor, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		err = d.updateStage(name, avg, heatColor.ToHEX().String())
		if err != nil {
			return err
		}
	}

	return nil
}

func (d *DOTDrawer) updateStage(name string, avg time.Duration, hexColor string) error {
	_, properties, err := d.graph.VertexWithProperties(name)
	if err != nil {
		return errors.Wrap(err, "unable to get vertex properties")
	}

	properties.Attributes["xlabel"] = avg.String()
	properties.Attributes["color"] = hexColor

	return nil
}

// Draw creates a DOT file with the handler chain graph.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = draw.DOT(d.graph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to render dot file %s", d.dotFileName)
	}

	return nil
}
