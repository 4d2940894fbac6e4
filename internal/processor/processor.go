// Package processor holds the HTML transformation stages applied to each
// route's document after rendering, and the ordered pipeline that runs them.
package processor

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/pagegen/internal/errors"
	"git.home.luguber.info/inful/pagegen/internal/logfields"
	"git.home.luguber.info/inful/pagegen/internal/metrics"
)

// Processor transforms a route's HTML document. html is the document as left
// by the previous stage, metadata the route's resolved metadata, generated
// the generator output map, and content the rendered route body available for
// content injection.
type Processor interface {
	// Name identifies the stage in errors and logs.
	Name() string

	Process(html string, metadata, generated map[string]string, content string) (string, error)
}

// Pipeline runs processors strictly in the order they were added. Each stage
// receives the previous stage's full output, so a value substituted by an
// earlier stage is visible to later ones.
type Pipeline struct {
	stages   []Processor
	recorder metrics.Recorder
}

// NewPipeline constructs a pipeline over the given stages, in order.
func NewPipeline(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages, recorder: metrics.NoopRecorder{}}
}

// WithRecorder installs a metrics recorder for stage durations.
func (p *Pipeline) WithRecorder(r metrics.Recorder) *Pipeline {
	if r != nil {
		p.recorder = r
	}
	return p
}

// Add appends a stage to the end of the pipeline.
func (p *Pipeline) Add(stage Processor) {
	if stage != nil {
		p.stages = append(p.stages, stage)
	}
}

// Len returns the number of stages.
func (p *Pipeline) Len() int { return len(p.stages) }

// Stages returns the stage order.
func (p *Pipeline) Stages() []Processor {
	out := make([]Processor, len(p.stages))
	copy(out, p.stages)
	return out
}

// Run threads the document through every stage. The first stage failure
// aborts the run and the returned error carries the failing stage's name;
// output from stages that already ran is discarded with it.
func (p *Pipeline) Run(route, html string, metadata, generated map[string]string, content string) (string, error) {
	doc := html
	for _, stage := range p.stages {
		start := time.Now()
		out, err := stage.Process(doc, metadata, generated, content)
		if err != nil {
			return "", errors.ProcessingError(stage.Name(), route, err)
		}
		p.recorder.ObserveStageDuration(stage.Name(), time.Since(start))
		slog.Debug("processor stage completed",
			logfields.Processor(stage.Name()),
			logfields.Route(route),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0))
		doc = out
	}
	return doc, nil
}
