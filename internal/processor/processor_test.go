package processor

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgerrors "git.home.luguber.info/inful/pagegen/internal/errors"
	"git.home.luguber.info/inful/pagegen/internal/metrics"
)

// captureRecorder counts stage duration observations.
type captureRecorder struct {
	metrics.NoopRecorder
	mu     sync.Mutex
	stages map[string]int
}

func (c *captureRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stages == nil {
		c.stages = map[string]int{}
	}
	c.stages[stage]++
}

type appendStage struct {
	name string
	err  error
}

func (s *appendStage) Name() string { return s.name }

func (s *appendStage) Process(html string, _, _ map[string]string, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return html + "|" + s.name, nil
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	p := NewPipeline(&appendStage{name: "one"}, &appendStage{name: "two"})
	p.Add(&appendStage{name: "three"})

	out, err := p.Run("/docs", "doc", nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "doc|one|two|three", out)
}

func TestPipelineStageFailureAbortsWithStageName(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(
		&appendStage{name: "first"},
		&appendStage{name: "broken", err: boom},
		&appendStage{name: "never"},
	)

	out, err := p.Run("/docs", "doc", nil, nil, "")
	require.Error(t, err)
	assert.Empty(t, out, "partial output is discarded on failure")
	assert.ErrorIs(t, err, boom)
	assert.True(t, pgerrors.IsCategory(err, pgerrors.CategoryProcess))
	assert.Contains(t, err.Error(), "processor stage failed")

	var pe *pgerrors.PagegenError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "broken", pe.Context["processor"])
}

func TestPipelineObservesStageDurations(t *testing.T) {
	rec := &captureRecorder{}
	p := NewPipeline(&appendStage{name: "one"}, &appendStage{name: "two"}).WithRecorder(rec)

	_, err := p.Run("/docs", "doc", nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"one": 1, "two": 1}, rec.stages)
}

func TestPipelineDoesNotObserveFailedStage(t *testing.T) {
	rec := &captureRecorder{}
	p := NewPipeline(&appendStage{name: "broken", err: errors.New("boom")}).WithRecorder(rec)

	_, err := p.Run("/docs", "doc", nil, nil, "")
	require.Error(t, err)
	assert.Empty(t, rec.stages)
}

func TestPipelineEmptyIsIdentity(t *testing.T) {
	p := NewPipeline()
	out, err := p.Run("/", "unchanged", nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "unchanged", out)
}

func TestPipelineEndToEndTemplateThenAttributes(t *testing.T) {
	p := NewPipeline(
		&TemplateVariables{},
		&Attributes{},
	)

	template := `<html><head>{{title}}</head><body><main data-ssg="content">loading</main></body></html>`
	generated := map[string]string{"title": "<title>Home</title>"}

	out, err := p.Run("/", template, map[string]string{}, generated, "<p>welcome</p>")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "<title>Home</title>"))
	assert.True(t, strings.Contains(out, "<main><p>welcome</p></main>"))
	assert.NotContains(t, out, "data-ssg")
}
