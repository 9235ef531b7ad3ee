package pipeline

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"
	"golang.org/x/net/html"

	"github.com/arcanaland/manaforge/internal/card"
	"github.com/arcanaland/manaforge/internal/keyword"
	"github.com/arcanaland/manaforge/internal/logging"
	"github.com/arcanaland/manaforge/internal/mana"
	"github.com/arcanaland/manaforge/internal/markup"
)

// Stage adds or overwrites fields on a record. It works on the pipeline's
// private copy and never sees the caller's record.
type Stage struct {
	Name  string
	Apply func(r card.Record) error
}

// Options configures a pipeline. Zero values fall back to the built-in
// catalog, palette and grammar, and to the "pipeline" component logger.
type Options struct {
	Catalog *keyword.Catalog
	Painter *mana.Painter
	Grammar *markup.Grammar
	Workers int
	Logger  *zerolog.Logger
}

// Pipeline enriches raw card records into HTML-ready records
type Pipeline struct {
	Painter  *mana.Painter
	Grammar  markup.Grammar
	Renderer *markup.Renderer
	Workers  int

	stages []Stage
	log    zerolog.Logger
}

// New builds the standard stage sequence: namespace, mana, typeline,
// keywords, render
func New(opts Options) *Pipeline {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = keyword.Default()
	}
	painter := opts.Painter
	if painter == nil {
		painter = mana.DefaultPainter()
	}
	grammar := markup.DefaultGrammar()
	if opts.Grammar != nil {
		grammar = *opts.Grammar
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := logging.GetLogger("pipeline")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	p := &Pipeline{
		Painter:  painter,
		Grammar:  grammar,
		Renderer: markup.NewRenderer(markup.NewExpander(catalog, grammar), painter),
		Workers:  workers,
		log:      logger,
	}
	p.stages = []Stage{
		{Name: "namespace", Apply: namespaceStage},
		{Name: "mana", Apply: p.manaStage},
		{Name: "typeline", Apply: typelineStage},
		{Name: "keywords", Apply: p.keywordStage},
		{Name: "render", Apply: p.renderStage},
	}
	return p
}

// Default returns a pipeline with the built-in configuration
func Default() *Pipeline {
	return New(Options{})
}

// Stages returns the stage names in execution order
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run enriches one raw record. The input is not modified; on failure the
// error is a *CardError naming the stage.
func (p *Pipeline) Run(raw card.Record) (card.Record, error) {
	r, err := p.run(raw, len(p.stages))
	if err != nil {
		return nil, err
	}

	if unknown := r.Strings(card.MarkupUnknown); len(unknown) > 0 {
		p.log.Warn().Str("card", raw.String(card.RawName)).Strs("keywords", unknown).Msg("Unknown keywords")
	}
	return r, nil
}

// RunUntil runs the stages up to and including the named one, for callers
// that need the card fields without the rendered text
func (p *Pipeline) RunUntil(raw card.Record, stage string) (card.Record, error) {
	for i, s := range p.stages {
		if s.Name == stage {
			return p.run(raw, i+1)
		}
	}
	return nil, fmt.Errorf("unknown stage %q", stage)
}

func (p *Pipeline) run(raw card.Record, n int) (card.Record, error) {
	r := raw.Clone()
	name := raw.String(card.RawName)
	logger := p.log.With().Str("card", name).Logger()

	for _, stage := range p.stages[:n] {
		if err := stage.Apply(r); err != nil {
			cardErr := &CardError{Card: name, Stage: stage.Name, Code: CodeOf(err), Err: err}
			logger.Debug().Err(err).Str("stage", stage.Name).Str("code", string(cardErr.Code)).Msg("Stage failed")
			return nil, cardErr
		}
		logger.Trace().Str("stage", stage.Name).Msg("Stage completed")
	}
	return r, nil
}

// RunMultiple enriches records independently with up to Workers records in
// flight. Output order matches input order. A card that fails is returned
// as an error record (see ErrorRecord) and does not affect its siblings.
func (p *Pipeline) RunMultiple(raws []card.Record) []card.Record {
	done := logging.LogOperationStart(p.log, "run_multiple")
	defer done()

	mapper := iter.Mapper[card.Record, card.Record]{MaxGoroutines: p.Workers}
	return mapper.Map(raws, func(raw *card.Record) card.Record {
		r, err := p.Run(*raw)
		if err != nil {
			p.log.Error().Err(err).Msg("Card failed")
			return ErrorRecord(*raw, err)
		}
		return r
	})
}

// ErrorRecord marks a failed card: the namespaced raw fields plus the error
// message, its code, and an error span as the rendered text
func ErrorRecord(raw card.Record, err error) card.Record {
	r := raw.Prefixed(card.Prefix)
	r[card.Error] = err.Error()
	r[card.ErrorCode] = string(CodeOf(err))
	r[card.Text] = card.HTML(fmt.Sprintf(`<span class="card-error">%s</span>`, html.EscapeString(err.Error())))
	return r
}
