package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/blueparser/constants"
	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/core/classify"
	"github.com/joseph-ayodele/blueparser/internal/core/extract"
	"github.com/joseph-ayodele/blueparser/internal/core/parsers"
	"github.com/joseph-ayodele/blueparser/internal/core/validate"
	"github.com/joseph-ayodele/blueparser/internal/entity"
	"github.com/joseph-ayodele/blueparser/internal/metrics"
)

// DocumentSource loads an OCR document by path.
type DocumentSource interface {
	Load(ctx context.Context, path string) (entity.Document, error)
}

// Processor runs classification, the universal passes and the specialized
// parser over one document, then validates the merged result.
type Processor struct {
	logger        *slog.Logger
	source        DocumentSource
	classifier    *classify.Classifier
	extractors    []extract.Extractor
	parsers       parsers.Registry
	rowTolerance  float64
	includeRawOCR bool
}

type Option func(*Processor)

// WithSource sets the loader used by ProcessFile.
func WithSource(s DocumentSource) Option {
	return func(p *Processor) { p.source = s }
}

func WithClassifier(c *classify.Classifier) Option {
	return func(p *Processor) {
		if c != nil {
			p.classifier = c
		}
	}
}

// WithExtractors replaces the universal passes.
func WithExtractors(ex ...extract.Extractor) Option {
	return func(p *Processor) { p.extractors = ex }
}

func WithParsers(r parsers.Registry) Option {
	return func(p *Processor) {
		if r != nil {
			p.parsers = r
		}
	}
}

func WithRowTolerance(tol float64) Option {
	return func(p *Processor) {
		if tol > 0 {
			p.rowTolerance = tol
		}
	}
}

// WithRawOCR echoes the input document under raw_ocr.
func WithRawOCR(on bool) Option {
	return func(p *Processor) { p.includeRawOCR = on }
}

func NewProcessor(logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{
		logger:       logger,
		classifier:   classify.New(nil),
		parsers:      parsers.DefaultRegistry(),
		rowTolerance: extract.DefaultRowTolerance,
	}
	for _, o := range opts {
		o(p)
	}
	if p.extractors == nil {
		p.extractors = extract.Universal(p.rowTolerance)
	}
	return p
}

// ProcessFile loads path through the configured source and processes it.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*entity.ParseResult, error) {
	if p.source == nil {
		return nil, common.NewAppError("NO_SOURCE", "processor has no document source", common.ErrInvalidInput)
	}
	doc, err := p.source.Load(ctx, path)
	if err != nil {
		p.logger.Error("processor.load.failed", "path", path, "err", err)
		return nil, err
	}
	res, err := p.Process(ctx, doc)
	if err != nil {
		p.logger.Error("processor.process.failed", "path", path, "err", err)
		return nil, err
	}
	return res, nil
}

type passResult struct {
	value any
	err   error
}

type specializedResult struct {
	class entity.Classification
	data  entity.SpecializedData
	err   error
}

// Process returns a best-effort result. A failed pass leaves its field nil and is
// listed in ExtractorFailures; only empty input is an error.
func (p *Processor) Process(ctx context.Context, doc entity.Document) (*entity.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	page, err := extract.NewPage(doc.Items)
	if err != nil {
		metrics.DocumentsTotal.WithLabelValues(string(constants.UnknownType), "error").Inc()
		return nil, fmt.Errorf("process: %w", err)
	}

	passes := make([]passResult, len(p.extractors))
	var spec specializedResult

	// Every goroutine recovers its own failure, so the group never short-circuits.
	var g errgroup.Group
	for i, ex := range p.extractors {
		g.Go(func() error {
			v, err := runPass(ex.Name(), func() (any, error) { return ex.Extract(page) })
			passes[i] = passResult{value: v, err: err}
			return nil
		})
	}
	g.Go(func() error {
		spec = p.specialize(page)
		return nil
	})
	_ = g.Wait()

	result := &entity.ParseResult{Classification: spec.class}
	for i, ex := range p.extractors {
		if err := p.merge(&result.UniversalData, ex.Name(), passes[i]); err != nil {
			result.ExtractorFailures = append(result.ExtractorFailures, err.Error())
		}
	}
	if spec.err != nil {
		p.recordFailure(spec.err)
		result.ExtractorFailures = append(result.ExtractorFailures, spec.err.Error())
	} else {
		result.SpecializedData = spec.data
	}
	if p.includeRawOCR {
		raw := doc
		result.RawOCR = &raw
	}

	v := validate.Validate(result)
	result.Validation = &v

	status := "valid"
	if !v.IsValid {
		status = "invalid"
	}
	drawingType := string(result.Classification.DrawingType)
	metrics.DocumentsTotal.WithLabelValues(drawingType, status).Inc()
	metrics.DocumentDuration.WithLabelValues(drawingType).Observe(time.Since(start).Seconds())

	p.logger.Debug("processor.document.done",
		"drawing_type", drawingType,
		"discipline", result.Classification.Discipline,
		"confidence", result.Classification.Confidence,
		"items", len(doc.Items),
		"failures", len(result.ExtractorFailures),
		"is_valid", v.IsValid,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// specialize classifies the page and runs the matching parser, if any.
func (p *Processor) specialize(page extract.Page) specializedResult {
	out := specializedResult{class: p.classifier.Classify(page.Text, page.Items)}
	parser, ok := p.parsers.Lookup(out.class.DrawingType)
	if !ok {
		return out
	}
	v, err := runPass(string(out.class.DrawingType), func() (any, error) { return parser.Parse(page.Items) })
	if err != nil {
		out.err = err
		return out
	}
	if data, ok := v.(entity.SpecializedData); ok {
		out.data = data
	}
	return out
}

// merge stores a pass result under its universal_data key. A failed or mistyped
// result leaves the field nil and is returned as an error.
func (p *Processor) merge(u *entity.UniversalData, name string, r passResult) error {
	if r.err != nil {
		p.recordFailure(r.err)
		return r.err
	}
	ok := true
	switch name {
	case extract.NameTitleBlock:
		u.TitleBlock, ok = r.value.(*entity.TitleBlock)
	case extract.NameNotes:
		u.Notes, ok = r.value.([]entity.Note)
	case extract.NameSpecification:
		u.Specification, ok = r.value.([]entity.Specification)
	case extract.NameReference:
		u.Reference, ok = r.value.([]entity.Reference)
	case extract.NameTable:
		u.Table, ok = r.value.([]entity.Table)
	default:
		ok = false
	}
	if !ok {
		err := common.NewExtractorError(name, fmt.Errorf("unexpected result %T", r.value))
		p.recordFailure(err)
		return err
	}
	return nil
}

func (p *Processor) recordFailure(err error) {
	var ee *common.ExtractorError
	name := "unknown"
	if errors.As(err, &ee) {
		name = ee.Extractor
	}
	metrics.ExtractorFailuresTotal.WithLabelValues(name).Inc()
	p.logger.Warn("processor.extractor.failed", "extractor", name, "err", err)
}

// runPass calls fn, converting an error or panic into an ExtractorError.
func runPass(name string, fn func() (any, error)) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, common.NewExtractorError(name, fmt.Errorf("panic: %v", r))
		}
	}()
	v, err = fn()
	if err != nil {
		return nil, common.NewExtractorError(name, err)
	}
	return v, nil
}
