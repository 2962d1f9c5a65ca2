// Package docsift turns a technical PDF into structured artifacts: a parsed
// table of contents, section-aligned chunks, a validation report comparing
// the two, document metrics, a ToC graph, requirement triples, and a final
// QA report.
package docsift

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/extract"
	"github.com/docsift/docsift/graph"
	"github.com/docsift/docsift/jsonl"
	"github.com/docsift/docsift/report"
	"github.com/docsift/docsift/toc"
	"github.com/docsift/docsift/validate"
)

// Pipeline runs the full document processing chain and writes every artifact
// into the configured directory.
type Pipeline struct {
	cfg Config
	log *slog.Logger
}

// Result summarizes one pipeline run.
type Result struct {
	PageCount   int               `json:"page_count"`
	TOCRange    extract.PageRange `json:"toc_range"`
	Entries     []toc.Entry       `json:"-"`
	Chunks      []chunk.Chunk     `json:"-"`
	Validation  validate.Report   `json:"validation"`
	Metrics     report.Metrics    `json:"metrics"`
	TripleCount int               `json:"triple_count"`
	ArtifactDir string            `json:"artifact_dir"`
	ElapsedMs   int64             `json:"elapsed_ms"`
}

// NewPipeline validates cfg and returns a ready pipeline.
func NewPipeline(cfg Config, log *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{cfg: cfg, log: log}, nil
}

// Run processes the PDF at path end to end. Artifacts are written as each
// stage completes, so a partial failure still leaves the earlier files on
// disk.
func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	docTitle := p.cfg.DocTitle
	if docTitle == "" {
		docTitle = filepath.Base(path)
	}

	pages, err := extract.Pages(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if len(pages) == 0 {
		return nil, ErrExtractionFailed
	}
	p.log.Info("extracted pages", "path", path, "pages", len(pages))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tocRange, ok := p.tocRange(pages)
	if !ok {
		return nil, ErrNoTOC
	}
	p.log.Info("toc range", "start", tocRange.Start, "end", tocRange.End)

	parser := toc.NewParser()
	parser.MinLevel = p.cfg.MinLevel
	entries, err := parser.Parse(extract.Slice(pages, tocRange), docTitle)
	if err != nil {
		return nil, err
	}
	if _, err := toc.WriteJSONL(p.cfg.ArtifactPath(TOCFile), entries); err != nil {
		return nil, err
	}
	p.log.Info("parsed toc", "entries", len(entries))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := chunk.NewRecognizer()
	rec.SkipRange(tocRange)
	chunks := rec.Recognize(pages)
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}
	if _, err := chunk.WriteJSONL(p.cfg.ArtifactPath(ChunksFile), chunks); err != nil {
		return nil, err
	}
	p.log.Info("recognized chunks", "chunks", len(chunks))

	val := validate.Run(entries, chunks)
	if err := jsonl.WriteJSON(p.cfg.ArtifactPath(ValidationFile), val); err != nil {
		return nil, err
	}

	metrics := report.Compute(entries, chunks)
	if err := jsonl.WriteJSON(p.cfg.ArtifactPath(MetricsFile), metrics); err != nil {
		return nil, err
	}

	tg := graph.BuildTOC(entries)
	if err := tg.WriteJSON(p.cfg.ArtifactPath(TOCGraphFile)); err != nil {
		return nil, err
	}
	p.log.Info("built toc graph", "nodes", len(tg.Nodes), "links", len(tg.Links))

	ext := graph.NewExtractor(p.cfg.Subjects, p.cfg.States, p.cfg.Parameters)
	ext.IncludeMeta = p.cfg.TripleMeta
	triples := ext.Extract(chunks)
	if _, err := graph.WriteJSONL(p.cfg.ArtifactPath(TriplesFile), triples); err != nil {
		return nil, err
	}
	p.log.Info("extracted triples", "triples", len(triples))

	final := report.BuildFinal(val, metrics)
	if err := jsonl.WriteJSON(p.cfg.ArtifactPath(ReportFile), final); err != nil {
		return nil, err
	}

	res := &Result{
		PageCount:   len(pages),
		TOCRange:    tocRange,
		Entries:     entries,
		Chunks:      chunks,
		Validation:  val,
		Metrics:     metrics,
		TripleCount: len(triples),
		ArtifactDir: p.cfg.ArtifactDir,
		ElapsedMs:   time.Since(start).Milliseconds(),
	}
	p.log.Info("pipeline complete",
		"matched", len(val.MatchedSections),
		"missing", len(val.MissingSections),
		"elapsed_ms", res.ElapsedMs,
	)
	return res, nil
}

func (p *Pipeline) tocRange(pages []extract.Page) (extract.PageRange, bool) {
	if p.cfg.TOCStart != 0 {
		return extract.PageRange{Start: p.cfg.TOCStart, End: p.cfg.TOCEnd}, true
	}
	return extract.DetectTOCRange(pages)
}
