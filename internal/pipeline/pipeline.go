// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package pipeline runs the extraction flow for a source:
// provide text, split it into blocks, parse every block and emit the
// resulting specs to a sink.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/iter"

	"github.com/avashell/cmdspec/internal/parser"
	"github.com/avashell/cmdspec/pkg/types"
)

// TextProvider supplies the text of one source.
type TextProvider interface {
	Text() (string, error)
}

// Sink receives parsed specs in block order.
type Sink interface {
	Emit(group string, spec types.FunctionSpec) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(group string, spec types.FunctionSpec) error

// Emit calls f(group, spec).
func (f SinkFunc) Emit(group string, spec types.FunctionSpec) error {
	return f(group, spec)
}

// Block extraction modes.
const (
	// ExtractSplit divides the text on every "/**" marker.
	ExtractSplit = "split"

	// ExtractAST keeps only documented function-typed members found by
	// the TypeScript syntax tree.
	ExtractAST = "ast"
)

// Source is one unit of input.
type Source struct {
	// Name identifies the source in reports and logs, usually a path
	Name string

	// Group is the endpoint group every spec of the source is emitted under
	Group string

	// Text provides the content
	Text TextProvider

	// Extract selects how blocks are found, ExtractSplit when empty
	Extract string
}

// Block is one raw block with its position in the source.
type Block struct {
	// Index is the 0-based position among the source's blocks
	Index int

	// Line is the 1-based source line, or 0 when unknown
	Line int

	Text string
}

// Options configures a Pipeline.
type Options struct {
	// Workers bounds concurrent block parsing; 0 uses GOMAXPROCS
	Workers int

	// Logger receives per-block failures; slog.Default() when nil
	Logger *slog.Logger
}

// Pipeline extracts specs from sources.
type Pipeline struct {
	workers int
	logger  *slog.Logger
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers < 0 {
		workers = 0
	}
	return &Pipeline{
		workers: workers,
		logger:  logger,
	}
}

// Blocks reads the source and returns its raw blocks.
func (p *Pipeline) Blocks(ctx context.Context, src Source) ([]Block, error) {
	text, err := src.Text.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src.Name, err)
	}

	switch src.Extract {
	case "", ExtractSplit:
		var blocks []Block
		for raw := range parser.Blocks(text) {
			blocks = append(blocks, Block{Index: len(blocks), Text: raw})
		}
		return blocks, nil

	case ExtractAST:
		tsParser := parser.NewTypeScriptParser()
		defer tsParser.Close()

		members, err := tsParser.ExtractBlocks(ctx, []byte(text))
		if err != nil {
			return nil, fmt.Errorf("failed to extract blocks from %s: %w", src.Name, err)
		}
		blocks := make([]Block, len(members))
		for i, m := range members {
			blocks[i] = Block{Index: i, Line: m.Line, Text: m.Text}
		}
		return blocks, nil

	default:
		return nil, fmt.Errorf("unsupported extract mode: %s", src.Extract)
	}
}

type parsed struct {
	spec types.FunctionSpec
	err  error
}

// Parse parses every block of src concurrently and returns the specs in
// block order. A failing block is recorded in the report and never stops
// its siblings. The error is non-nil only when the source cannot be read or
// ctx is done.
func (p *Pipeline) Parse(ctx context.Context, src Source) ([]types.FunctionSpec, *Report, error) {
	blocks, err := p.Blocks(ctx, src)
	if err != nil {
		return nil, nil, err
	}

	mapper := iter.Mapper[Block, parsed]{MaxGoroutines: p.workers}
	results := mapper.Map(blocks, func(b *Block) parsed {
		if err := ctx.Err(); err != nil {
			return parsed{err: err}
		}
		spec, err := parser.Parse(b.Text)
		return parsed{spec: spec, err: err}
	})
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	report := &Report{Total: len(blocks)}
	specs := make([]types.FunctionSpec, 0, len(blocks))
	for i, r := range results {
		if r.err != nil {
			blockErr := &BlockError{
				Source: src.Name,
				Index:  blocks[i].Index,
				Line:   blocks[i].Line,
				Err:    r.err,
			}
			report.Failures = append(report.Failures, blockErr)
			p.logger.Warn("skipping block",
				"source", src.Name,
				"block", blockErr.Index,
				"line", blockErr.Line,
				"error", r.err,
			)
			continue
		}
		specs = append(specs, r.spec)
	}
	report.Parsed = len(specs)

	p.logger.Debug("parsed source",
		"source", src.Name,
		"group", src.Group,
		"parsed", report.Parsed,
		"total", report.Total,
	)
	return specs, report, nil
}

// Run parses src and emits every spec to sink in block order. An emit
// failure stops the run.
func (p *Pipeline) Run(ctx context.Context, src Source, sink Sink) (*Report, error) {
	specs, report, err := p.Parse(ctx, src)
	if err != nil {
		return nil, err
	}

	for _, spec := range specs {
		if err := sink.Emit(src.Group, spec); err != nil {
			return report, fmt.Errorf("failed to emit %s/%s: %w", src.Group, spec.Name, err)
		}
	}
	return report, nil
}

// RunAll runs every source in order and merges their reports.
func (p *Pipeline) RunAll(ctx context.Context, sources []Source, sink Sink) (*Report, error) {
	total := &Report{}
	for _, src := range sources {
		report, err := p.Run(ctx, src, sink)
		if report != nil {
			total.Merge(report)
		}
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
