package linkextract

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"newsletter-agent/internal/application/port/input"
	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"
)

var _ input.LinkExtractor = (*Extractor)(nil)

// Extractor runs the pattern, structural and semantic strategies over the same
// content and merges their results. It holds no per-call state.
type Extractor struct {
	pattern    patternStrategy
	structural structuralStrategy
	semantic   *semanticStrategy
	logger     output.LoggerPort
}

// New builds an extractor. A nil llm disables the semantic strategy.
func New(llm output.LLMPort, logger output.LoggerPort) *Extractor {
	logger = logger.Named("linkextract")
	return &Extractor{
		semantic: &semanticStrategy{llm: llm, logger: logger},
		logger:   logger,
	}
}

// Extract never fails. If the structural strategy errors or anything panics,
// the result degrades to the pattern strategy alone, still deduplicated.
func (e *Extractor) Extract(ctx context.Context, content string) (links []entity.ExtractedLink) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Link extraction panicked, falling back to pattern strategy", "panic", r)
			links = e.fallback(content)
		}
	}()

	var structural, semantic []entity.ExtractedLink

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(func() error {
		var err error
		structural, err = e.structural.extract(content)
		return err
	}))
	g.Go(guard(func() error {
		semantic = e.semantic.extract(gctx, content)
		return nil
	}))

	pattern := e.pattern.extract(content)

	if err := g.Wait(); err != nil {
		e.logger.Warn("Link extraction failed, falling back to pattern strategy", "error", err)
		return dedupe(pattern)
	}

	merged := make([]entity.ExtractedLink, 0, len(structural)+len(pattern)+len(semantic))
	merged = append(merged, structural...)
	merged = append(merged, pattern...)
	merged = append(merged, semantic...)
	links = dedupe(merged)

	e.logger.Debug("Links extracted",
		e.structural.name(), len(structural),
		e.pattern.name(), len(pattern),
		e.semantic.name(), len(semantic),
		"unique", len(links),
	)
	return links
}

func (e *Extractor) fallback(content string) (links []entity.ExtractedLink) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Pattern strategy panicked", "panic", r)
			links = []entity.ExtractedLink{}
		}
	}()
	return dedupe(e.pattern.extract(content))
}

// guard turns a panic inside an errgroup goroutine into an error.
func guard(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = entity.NewError(entity.KindInternal, fmt.Sprintf("strategy panicked: %v", r), nil)
			}
		}()
		return fn()
	}
}
