package compare

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"newsletter-agent/internal/application/port/input"
	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"
)

type FrameworkResult struct {
	Framework entity.Framework `json:"framework"`
	Success   bool             `json:"success"`
	Duration  int64            `json:"duration"`
	Error     string           `json:"error,omitempty"`
	ErrorKind entity.ErrorKind `json:"errorKind,omitempty"`
	Details   map[string]any   `json:"details,omitempty"`
}

type Statistics struct {
	TotalTests       int              `json:"totalTests"`
	SuccessfulTests  int              `json:"successfulTests"`
	SuccessRate      float64          `json:"successRate"`
	AverageDuration  int64            `json:"averageDuration"`
	FastestFramework entity.Framework `json:"fastestFramework"`
}

type Report struct {
	URL             string            `json:"url"`
	Email           string            `json:"email"`
	Results         []FrameworkResult `json:"testResults"`
	Statistics      Statistics        `json:"statistics"`
	Recommendations []string          `json:"recommendations"`
}

// UseCase runs every registered backend against the same page and address
// and reports how they fared side by side.
type UseCase struct {
	registry input.AutomationRegistry
	mailbox  output.AddressGenerator
	logger   output.LoggerPort
	now      func() time.Time
}

func New(registry input.AutomationRegistry, mailbox output.AddressGenerator, logger output.LoggerPort) *UseCase {
	return &UseCase{
		registry: registry,
		mailbox:  mailbox,
		logger:   logger.Named("compare"),
		now:      time.Now,
	}
}

func (u *UseCase) Run(ctx context.Context, url string) (*Report, error) {
	frameworks := u.registry.Frameworks()
	if len(frameworks) == 0 {
		return nil, entity.NewError(entity.KindConfiguration, "no automation frameworks registered", nil)
	}

	email := u.mailbox.Generate()
	results := make([]FrameworkResult, len(frameworks))

	var g errgroup.Group
	for i, f := range frameworks {
		automation, _ := u.registry.Get(f)
		g.Go(func() error {
			u.logger.Info("Testing framework", "framework", f, "url", url)
			start := u.now()
			res := automation.SignUp(ctx, url, email)
			results[i] = FrameworkResult{
				Framework: f,
				Success:   res.Success,
				Duration:  u.now().Sub(start).Milliseconds(),
				Error:     res.Error,
				ErrorKind: res.ErrorKind,
				Details:   res.Details,
			}
			u.logger.Info("Framework finished", "framework", f, "success", res.Success, "durationMs", results[i].Duration)
			return nil
		})
	}
	_ = g.Wait()

	return &Report{
		URL:             url,
		Email:           email,
		Results:         results,
		Statistics:      statistics(results),
		Recommendations: recommendations(results),
	}, nil
}

func statistics(results []FrameworkResult) Statistics {
	stats := Statistics{TotalTests: len(results)}
	if len(results) == 0 {
		return stats
	}

	var total int64
	fastest := results[0]
	for _, r := range results {
		total += r.Duration
		if r.Success {
			stats.SuccessfulTests++
		}
		if r.Duration < fastest.Duration {
			fastest = r
		}
	}
	stats.SuccessRate = float64(stats.SuccessfulTests) / float64(stats.TotalTests) * 100
	stats.AverageDuration = int64(math.Round(float64(total) / float64(len(results))))
	stats.FastestFramework = fastest.Framework
	return stats
}

func recommendations(results []FrameworkResult) []string {
	var recs []string

	var succeeded []FrameworkResult
	for _, r := range results {
		if r.Success {
			succeeded = append(succeeded, r)
		}
	}

	switch len(succeeded) {
	case 0:
		recs = append(recs, "No frameworks succeeded. Check URL and form availability.")
	case 1:
		recs = append(recs, fmt.Sprintf("Only %s succeeded. Use this framework for this site.", succeeded[0].Framework.DisplayName()))
	default:
		fastest := succeeded[0]
		for _, r := range succeeded[1:] {
			if r.Duration < fastest.Duration {
				fastest = r
			}
		}
		recs = append(recs, fmt.Sprintf("Multiple frameworks succeeded. %s was fastest (%dms).", fastest.Framework.DisplayName(), fastest.Duration))
	}

	ok := make(map[entity.Framework]bool, len(results))
	for _, r := range results {
		ok[r.Framework] = r.Success
	}
	headless, skyvern, browserbase := ok[entity.FrameworkHeadless], ok[entity.FrameworkSkyvern], ok[entity.FrameworkBrowserbase]

	if headless && !skyvern {
		recs = append(recs, "Headless Browser succeeded where Skyvern failed. This site may have simple forms.")
	}
	if skyvern && !headless {
		recs = append(recs, "Skyvern succeeded where Headless Browser failed. This site may have complex or dynamic forms.")
	}
	if browserbase && !headless {
		recs = append(recs, "Browserbase succeeded where Headless Browser failed. This site may require cloud-based automation.")
	}
	return recs
}
