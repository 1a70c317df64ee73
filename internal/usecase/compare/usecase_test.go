package compare

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-agent/internal/application/service"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/infrastructure/logger"
	"newsletter-agent/internal/infrastructure/mailbox"
)

type stubAutomation struct {
	name   string
	result entity.AutomationResult

	mu     sync.Mutex
	emails []string
}

func (s *stubAutomation) Name() string { return s.name }

func (s *stubAutomation) SignUp(_ context.Context, _, email string) entity.AutomationResult {
	s.mu.Lock()
	s.emails = append(s.emails, email)
	s.mu.Unlock()
	return s.result
}

type fixedAddress string

func (f fixedAddress) Generate() string { return string(f) }

func (f fixedAddress) Domain() string { return mailbox.DomainOf(string(f)) }

func TestRun_AllFrameworksShareOneAddress(t *testing.T) {
	headless := &stubAutomation{name: "headless", result: entity.Succeeded(map[string]any{"confirmationDetected": true})}
	skyvern := &stubAutomation{name: "skyvern", result: entity.Failure(entity.NewError(entity.KindConfiguration, "Skyvern API key not configured", nil), nil)}

	registry := service.NewAutomationRegistry()
	registry.Register(entity.FrameworkSkyvern, skyvern)
	registry.Register(entity.FrameworkHeadless, headless)

	uc := New(registry, fixedAddress("newsletter-1-abc@example.com"), logger.NewNop())
	report, err := uc.Run(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, "newsletter-1-abc@example.com", report.Email)
	assert.Equal(t, []string{report.Email}, headless.emails)
	assert.Equal(t, []string{report.Email}, skyvern.emails)

	require.Len(t, report.Results, 2)
	assert.Equal(t, entity.FrameworkHeadless, report.Results[0].Framework)
	assert.True(t, report.Results[0].Success)
	assert.Equal(t, entity.FrameworkSkyvern, report.Results[1].Framework)
	assert.Equal(t, entity.KindConfiguration, report.Results[1].ErrorKind)

	assert.Equal(t, 2, report.Statistics.TotalTests)
	assert.Equal(t, 1, report.Statistics.SuccessfulTests)
	assert.InDelta(t, 50.0, report.Statistics.SuccessRate, 0.001)
	assert.Equal(t, []string{
		"Only Headless Browser succeeded. Use this framework for this site.",
		"Headless Browser succeeded where Skyvern failed. This site may have simple forms.",
	}, report.Recommendations)
}

func TestRun_NoFrameworks(t *testing.T) {
	uc := New(service.NewAutomationRegistry(), fixedAddress("x@example.com"), logger.NewNop())

	_, err := uc.Run(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, entity.ErrConfiguration)
}

func TestStatistics(t *testing.T) {
	stats := statistics([]FrameworkResult{
		{Framework: entity.FrameworkHeadless, Success: true, Duration: 1200},
		{Framework: entity.FrameworkBrowserbase, Success: true, Duration: 900},
		{Framework: entity.FrameworkSkyvern, Success: false, Duration: 1001},
	})

	assert.Equal(t, 3, stats.TotalTests)
	assert.Equal(t, 2, stats.SuccessfulTests)
	assert.InDelta(t, 66.666, stats.SuccessRate, 0.01)
	assert.Equal(t, int64(1034), stats.AverageDuration)
	assert.Equal(t, entity.FrameworkBrowserbase, stats.FastestFramework)
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name    string
		results []FrameworkResult
		want    []string
	}{
		{
			name: "none succeeded",
			results: []FrameworkResult{
				{Framework: entity.FrameworkHeadless},
				{Framework: entity.FrameworkSkyvern},
			},
			want: []string{"No frameworks succeeded. Check URL and form availability."},
		},
		{
			name: "fastest of several",
			results: []FrameworkResult{
				{Framework: entity.FrameworkHeadless, Success: true, Duration: 4000},
				{Framework: entity.FrameworkBrowserbase, Success: true, Duration: 2500},
				{Framework: entity.FrameworkSkyvern, Success: true, Duration: 60000},
			},
			want: []string{"Multiple frameworks succeeded. Browserbase was fastest (2500ms)."},
		},
		{
			name: "remote only",
			results: []FrameworkResult{
				{Framework: entity.FrameworkHeadless},
				{Framework: entity.FrameworkBrowserbase, Success: true, Duration: 100},
				{Framework: entity.FrameworkSkyvern, Success: true, Duration: 200},
			},
			want: []string{
				"Multiple frameworks succeeded. Browserbase was fastest (100ms).",
				"Skyvern succeeded where Headless Browser failed. This site may have complex or dynamic forms.",
				"Browserbase succeeded where Headless Browser failed. This site may require cloud-based automation.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recommendations(tt.results))
		})
	}
}
