package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/infrastructure/env"
	"newsletter-agent/internal/infrastructure/logger"
	"newsletter-agent/internal/infrastructure/mailbox"
)

func TestBuild_RegistersAllFrameworks(t *testing.T) {
	c, err := build(env.Config{Browser: env.BrowserConfig{Driver: "rod"}}, logger.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, entity.Frameworks(), c.Automation.Frameworks())
	for _, f := range entity.Frameworks() {
		a, ok := c.Automation.Get(f)
		require.True(t, ok)
		assert.Equal(t, f.String(), a.Name())
	}
	assert.Nil(t, c.LLM, "no key, no semantic strategy")
	assert.Equal(t, mailbox.DefaultDomain, c.Mailbox.Domain())
}

func TestBuild_WithLLMAndPlaywright(t *testing.T) {
	cfg := env.Config{Browser: env.BrowserConfig{Driver: "playwright"}, EmailDomain: "inbox.example.org"}
	cfg.OpenAI.APIKey = "sk-test"

	c, err := build(cfg, logger.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, c.LLM)
	assert.Equal(t, "inbox.example.org", c.Mailbox.Domain())
}

func TestBuild_UnknownDriver(t *testing.T) {
	_, err := build(env.Config{Browser: env.BrowserConfig{Driver: "selenium"}}, logger.NewNop())
	assert.ErrorIs(t, err, entity.ErrConfiguration)
}
