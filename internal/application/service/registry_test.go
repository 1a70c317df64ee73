package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-agent/internal/domain/entity"
)

type stubAutomation struct {
	name string
}

func (s stubAutomation) Name() string { return s.name }

func (s stubAutomation) SignUp(context.Context, string, string) entity.AutomationResult {
	return entity.Succeeded(nil)
}

func TestAutomationRegistry(t *testing.T) {
	r := NewAutomationRegistry()
	r.Register(entity.FrameworkSkyvern, stubAutomation{name: "skyvern"})
	r.Register(entity.FrameworkHeadless, stubAutomation{name: "headless"})

	got, ok := r.Get(entity.FrameworkHeadless)
	require.True(t, ok)
	assert.Equal(t, "headless", got.Name())

	_, ok = r.Get(entity.FrameworkBrowserbase)
	assert.False(t, ok)

	assert.Equal(t, []entity.Framework{entity.FrameworkHeadless, entity.FrameworkSkyvern}, r.Frameworks())
}
