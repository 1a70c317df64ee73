package mailbox

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	g := NewGenerator("inbox.example.org")
	g.now = func() time.Time { return time.UnixMilli(1700000000123) }

	addr := g.Generate()

	assert.Regexp(t, regexp.MustCompile(`^newsletter-1700000000123-[0-9a-f]{8}@inbox\.example\.org$`), addr)
	assert.True(t, IsValid(addr))
	assert.Equal(t, "inbox.example.org", DomainOf(addr))
	assert.NotEqual(t, addr, g.Generate(), "random suffix differs within the same millisecond")
}

func TestGenerateTemp(t *testing.T) {
	g := NewGenerator("")

	addr := g.GenerateTemp()

	assert.Regexp(t, regexp.MustCompile(`^temp-\d+-[0-9a-f]{6}@newsletter-automation\.com$`), addr)
	assert.Equal(t, DefaultDomain, g.Domain())
}

func TestIsValid(t *testing.T) {
	tests := map[string]bool{
		"reader@example.com":     true,
		"a.b+tag@sub.example.io": true,
		"no-at-sign.example.com": false,
		"two@@example.com":       false,
		"spaces in@example.com":  false,
		"reader@localhost":       false,
		"":                       false,
	}
	for addr, want := range tests {
		assert.Equal(t, want, IsValid(addr), "address %q", addr)
	}
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "example.com", DomainOf("reader@example.com"))
	assert.Equal(t, "", DomainOf("reader"))
}
