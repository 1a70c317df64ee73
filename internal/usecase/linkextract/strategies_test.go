package linkextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-agent/internal/domain/entity"
)

func TestPatternStrategy_TextAndContext(t *testing.T) {
	content := "Hi there\nRead more here https://example.com/post.\nUnsubscribe: https://example.com/unsubscribe?id=1\r\nhttps://example.com/alone\n"

	links := patternStrategy{}.extract(content)

	require.Len(t, links, 3)

	assert.Equal(t, "https://example.com/post", links[0].URL)
	assert.Equal(t, "Read more here", links[0].Text)
	assert.Equal(t, "Hi there Read more here https://example.com/post. Unsubscribe: https://example.com/unsubscribe?id=1 https://example.com/alone", links[0].Context)
	assert.Equal(t, entity.LinkExternal, links[0].Type)

	assert.Equal(t, "https://example.com/unsubscribe?id=1", links[1].URL)
	assert.Equal(t, "Unsubscribe:", links[1].Text)
	assert.Equal(t, entity.LinkUnsubscribe, links[1].Type)

	assert.Equal(t, "https://example.com/alone", links[2].URL)
	assert.Equal(t, entity.NoText, links[2].Text)
}

func TestPatternStrategy_TextAfterURL(t *testing.T) {
	links := patternStrategy{}.extract("https://example.com/a click here")

	require.Len(t, links, 1)
	assert.Equal(t, "click here", links[0].Text)
	assert.Equal(t, "https://example.com/a click here", links[0].Context)
}

func TestPatternStrategy_StopsAtForbiddenCharacters(t *testing.T) {
	links := patternStrategy{}.extract(`<a href="https://example.com/x">https://example.com/y</a> (see https://example.com/z)`)

	require.Len(t, links, 3)
	assert.Equal(t, "https://example.com/x", links[0].URL)
	assert.Equal(t, `<a href="`, links[0].Text)
	assert.Equal(t, "https://example.com/y", links[1].URL)
	assert.Equal(t, "https://example.com/z", links[2].URL)
}

func TestPatternStrategy_SkipsInvalidURLs(t *testing.T) {
	links := patternStrategy{}.extract("see http://%zz and more")

	assert.Empty(t, links)
}

func TestPatternStrategy_UnescapesEntities(t *testing.T) {
	links := patternStrategy{}.extract(`<a href="https://ex.com/?a=1&amp;b=2">Go</a>`)

	require.Len(t, links, 1)
	assert.Equal(t, "https://ex.com/?a=1&b=2", links[0].URL)
}

func TestStructuralStrategy_Anchors(t *testing.T) {
	page := `<html><head><title>Weekly</title></head><body>` +
		`<p>Hello <a href="https://example.com/unsubscribe">Unsubscribe</a> <span>now</span></p>` +
		`<script>var u = "https://tracker.example/x"</script>` +
		`<!-- https://hidden.example/comment -->` +
		`<a href="/relative">Rel</a>` +
		`<a href="https://facebook.com/acme"></a>` +
		`</body></html>`

	links, err := structuralStrategy{}.extract(page)
	require.NoError(t, err)
	require.Len(t, links, 2)

	assert.Equal(t, entity.ExtractedLink{
		URL:     "https://example.com/unsubscribe",
		Text:    "Unsubscribe",
		Context: "Unsubscribe now",
		Type:    entity.LinkUnsubscribe,
	}, links[0])

	assert.Equal(t, "https://facebook.com/acme", links[1].URL)
	assert.Equal(t, entity.NoText, links[1].Text)
	assert.Equal(t, "Hello Unsubscribe now Rel", links[1].Context)
	assert.Equal(t, entity.LinkSocial, links[1].Type)
}

func TestStructuralStrategy_PlainTextYieldsNothing(t *testing.T) {
	links, err := structuralStrategy{}.extract("just text with https://example.com/a")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestParseLinkArray(t *testing.T) {
	t.Run("fenced", func(t *testing.T) {
		links, err := parseLinkArray("Sure:\n```json\n[{\"url\":\"https://example.com/a\",\"text\":\"A\"}]\n```")
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://example.com/a", links[0].URL)
	})

	t.Run("no array", func(t *testing.T) {
		_, err := parseLinkArray(`{"url":"https://example.com/a"}`)
		assert.ErrorIs(t, err, entity.ErrParse)
	})

	t.Run("broken json", func(t *testing.T) {
		_, err := parseLinkArray(`[{"url": ]`)
		assert.ErrorIs(t, err, entity.ErrParse)
	})
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "éé", truncateRunes("ééé", 2))
}
