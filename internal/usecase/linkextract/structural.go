package linkextract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"newsletter-agent/internal/domain/entity"
)

type structuralStrategy struct{}

func (structuralStrategy) name() string { return "structural" }

// extract treats content as HTML. Plain text parses into a document with no
// anchors and yields nothing.
func (structuralStrategy) extract(content string) ([]entity.ExtractedLink, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, entity.NewError(entity.KindParse, "failed to parse html", err)
	}
	cleanNode(root)

	var links []entity.ExtractedLink
	goquery.NewDocumentFromNode(root).Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if !isValidURL(href) {
			return
		}
		text := strings.TrimSpace(a.Text())
		if text == "" {
			text = entity.NoText
		}
		links = append(links, entity.ExtractedLink{
			URL:     href,
			Text:    text,
			Context: anchorContext(a),
			Type:    Categorize(href),
		})
	})
	return links, nil
}

// anchorContext joins the text of the anchor's parent's element children.
func anchorContext(a *goquery.Selection) string {
	parts := a.Parent().Children().Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	ctx := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if ctx == "" {
		return entity.NoContext
	}
	return ctx
}
