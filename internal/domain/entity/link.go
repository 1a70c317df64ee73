package entity

type LinkType string

const (
	LinkInternal    LinkType = "internal"
	LinkExternal    LinkType = "external"
	LinkSocial      LinkType = "social"
	LinkUnsubscribe LinkType = "unsubscribe"
)

const (
	NoText    = "No text"
	NoContext = "No context"
)

type ExtractedLink struct {
	URL     string   `json:"url"`
	Text    string   `json:"text"`
	Context string   `json:"context"`
	Type    LinkType `json:"type"`
}
