package linkextract

import (
	"strings"

	"newsletter-agent/internal/domain/entity"
)

var unsubscribeMarkers = []string{"unsubscribe", "opt-out"}

var socialDomains = []string{
	"facebook.com",
	"twitter.com",
	"linkedin.com",
	"instagram.com",
	"youtube.com",
}

// Categorize classifies a URL. Unsubscribe markers win over social domains;
// "internal" is never produced since there is no sender domain to compare to.
func Categorize(raw string) entity.LinkType {
	lower := strings.ToLower(raw)
	for _, m := range unsubscribeMarkers {
		if strings.Contains(lower, m) {
			return entity.LinkUnsubscribe
		}
	}
	for _, d := range socialDomains {
		if strings.Contains(lower, d) {
			return entity.LinkSocial
		}
	}
	return entity.LinkExternal
}
