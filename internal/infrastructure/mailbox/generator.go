package mailbox

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsletter-agent/internal/application/port/output"
)

const DefaultDomain = "newsletter-automation.com"

var _ output.AddressGenerator = (*Generator)(nil)

var addressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Generator hands out disposable addresses on a single domain. Uniqueness
// comes from the millisecond clock plus a random UUID prefix.
type Generator struct {
	domain string
	now    func() time.Time
}

func NewGenerator(domain string) *Generator {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		domain = DefaultDomain
	}
	return &Generator{domain: domain, now: time.Now}
}

// Generate returns newsletter-<unix ms>-<8 hex>@<domain>.
func (g *Generator) Generate() string {
	return g.address("newsletter", 8)
}

// GenerateTemp returns temp-<unix ms>-<6 hex>@<domain>, used for one-off
// diagnostic runs.
func (g *Generator) GenerateTemp() string {
	return g.address("temp", 6)
}

func (g *Generator) address(prefix string, idLen int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:idLen]
	return fmt.Sprintf("%s-%d-%s@%s", prefix, g.now().UnixMilli(), id, g.domain)
}

func (g *Generator) Domain() string {
	return g.domain
}

func IsValid(address string) bool {
	return addressPattern.MatchString(address)
}

// DomainOf returns the part after the first '@', or "" when there is none.
func DomainOf(address string) string {
	_, domain, ok := strings.Cut(address, "@")
	if !ok {
		return ""
	}
	if i := strings.IndexByte(domain, '@'); i >= 0 {
		domain = domain[:i]
	}
	return domain
}
