package selector

import (
	"fmt"
	"strings"
)

// Selector locates an element by CSS and, optionally, by its visible text.
type Selector struct {
	CSS  string
	Text string
}

func CSS(css string) Selector {
	return Selector{CSS: css}
}

func WithText(css, text string) Selector {
	return Selector{CSS: css, Text: text}
}

// String renders the selector in the Playwright dialect, which is also what
// the remote automation APIs accept.
func (s Selector) String() string {
	if s.Text == "" {
		return s.CSS
	}
	return fmt.Sprintf("%s:has-text(%q)", s.CSS, s.Text)
}

// Chain is an ordered list of candidates; earlier entries win.
type Chain []Selector

func (c Chain) Strings() []string {
	out := make([]string, len(c))
	for i, s := range c {
		out[i] = s.String()
	}
	return out
}

func (c Chain) With(fallback ...Selector) Chain {
	out := make(Chain, 0, len(c)+len(fallback))
	out = append(out, c...)
	return append(out, fallback...)
}

func (c Chain) String() string {
	return strings.Join(c.Strings(), ", ")
}
