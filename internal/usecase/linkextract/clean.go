package linkextract

import (
	"golang.org/x/net/html"
)

// noiseTags: узлы, текст которых не должен попадать в текст ссылок и контекст
var noiseTags = []string{"script", "style", "noscript", "template", "head"}

// cleanNode рекурсивно удаляет комментарии и мусорные теги
func cleanNode(n *html.Node) {
	if n.Type == html.CommentNode {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}
	if n.Type == html.ElementNode && isOneOf(n.Data, noiseTags...) {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		cleanNode(c)
		c = next
	}
}

// isOneOf проверяет, что s совпадает с одним из candidates
func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
