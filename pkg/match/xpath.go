package match

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/beevik/etree"
)

type xpathMatcher struct {
	raw  string
	path etree.Path
	want string
}

// NewXPath matches XML bodies by evaluating an XPath-style element path.
// With want == "" the matcher only requires the path to select an element;
// otherwise the selected element's text, with surrounding whitespace
// trimmed, must equal want.
func NewXPath(path, want string) (Matcher, error) {
	compiled, err := etree.CompilePath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid XML path %q: %w", path, err)
	}
	return xpathMatcher{raw: path, path: compiled, want: want}, nil
}

func (m xpathMatcher) Matches(_ *http.Request, body []byte) bool {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return false
	}
	el := doc.FindElementPath(m.path)
	if el == nil {
		return false
	}
	if m.want == "" {
		return true
	}
	return strings.TrimSpace(el.Text()) == m.want
}

func (m xpathMatcher) String() string {
	if m.want == "" {
		return fmt.Sprintf("xml path %q exists", m.raw)
	}
	return fmt.Sprintf("xml path %q = %q", m.raw, m.want)
}
