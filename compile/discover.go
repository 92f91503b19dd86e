package compile

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/delaneyj/mvvm/dom"
	"golang.org/x/net/html"
)

var (
	ErrUnknownDirective = errors.New("unknown directive")
	ErrUnknownMethod    = errors.New("unknown method")
	ErrEmptyExpression  = errors.New("empty expression")
)

// interpolation matches the first {{ expr }} of a text node, which may span
// lines.
var interpolation = regexp.MustCompile(`(?s)\{\{(.*?)\}\}`)

// Kind is the closed set of bindings a template can declare.
type Kind uint8

const (
	KindText  Kind = iota // {{ path }} or v-text
	KindHTML              // v-html
	KindClass             // v-class, :class
	KindModel             // v-model
	KindAttr              // :name
	KindEvent             // @type
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindHTML:
		return "html"
	case KindClass:
		return "class"
	case KindModel:
		return "model"
	case KindAttr:
		return "attr"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Binding associates a node with what keeps it in sync.
type Binding struct {
	Kind Kind
	Node *html.Node
	// Path is the dotted expression, or the method name for KindEvent.
	Path string
	// Name is the attribute for KindAttr and the event type for KindEvent.
	Name string
	// Source is the template attribute the binding came from, empty for
	// text interpolation.
	Source string
}

// DirectiveError reports a template attribute that cannot be compiled.
type DirectiveError struct {
	Tag   string
	Attr  string
	Value string
	Err   error
}

func (e *DirectiveError) Error() string {
	if e.Attr == "" {
		return fmt.Sprintf("%s %q: %v", e.Tag, e.Value, e.Err)
	}
	return fmt.Sprintf("<%s %s=%q>: %v", e.Tag, e.Attr, e.Value, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// Discover walks root depth first and returns the bindings its template
// declares, in document order. It does not modify the tree. Children of an
// element carrying v-text or v-html are not visited, the directive owns them;
// markup a v-html binding injects is discovered once it has been written.
func Discover(root *html.Node, methods map[string]dom.Handler) ([]Binding, error) {
	var bindings []Binding

	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b, ok, err := discoverText(c)
				if err != nil {
					return err
				}
				if ok {
					bindings = append(bindings, b)
				}

			case html.ElementNode:
				owned := false
				for _, a := range c.Attr {
					b, ok, err := discoverAttr(c, a, methods)
					if err != nil {
						return err
					}
					if !ok {
						continue
					}
					if b.Kind == KindText || b.Kind == KindHTML {
						owned = true
					}
					bindings = append(bindings, b)
				}
				if !owned && c.FirstChild != nil {
					if err := walk(c); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return bindings, nil
}

func discoverText(n *html.Node) (Binding, bool, error) {
	m := interpolation.FindStringSubmatch(n.Data)
	if m == nil {
		return Binding{}, false, nil
	}
	expr := strings.TrimSpace(m[1])
	if expr == "" {
		return Binding{}, false, &DirectiveError{Tag: "#text", Value: n.Data, Err: ErrEmptyExpression}
	}
	return Binding{Kind: KindText, Node: n, Path: expr}, true, nil
}

func discoverAttr(n *html.Node, a html.Attribute, methods map[string]dom.Handler) (Binding, bool, error) {
	fail := func(err error) (Binding, bool, error) {
		return Binding{}, false, &DirectiveError{Tag: n.Data, Attr: a.Key, Value: a.Val, Err: err}
	}

	if a.Namespace != "" {
		return Binding{}, false, nil
	}

	b := Binding{Node: n, Source: a.Key, Path: strings.TrimSpace(a.Val)}
	key := a.Key
	switch {
	case strings.HasPrefix(key, "v-bind:"):
		key = ":" + strings.TrimPrefix(key, "v-bind:")
	case strings.HasPrefix(key, "v-on:"):
		key = "@" + strings.TrimPrefix(key, "v-on:")
	}

	switch {
	case strings.HasPrefix(key, "v-"):
		switch name := key[2:]; name {
		case "text":
			b.Kind = KindText
		case "html":
			b.Kind = KindHTML
		case "class":
			b.Kind = KindClass
		case "model":
			b.Kind = KindModel
		default:
			return fail(ErrUnknownDirective)
		}

	case strings.HasPrefix(key, ":"):
		name := key[1:]
		if name == "" {
			return fail(ErrUnknownDirective)
		}
		if name == "class" {
			b.Kind = KindClass
		} else {
			b.Kind = KindAttr
			b.Name = name
		}

	case strings.HasPrefix(key, "@"):
		b.Kind = KindEvent
		b.Name = key[1:]
		if b.Name == "" {
			return fail(ErrUnknownDirective)
		}
		if b.Path == "" {
			return fail(ErrEmptyExpression)
		}
		if _, ok := methods[b.Path]; !ok {
			return fail(ErrUnknownMethod)
		}
		return b, true, nil

	default:
		return Binding{}, false, nil
	}

	if b.Path == "" {
		return fail(ErrEmptyExpression)
	}
	return b, true, nil
}
