package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Writer renders a bound value into a node.
type Writer func(d *Document, n *html.Node, v any)

// Stringify renders a bound value for the DOM. nil is the empty string.
func Stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// WriteText sets the text content of n. For a text node that is its data,
// for an element its children are replaced by a single text node.
func WriteText(d *Document, n *html.Node, v any) {
	s := Stringify(v)
	if n.Type == html.TextNode {
		n.Data = s
	} else if s == "" {
		replaceChildren(n)
	} else {
		replaceChildren(n, textNode(s))
	}
	d.touch(n)
}

// WriteHTML parses v as markup in the context of n and replaces its children.
func WriteHTML(d *Document, n *html.Node, v any) {
	s := Stringify(v)
	nodes, err := html.ParseFragment(strings.NewReader(s), n)
	if err != nil {
		replaceChildren(n, textNode(s))
	} else {
		replaceChildren(n, nodes...)
	}
	d.touch(n)
}

func WriteClass(d *Document, n *html.Node, v any) {
	SetAttr(n, "class", Stringify(v))
	d.touch(n)
}

// WriteModel sets the value property of a form control. It does nothing when
// the control already shows the value, which is the case right after the user
// typed it.
func WriteModel(d *Document, n *html.Node, v any) {
	s := Stringify(v)
	if _, set := d.values[n]; set && d.Value(n) == s {
		return
	}
	d.setValue(n, s)
	d.touch(n)
}

// WriteAttr returns a writer for the attribute name. nil and false remove the
// attribute, true sets it empty.
func WriteAttr(name string) Writer {
	return func(d *Document, n *html.Node, v any) {
		switch v := v.(type) {
		case nil:
			RemoveAttr(n, name)
		case bool:
			if v {
				SetAttr(n, name, "")
			} else {
				RemoveAttr(n, name)
			}
		default:
			SetAttr(n, name, Stringify(v))
		}
		d.touch(n)
	}
}
