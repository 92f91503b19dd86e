// Package dom is the in-memory document mvvm renders into.
//
// A Document wraps an x/net/html node tree and adds what a browser would
// otherwise provide: form control value properties, event listeners and
// dispatch, and selector lookup. Writers are the only functions that change
// the tree on behalf of bindings and every call is counted so callers can
// check how many DOM writes an update produced.
package dom

import (
	"bytes"
	"io"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/html"
)

// Event is a dispatched DOM event.
type Event struct {
	Type   string
	Target *html.Node
	// Value is the target's value property at dispatch time.
	Value string
}

type Handler func(ev *Event)

type Document struct {
	root      *html.Node
	values    map[*html.Node]string
	listeners map[*html.Node]map[string][]Handler
	writes    map[*html.Node]int
	total     int
}

func NewDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		values:    map[*html.Node]string{},
		listeners: map[*html.Node]map[string][]Handler{},
		writes:    map[*html.Node]int{},
	}
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(root), nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) Root() *html.Node {
	return d.root
}

// Resolve turns a mount target into an element. target is either an element
// node or a CSS selector matching exactly one element.
func (d *Document) Resolve(target any) (*html.Node, bool) {
	switch t := target.(type) {
	case *html.Node:
		if t == nil || t.Type != html.ElementNode {
			return nil, false
		}
		return t, true
	case string:
		nodes, err := d.QueryAll(t)
		if err != nil || len(nodes) != 1 {
			return nil, false
		}
		return nodes[0], true
	default:
		return nil, false
	}
}

func (d *Document) QueryAll(selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	return sel.MatchAll(d.root), nil
}

// AddEventListener registers h for events of type typ on n.
func (d *Document) AddEventListener(n *html.Node, typ string, h Handler) {
	if h == nil {
		return
	}
	byType, ok := d.listeners[n]
	if !ok {
		byType = map[string][]Handler{}
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], h)
}

// Listeners returns the number of handlers registered for typ on n.
func (d *Document) Listeners(n *html.Node, typ string) int {
	return len(d.listeners[n][typ])
}

// Dispatch calls the handlers registered for typ on target, in registration
// order, and returns how many ran.
func (d *Document) Dispatch(target *html.Node, typ string) int {
	handlers := slices.Clone(d.listeners[target][typ])
	ev := &Event{
		Type:   typ,
		Target: target,
		Value:  d.Value(target),
	}
	for _, h := range handlers {
		h(ev)
	}
	return len(handlers)
}

// Input simulates a user typing value into n: the value property changes and
// an input event is dispatched. The change is not counted as a write.
func (d *Document) Input(n *html.Node, value string) int {
	d.setValue(n, value)
	return d.Dispatch(n, "input")
}

// Value returns the value property of n. Until it is set it reflects the
// value attribute, or the text of a textarea.
func (d *Document) Value(n *html.Node) string {
	if v, ok := d.values[n]; ok {
		return v
	}
	if n.Type == html.ElementNode && n.Data == "textarea" {
		return TextContent(n)
	}
	v, _ := Attr(n, "value")
	return v
}

func (d *Document) setValue(n *html.Node, value string) {
	d.values[n] = value
	if n.Type != html.ElementNode {
		return
	}
	if n.Data == "textarea" {
		replaceChildren(n, textNode(value))
		return
	}
	SetAttr(n, "value", value)
}

func (d *Document) touch(n *html.Node) {
	d.writes[n]++
	d.total++
}

// Writes returns how many writer calls changed n.
func (d *Document) Writes(n *html.Node) int {
	return d.writes[n]
}

func (d *Document) TotalWrites() int {
	return d.total
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Checksum hashes the rendered document.
func (d *Document) Checksum() uint64 {
	h := xxhash.New()
	if err := d.Render(h); err != nil {
		return 0
	}
	return h.Sum64()
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return buf.String()
		}
	}
	return buf.String()
}

// OuterHTML renders n itself.
func OuterHTML(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// TextContent concatenates the text nodes below n.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes key from n and reports whether it was present.
func RemoveAttr(n *html.Node, key string) bool {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = slices.Delete(n.Attr, i, i+1)
			return true
		}
	}
	return false
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func replaceChildren(n *html.Node, children ...*html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range children {
		if c == nil {
			continue
		}
		n.AppendChild(c)
	}
}
