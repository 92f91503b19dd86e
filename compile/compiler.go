// Package compile turns a template subtree into live bindings.
//
// Discover is the pure half: it reads a node tree and returns the Bindings
// the template declares. Compiler.Apply is the imperative half: it strips the
// directive markup, renders every binding once and leaves a Watcher behind
// that re-renders it whenever its data changes.
package compile

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/delaneyj/mvvm/dom"
	"github.com/delaneyj/mvvm/observe"
	"golang.org/x/net/html"
)

type Compiler struct {
	doc      *dom.Document
	sys      *observe.System
	data     *observe.Object
	methods  map[string]dom.Handler
	logger   *slog.Logger
	watchers []*observe.Watcher
	counts   map[Kind]int
}

type Option func(*Compiler)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(doc *dom.Document, sys *observe.System, data *observe.Object, methods map[string]dom.Handler, opts ...Option) *Compiler {
	if methods == nil {
		methods = map[string]dom.Handler{}
	}
	c := &Compiler{
		doc:     doc,
		sys:     sys,
		data:    data,
		methods: methods,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		counts:  map[Kind]int{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply compiles the children of el in place. Errors in the template are
// reported before anything in the tree is changed; errors in markup injected
// by v-html surface after its first render.
func (c *Compiler) Apply(el *html.Node) error {
	frag := &html.Node{Type: html.DocumentNode}
	moveChildren(frag, el)
	defer moveChildren(el, frag)

	bindings, err := Discover(frag, c.methods)
	if err != nil {
		return fmt.Errorf("compile <%s>: %w", el.Data, err)
	}

	if err := c.applyAll(bindings); err != nil {
		return fmt.Errorf("compile <%s>: %w", el.Data, err)
	}

	c.logger.Debug("compiled", "el", el.Data, "bindings", len(bindings))
	return nil
}

func (c *Compiler) applyAll(bindings []Binding) error {
	for _, b := range bindings {
		if b.Source != "" {
			dom.RemoveAttr(b.Node, b.Source)
		}
	}
	for _, b := range bindings {
		if err := c.bind(b); err != nil {
			return err
		}
	}
	return nil
}

// compileInjected compiles the markup the first render of a v-html binding
// placed under n. Later renders are written as plain markup.
func (c *Compiler) compileInjected(n *html.Node) error {
	if n.FirstChild == nil {
		return nil
	}
	bindings, err := Discover(n, c.methods)
	if err != nil {
		return err
	}
	if len(bindings) > 0 {
		c.logger.Debug("compiled injected markup", "el", n.Data, "bindings", len(bindings))
	}
	return c.applyAll(bindings)
}

func (c *Compiler) bind(b Binding) error {
	var write dom.Writer
	switch b.Kind {
	case KindText:
		write = dom.WriteText
	case KindHTML:
		write = dom.WriteHTML
	case KindClass:
		write = dom.WriteClass
	case KindModel:
		write = dom.WriteModel
	case KindAttr:
		write = dom.WriteAttr(b.Name)
	case KindEvent:
		c.doc.AddEventListener(b.Node, b.Name, c.methods[b.Path])
		c.counts[b.Kind]++
		c.logger.Debug("listen", "event", b.Name, "method", b.Path)
		return nil
	default:
		return &DirectiveError{Tag: b.Node.Data, Attr: b.Source, Value: b.Path, Err: ErrUnknownDirective}
	}

	node := b.Node
	write(c.doc, node, c.sys.Lookup(c.data, b.Path))
	w := c.sys.Watch(c.data, b.Path, func(newValue, _ any) {
		write(c.doc, node, newValue)
	})
	c.watchers = append(c.watchers, w)

	if b.Kind == KindHTML {
		if err := c.compileInjected(node); err != nil {
			return err
		}
	}

	if b.Kind == KindModel {
		path := b.Path
		c.doc.AddEventListener(node, "input", func(ev *dom.Event) {
			if dom.Stringify(c.sys.Lookup(c.data, path)) == ev.Value {
				return
			}
			if err := c.sys.Assign(c.data, path, ev.Value); err != nil {
				c.logger.Warn("model write failed", "path", path, "error", err)
			}
		})
	}

	c.counts[b.Kind]++
	c.logger.Debug("bind", "kind", b.Kind, "path", b.Path, "watcher", w.ID())
	return nil
}

// Watchers returns the watchers created so far, in binding order.
func (c *Compiler) Watchers() []*observe.Watcher {
	return c.watchers
}

// Count returns how many bindings of kind k were applied.
func (c *Compiler) Count(k Kind) int {
	return c.counts[k]
}

func moveChildren(dst, src *html.Node) {
	for n := src.FirstChild; n != nil; n = src.FirstChild {
		src.RemoveChild(n)
		dst.AppendChild(n)
	}
}
