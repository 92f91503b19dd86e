// Package vm is the entry point of mvvm: it observes a data map and compiles
// the template found under a mount element against it.
//
//	doc, _ := dom.ParseString(`<div id="app"><p>{{ msg }}</p></div>`)
//	v, err := vm.New(vm.Options{
//		El:       "#app",
//		Document: doc,
//		Data:     map[string]any{"msg": "hi"},
//	})
//	v.Set("msg", "bye") // the paragraph now reads "bye"
package vm

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/delaneyj/mvvm/compile"
	"github.com/delaneyj/mvvm/dom"
	"github.com/delaneyj/mvvm/observe"
	"golang.org/x/net/html"
)

type Options struct {
	// El is the mount target, an element node or a selector matching exactly
	// one element of Document.
	El any
	// Data is observed in place; it stays in sync with writes made through
	// the VM.
	Data map[string]any
	// Methods are the handlers @event attributes refer to by name.
	Methods map[string]dom.Handler
	// Document holds El. When nil and El is a node, a document is built
	// around the node's tree.
	Document *dom.Document
	Logger   *slog.Logger
}

type VM struct {
	sys      *observe.System
	data     *observe.Object
	doc      *dom.Document
	el       *html.Node
	methods  map[string]dom.Handler
	compiler *compile.Compiler
	logger   *slog.Logger
}

// New observes opts.Data and compiles the mount element. A mount target that
// cannot be resolved skips compilation without error; template configuration
// errors are returned.
func New(opts Options) (*VM, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	methods := opts.Methods
	if methods == nil {
		methods = map[string]dom.Handler{}
	}

	data := opts.Data
	if data == nil {
		data = map[string]any{}
	}

	doc := opts.Document
	if doc == nil {
		doc = documentFor(opts.El)
	}

	sys := observe.NewSystem()
	v := &VM{
		sys:     sys,
		data:    sys.ObserveMap(data),
		doc:     doc,
		methods: methods,
		logger:  logger,
	}
	v.compiler = compile.New(doc, sys, v.data, methods, compile.WithLogger(logger))

	el, ok := doc.Resolve(opts.El)
	if !ok {
		logger.Debug("mount target not found, skipping compile", "el", opts.El)
		return v, nil
	}
	v.el = el

	if err := v.compiler.Apply(el); err != nil {
		return nil, fmt.Errorf("mount %v: %w", opts.El, err)
	}
	deps, watchers := sys.Counts()
	logger.Debug("mounted", "el", el.Data, "deps", deps, "watchers", watchers)
	return v, nil
}

func documentFor(el any) *dom.Document {
	n, ok := el.(*html.Node)
	if !ok || n == nil {
		return dom.NewDocument(&html.Node{Type: html.DocumentNode})
	}
	for n.Parent != nil {
		n = n.Parent
	}
	return dom.NewDocument(n)
}

func (v *VM) Data() *observe.Object {
	return v.data
}

func (v *VM) System() *observe.System {
	return v.sys
}

func (v *VM) Document() *dom.Document {
	return v.doc
}

// El returns the mount element, nil when the target was not found.
func (v *VM) El() *html.Node {
	return v.el
}

func (v *VM) Mounted() bool {
	return v.el != nil
}

func (v *VM) Methods() map[string]dom.Handler {
	return v.methods
}

// Get reads a dotted path without registering any dependency.
func (v *VM) Get(path string) any {
	return v.sys.Lookup(v.data, path)
}

// Set writes a dotted path, re-rendering every binding that depends on it.
func (v *VM) Set(path string, value any) error {
	return v.sys.Assign(v.data, path, value)
}

func (v *VM) Watchers() []*observe.Watcher {
	return v.compiler.Watchers()
}

// Bindings returns how many bindings of kind k were compiled.
func (v *VM) Bindings(k compile.Kind) int {
	return v.compiler.Count(k)
}
