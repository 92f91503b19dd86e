package compile_test

import (
	"strings"
	"testing"

	"github.com/delaneyj/mvvm/compile"
	"github.com/delaneyj/mvvm/dom"
	"github.com/delaneyj/mvvm/observe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type fixture struct {
	doc  *dom.Document
	el   *html.Node
	sys  *observe.System
	data *observe.Object
	c    *compile.Compiler
}

func compileFixture(t *testing.T, src string, data map[string]any, methods map[string]dom.Handler) *fixture {
	t.Helper()
	doc, el := mount(t, src)
	sys := observe.NewSystem()
	obj := sys.ObserveMap(data)
	c := compile.New(doc, sys, obj, methods)
	require.NoError(t, c.Apply(el))
	return &fixture{doc: doc, el: el, sys: sys, data: obj, c: c}
}

func (f *fixture) query(t *testing.T, selector string) *html.Node {
	t.Helper()
	n, ok := f.doc.Resolve(selector)
	require.True(t, ok, selector)
	return n
}

func TestApply(t *testing.T) {
	t.Run("interpolation renders and follows writes", func(t *testing.T) {
		f := compileFixture(t, `<div id="app"><span>{{msg}}</span></div>`, map[string]any{"msg": "hi"}, nil)
		span := f.query(t, "span")
		assert.Equal(t, "hi", dom.TextContent(span))

		text := span.FirstChild
		before := f.doc.Writes(text)
		f.data.Set("msg", "bye")
		assert.Equal(t, "bye", dom.TextContent(span))
		assert.Equal(t, 1, f.doc.Writes(text)-before, "exactly one write per change")

		f.data.Set("msg", "bye")
		assert.Equal(t, 1, f.doc.Writes(text)-before, "same value does not write")
	})

	t.Run("whole object replacement", func(t *testing.T) {
		f := compileFixture(t, `<div id="app"><p v-text="user.name"></p></div>`,
			map[string]any{"user": map[string]any{"name": "a"}}, nil)
		p := f.query(t, "p")
		assert.Equal(t, "a", dom.TextContent(p))

		f.data.Set("user", map[string]any{"name": "b"})
		assert.Equal(t, "b", dom.TextContent(p))

		require.NoError(t, f.sys.Assign(f.data, "user.name", "c"))
		assert.Equal(t, "c", dom.TextContent(p))
	})

	t.Run("model binding writes back without echo", func(t *testing.T) {
		f := compileFixture(t, `<div id="app"><input v-model="val"><span>{{val}}</span></div>`,
			map[string]any{"val": "x"}, nil)
		in := f.query(t, "input")
		span := f.query(t, "span")
		assert.Equal(t, "x", f.doc.Value(in))

		writes := f.doc.Writes(in)
		assert.NotPanics(t, func() { f.doc.Input(in, "y") })
		assert.Equal(t, "y", f.sys.Lookup(f.data, "val"))
		assert.Equal(t, "y", dom.TextContent(span))
		assert.Equal(t, writes, f.doc.Writes(in), "input already shows the typed value")

		f.doc.Input(in, "y")
		assert.Equal(t, writes, f.doc.Writes(in))

		f.data.Set("val", "z")
		assert.Equal(t, "z", f.doc.Value(in))
		assert.Equal(t, writes+1, f.doc.Writes(in))
	})

	t.Run("model compares against the current value", func(t *testing.T) {
		f := compileFixture(t, `<div id="app"><input v-model="val"></div>`, map[string]any{"val": "x"}, nil)
		in := f.query(t, "input")

		sets := 0
		f.sys.Watch(f.data, "val", func(any, any) { sets++ })

		f.doc.Input(in, "y")
		f.doc.Input(in, "x")
		assert.Equal(t, 2, sets, "typing the initial value back is a change")
		assert.Equal(t, "x", f.sys.Lookup(f.data, "val"))
	})

	t.Run("model keeps numbers that render the same", func(t *testing.T) {
		f := compileFixture(t, `<div id="app"><input v-model="n"></div>`, map[string]any{"n": 5}, nil)
		in := f.query(t, "input")
		f.doc.Input(in, "5")
		assert.Equal(t, 5, f.sys.Lookup(f.data, "n"))
	})

	t.Run("missing paths render empty", func(t *testing.T) {
		var f *fixture
		assert.NotPanics(t, func() {
			f = compileFixture(t, `<div id="app"><span>{{ a.b.c }}</span></div>`, map[string]any{"a": map[string]any{}}, nil)
		})
		span := f.query(t, "span")
		assert.Equal(t, "", dom.TextContent(span))

		require.NoError(t, f.sys.Assign(f.data, "a.b", map[string]any{"c": "filled"}))
		assert.Equal(t, "filled", dom.TextContent(span))
	})

	t.Run("html class and attributes", func(t *testing.T) {
		f := compileFixture(t, `<div id="app">
			<div id="h" v-html="body"></div>
			<i id="i" v-class="cls"></i>
			<a id="a" :href="url" :class="cls" :hidden="hide">go</a>
		</div>`, map[string]any{"body": "<b>x</b>", "cls": "on", "url": "/a", "hide": false}, nil)

		assert.Equal(t, "<b>x</b>", dom.InnerHTML(f.query(t, "#h")))
		assert.Equal(t, `<i id="i" class="on"></i>`, dom.OuterHTML(f.query(t, "#i")))
		assert.Equal(t, `<a id="a" href="/a" class="on">go</a>`, dom.OuterHTML(f.query(t, "#a")))

		f.data.Set("hide", true)
		f.data.Set("url", "/b")
		f.data.Set("body", "<em>y</em>")
		assert.Equal(t, `<a id="a" href="/b" class="on" hidden="">go</a>`, dom.OuterHTML(f.query(t, "#a")))
		assert.Equal(t, "<em>y</em>", dom.InnerHTML(f.query(t, "#h")))
	})

	t.Run("events call methods directly", func(t *testing.T) {
		var got []*dom.Event
		methods := map[string]dom.Handler{
			"save": func(ev *dom.Event) { got = append(got, ev) },
		}
		f := compileFixture(t, `<div id="app"><button @click="save">go</button></div>`, map[string]any{}, methods)
		btn := f.query(t, "button")

		assert.Equal(t, 1, f.doc.Dispatch(btn, "click"))
		require.Len(t, got, 1)
		assert.Same(t, btn, got[0].Target)
		assert.Equal(t, 1, f.c.Count(compile.KindEvent))
		assert.Empty(t, f.c.Watchers())
	})

	t.Run("no directive markup remains", func(t *testing.T) {
		f := compileFixture(t, `<div id="app">
			<p v-text="a" class="keep"></p><i v-class="a"></i><input v-model="a">
			<a :href="a" @click="m" v-on:focus="m" v-bind:title="a">x</a>
			<section><div><span v-html="a"></span></div></section>
		</div>`, map[string]any{"a": "v"}, map[string]dom.Handler{"m": noop})

		var walk func(n *html.Node)
		walk = func(n *html.Node) {
			for _, a := range n.Attr {
				assert.False(t, strings.HasPrefix(a.Key, "v-") || strings.HasPrefix(a.Key, ":") || strings.HasPrefix(a.Key, "@"),
					"leftover %s on <%s>", a.Key, n.Data)
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(f.el)
		assert.Equal(t, `<p class="keep">v</p>`, dom.OuterHTML(f.query(t, "p")))
		assert.Len(t, f.c.Watchers(), 6)
	})

	t.Run("errors leave the tree untouched", func(t *testing.T) {
		doc, el := mount(t, `<div id="app"><p v-text="a"></p><p v-bogus="a"></p></div>`)
		before := doc.String()
		sys := observe.NewSystem()
		c := compile.New(doc, sys, sys.ObserveMap(map[string]any{"a": "v"}), nil)

		err := c.Apply(el)
		assert.ErrorIs(t, err, compile.ErrUnknownDirective)
		assert.Contains(t, err.Error(), "v-bogus")
		assert.Equal(t, before, doc.String())
		assert.Equal(t, 0, doc.TotalWrites())
	})

	t.Run("injected html is compiled", func(t *testing.T) {
		clicks := 0
		methods := map[string]dom.Handler{"m": func(*dom.Event) { clicks++ }}
		f := compileFixture(t, `<div id="app"><div id="h" v-html="body"></div></div>`, map[string]any{
			"body": `<b v-text="name" @click="m">{{ name }}</b><i :title="name">{{ name }}</i>`,
			"name": "x",
		}, methods)

		h := f.query(t, "#h")
		assert.Equal(t, `<b>x</b><i title="x">x</i>`, dom.InnerHTML(h))
		assert.Len(t, f.c.Watchers(), 4)

		f.data.Set("name", "y")
		assert.Equal(t, `<b>y</b><i title="y">y</i>`, dom.InnerHTML(h))

		f.data.Set("name", "{{ body }}")
		assert.Equal(t, "{{ body }}", dom.TextContent(f.query(t, "b")), "v-text output is not interpolated")

		f.doc.Dispatch(f.query(t, "b"), "click")
		assert.Equal(t, 1, clicks)
	})

	t.Run("errors in injected html are returned", func(t *testing.T) {
		doc, el := mount(t, `<div id="app"><div v-html="body"></div></div>`)
		sys := observe.NewSystem()
		c := compile.New(doc, sys, sys.ObserveMap(map[string]any{"body": `<a @click="missing">x</a>`}), nil)
		assert.ErrorIs(t, c.Apply(el), compile.ErrUnknownMethod)
	})

	t.Run("multiline interpolation", func(t *testing.T) {
		f := compileFixture(t, "<div id=\"app\"><p>{{\n name\n}}</p></div>", map[string]any{"name": "x"}, nil)
		assert.Equal(t, "x", dom.TextContent(f.query(t, "p")))
	})

	t.Run("children keep their order", func(t *testing.T) {
		f := compileFixture(t, `<div id="app"><b>1</b><i>{{two}}</i><u>3</u></div>`, map[string]any{"two": 2}, nil)
		assert.Equal(t, "<b>1</b><i>2</i><u>3</u>", dom.InnerHTML(f.el))
	})
}
