package observe

import (
	"errors"
	"fmt"
	"strings"
)

var ErrPathNotFound = errors.New("path not found")

// Path is a parsed dotted expression such as user.name.
type Path []string

func ParsePath(expr string) Path {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	parts := strings.Split(expr, ".")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return Path(parts)
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// resolve walks p from root. A missing key, or a key whose value is not an
// Object while segments remain, resolves to nil.
func resolve(root *Object, p Path) any {
	var cur any = root
	for _, seg := range p {
		obj, ok := cur.(*Object)
		if !ok || obj == nil {
			return nil
		}
		v, ok := obj.Get(seg)
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// Lookup reads expr from root without attributing any dependency.
func (s *System) Lookup(root *Object, expr string) any {
	var v any
	s.Untracked(func() {
		v = resolve(root, ParsePath(expr))
	})
	return v
}

// Assign writes v at expr through the observed write path, notifying the
// subscribers of the final key.
func (s *System) Assign(root *Object, expr string, v any) error {
	p := ParsePath(expr)
	if len(p) == 0 {
		return fmt.Errorf("%w: empty expression", ErrPathNotFound)
	}

	var parent *Object
	s.Untracked(func() {
		var ok bool
		parent, ok = resolve(root, p[:len(p)-1]).(*Object)
		if !ok {
			parent = nil
		}
	})
	if parent == nil {
		return fmt.Errorf("%w: %q", ErrPathNotFound, expr)
	}

	parent.Set(p[len(p)-1], v)
	return nil
}
