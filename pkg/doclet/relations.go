package doclet

import (
	"github.com/matzehuels/umldoc/pkg/model"
	"github.com/matzehuels/umldoc/pkg/typename"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// containers map wrapper types to the cardinality of their single type
// argument.
var containers = map[string]string{
	"java.lang.Iterable":      "*",
	"java.util.Collection":    "*",
	"java.util.List":          "*",
	"java.util.ArrayList":     "*",
	"java.util.LinkedList":    "*",
	"java.util.Set":           "*",
	"java.util.HashSet":       "*",
	"java.util.LinkedHashSet": "*",
	"java.util.SortedSet":     "*",
	"java.util.TreeSet":       "*",
	"java.util.Queue":         "*",
	"java.util.Deque":         "*",
	"java.util.ArrayDeque":    "*",
	"java.util.stream.Stream": "*",
	"java.util.Optional":      "0..1",
}

// relations derives the outgoing edges of e. Each target appears once; the
// strongest relation wins (inheritance, then association, then dependency).
func (b *builder) relations(d *uml.Diagram, e entry) []*uml.Reference {
	t := e.t
	from := typename.New(t.Name, e.qualified)
	isInterface := t.Kind == "interface"

	var refs []*uml.Reference
	linked := map[string]bool{e.qualified: true}

	if t.Superclass != nil {
		to := typename.Resolve(t.Superclass)
		refs = append(refs, uml.NewReference(d, uml.Extends, from, bare(to)))
		linked[to.Qualified()] = true
	}
	for _, iface := range t.Interfaces {
		to := typename.Resolve(iface)
		kind := uml.Implements
		if isInterface {
			kind = uml.Extends
		}
		refs = append(refs, uml.NewReference(d, kind, from, bare(to)))
		linked[to.Qualified()] = true
	}

	for _, f := range t.Fields {
		target, card, ok := b.association(f.Type)
		if !ok || linked[target.Qualified()] {
			continue
		}
		linked[target.Qualified()] = true
		refs = append(refs, uml.NewAssociation(d, from, target, card, f.Name))
	}

	var used []*typename.Ref
	for _, m := range append(append([]model.Method(nil), t.Constructors...), t.Methods...) {
		used = append(used, m.Return)
		for _, p := range m.Params {
			used = append(used, p.Type)
		}
	}
	for _, ref := range used {
		for _, target := range b.declaredIn(ref) {
			if linked[target.Qualified()] {
				continue
			}
			linked[target.Qualified()] = true
			refs = append(refs, uml.NewReference(d, uml.Dependency, from, target))
		}
	}
	return refs
}

// association returns the model type a field refers to and the
// cardinality of the reference.
func (b *builder) association(ref *typename.Ref) (typename.TypeName, string, bool) {
	if ref == nil {
		return typename.TypeName{}, "", false
	}
	switch ref.Kind {
	case typename.KindArray:
		if target, _, ok := b.association(ref.Component); ok {
			return target, "*", true
		}
	case typename.KindDeclared:
		if b.known[qualifiedOf(ref)] {
			return bare(typename.Resolve(ref)), "", true
		}
		if card, ok := containers[qualifiedOf(ref)]; ok && len(ref.Args) == 1 {
			if target, _, ok := b.association(ref.Args[0]); ok {
				return target, card, true
			}
		}
	case typename.KindWildcard:
		if ref.Extends != nil {
			return b.association(ref.Extends)
		}
	}
	return typename.TypeName{}, "", false
}

// declaredIn lists the model types ref mentions, in order of appearance.
func (b *builder) declaredIn(ref *typename.Ref) []typename.TypeName {
	var out []typename.TypeName
	var walk func(r *typename.Ref)
	walk = func(r *typename.Ref) {
		if r == nil {
			return
		}
		if r.Kind == typename.KindDeclared && b.known[qualifiedOf(r)] {
			out = append(out, bare(typename.Resolve(r)))
		}
		for _, arg := range r.Args {
			walk(arg)
		}
		for _, bound := range r.Bounds {
			walk(bound)
		}
		walk(r.Component)
		walk(r.Upper)
		walk(r.Lower)
		walk(r.Extends)
		walk(r.Super)
	}
	walk(ref)
	return out
}

func qualifiedOf(ref *typename.Ref) string {
	if ref.QualifiedName != "" {
		return ref.QualifiedName
	}
	return ref.Name
}

// bare drops the generic arguments of t; edges connect types by name only.
func bare(t typename.TypeName) typename.TypeName {
	return typename.New(t.Simple(), t.Qualified())
}
