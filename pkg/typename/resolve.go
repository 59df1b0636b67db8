package typename

// Resolve converts a raw reference into its canonical TypeName.
// It is total: kinds without a dedicated rule (including intersection and
// union types) fall back to the textual form of the reference for both
// names. A nil reference resolves like [KindNone].
func Resolve(ref *Ref) TypeName {
	if ref == nil {
		return New("none", "none")
	}

	if ref.Kind.IsPrimitive() || ref.Kind.isNoType() {
		name := ref.Kind.String()
		return New(name, name)
	}

	switch ref.Kind {
	case KindDeclared:
		return resolveDeclared(ref)
	case KindArray:
		if ref.Component == nil {
			return fallback(ref)
		}
		return Array(Resolve(ref.Component))
	case KindTypeVar:
		return resolveTypeVar(ref)
	case KindWildcard:
		return resolveWildcard(ref)
	default:
		return fallback(ref)
	}
}

func resolveDeclared(ref *Ref) TypeName {
	qualified := ref.QualifiedName
	if qualified == "" {
		qualified = ref.Name
	}
	var generics []TypeName
	for _, arg := range ref.Args {
		generics = append(generics, Resolve(arg))
	}
	return New(ref.Name, qualified, generics...)
}

func resolveTypeVar(ref *Ref) TypeName {
	name := ref.String()
	if up := ref.Upper; up != nil && !up.Kind.carriesNoInformation() {
		bound := Resolve(up)
		if bound.Qualified() != ObjectType {
			return ExtendsBound(name, bound)
		}
	}
	if low := ref.Lower; low != nil && !low.Kind.carriesNoInformation() {
		return SuperBound(name, Resolve(low))
	}
	return fallback(ref)
}

func resolveWildcard(ref *Ref) TypeName {
	if ref.Extends != nil {
		return ExtendsBound("?", Resolve(ref.Extends))
	}
	if ref.Super != nil {
		return SuperBound("?", Resolve(ref.Super))
	}
	return fallback(ref)
}

// fallback renders a reference by its raw text.
// TODO: give intersection and union types a UML rendering of their own.
func fallback(ref *Ref) TypeName {
	text := ref.String()
	return New(text, text)
}
