package dom

// TypeInfo is one resolved control type from the type catalog. Catalog
// entries are shared between every element annotated with them and must
// be treated as immutable.
type TypeInfo struct {
	// Name is the type name as it appears in markup.
	Name string
	// Namespace is the catalog namespace the type belongs to.
	Namespace string
	// Base is the parent type, nil at the root of a hierarchy.
	Base *TypeInfo
	// Members lists the properties and events the type declares itself,
	// inherited members excluded.
	Members []Member
}

// MemberKind discriminates catalog members.
type MemberKind int

const (
	// MemberProperty is a settable property.
	MemberProperty MemberKind = iota
	// MemberEvent is a routed event.
	MemberEvent
)

// Member is one declared property or event of a catalog type.
type Member struct {
	Name string
	Kind MemberKind
}

// DerivesFrom reports whether the type is name or inherits from it.
func (t *TypeInfo) DerivesFrom(name string) bool {
	for cur := t; cur != nil; cur = cur.Base {
		if cur.Name == name {
			return true
		}
	}
	return false
}

// Member looks the named member up on the type and its base chain.
func (t *TypeInfo) Member(name string) (Member, bool) {
	for cur := t; cur != nil; cur = cur.Base {
		for _, m := range cur.Members {
			if m.Name == name {
				return m, true
			}
		}
	}
	return Member{}, false
}

// AncestorNames returns the type name followed by every base type name,
// most derived first. Property renames scoped to an owner type are
// matched against this chain.
func (t *TypeInfo) AncestorNames() []string {
	var out []string
	for cur := t; cur != nil; cur = cur.Base {
		out = append(out, cur.Name)
	}
	return out
}
