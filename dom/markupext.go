package dom

// MarkupExtension is a parsed curly-brace expression such as
// {Binding Path, Mode=TwoWay} or {StaticResource key}. Arguments keep
// their source order; named arguments may nest further extensions.
type MarkupExtension struct {
	// Name is the extension name without the Extension suffix trimming
	// applied, exactly as written.
	Name string
	// Args are the arguments in source order.
	Args []ExtArg
}

// ExtArg is one argument of a markup extension. A positional argument
// has an empty Name. The payload is Text unless Ext is non-nil, in
// which case the argument value is itself an extension expression.
type ExtArg struct {
	Name string
	Text string
	Ext  *MarkupExtension
}

// Arg returns the first named argument with the given name, or nil. The
// pointer aims into the argument slice and stays valid until the list
// is next modified.
func (m *MarkupExtension) Arg(name string) *ExtArg {
	for i := range m.Args {
		if m.Args[i].Name == name {
			return &m.Args[i]
		}
	}
	return nil
}

// Positional returns the text payloads of the positional arguments in
// order.
func (m *MarkupExtension) Positional() []string {
	var out []string
	for i := range m.Args {
		if m.Args[i].Name == "" && m.Args[i].Ext == nil {
			out = append(out, m.Args[i].Text)
		}
	}
	return out
}

// FirstPositional returns the first positional text argument, or the
// empty string when there is none.
func (m *MarkupExtension) FirstPositional() string {
	for i := range m.Args {
		if m.Args[i].Name == "" && m.Args[i].Ext == nil {
			return m.Args[i].Text
		}
	}
	return ""
}

// SetArg replaces the first argument with the given name or appends a
// new named argument.
func (m *MarkupExtension) SetArg(name, text string) {
	for i := range m.Args {
		if m.Args[i].Name == name {
			m.Args[i].Text = text
			m.Args[i].Ext = nil
			return
		}
	}
	m.Args = append(m.Args, ExtArg{Name: name, Text: text})
}

// RemoveArg drops the first argument with the given name and reports
// whether one existed.
func (m *MarkupExtension) RemoveArg(name string) bool {
	for i := range m.Args {
		if m.Args[i].Name == name {
			m.Args = append(m.Args[:i], m.Args[i+1:]...)
			return true
		}
	}
	return false
}

// Clone deep-copies the extension and every nested expression.
func (m *MarkupExtension) Clone() *MarkupExtension {
	if m == nil {
		return nil
	}
	cp := &MarkupExtension{Name: m.Name, Args: make([]ExtArg, len(m.Args))}
	for i, a := range m.Args {
		a.Ext = a.Ext.Clone()
		cp.Args[i] = a
	}
	return cp
}

// Nested calls fn for the extension and every nested extension in
// pre-order, argument order.
func (m *MarkupExtension) Nested(fn func(*MarkupExtension)) {
	if m == nil {
		return
	}
	fn(m)
	for i := range m.Args {
		m.Args[i].Ext.Nested(fn)
	}
}
