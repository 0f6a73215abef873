package rules

import (
	"xamlport/engine"
	"xamlport/mapping"
)

// DefaultRegistry assembles the stock rule set around a compiled
// mapping table. Priorities order the passes: namespaces first, then
// type renames, styles, properties, events, addresses, setters and
// bindings, with the unsupported-element report last.
func DefaultRegistry(table *mapping.Table) *engine.Registry {
	reg := engine.NewRegistry()

	reg.MustRegister(
		NewNamespaceRule(table),
		NewTypeRenameRule(table),
		NewStyleSelectorRule(table),
		NewPropertyRenameRule(table),
		NewEventRenameRule(table),
		NewPackUriRule(),
		NewSetterRule(table),
		NewBindingElementNameRule(),
		NewBindingRelativeSourceRule(table),
		NewTriggerLiftRule(table),
		NewTriggerCleanupRule(),
		NewUnsupportedElementRule(),
	)

	return reg
}
