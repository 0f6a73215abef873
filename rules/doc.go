// Package rules holds the stock conversion rules: namespace and type
// renames, property and event translation, selector styles, trigger
// lifting, and binding and resource-address rewrites. DefaultRegistry
// assembles them around a compiled mapping table.
package rules
