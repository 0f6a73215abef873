// Package mapping loads and validates the YAML rename tables that
// drive a conversion: namespace URI rewrites, type renames, property
// and event renames with optional value translation, and trigger
// condition to selector pseudo-class equivalences.
//
// Key capabilities:
//   - Compact and explicit YAML forms for rename entries
//   - Structural validation via struct tags plus semantic checks
//     (duplicate sources, chained renames)
//   - A compiled lookup Table with owner-scoped property resolution
package mapping
