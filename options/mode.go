// Package options defines the conversion knobs shared by the engine and the CLI.
package options

import "fmt"

// Mode selects the transformation strategy an engine stage runs under.
type Mode int

const (
	// ModeStructural operates on the raw tag/attribute view only. Fast,
	// preserves source formatting, and never consults resolved type
	// information.
	ModeStructural Mode = iota
	// ModeTyped requires the resolved type layer on every node it rewrites
	// and fails fast when the document does not carry it.
	ModeTyped
	// ModeHybrid prefers structural rewriting and supplements it with
	// typed-informed rewriting where the type layer is present, tolerating
	// its absence with a warning.
	ModeHybrid
)

// String returns the flag-style name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeStructural:
		return "structural"
	case ModeTyped:
		return "typed"
	case ModeHybrid:
		return "hybrid"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a flag-style name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "structural":
		return ModeStructural, nil
	case "typed":
		return ModeTyped, nil
	case "hybrid", "":
		return ModeHybrid, nil
	default:
		return ModeHybrid, fmt.Errorf("unknown mode %q (expected structural, typed, or hybrid)", s)
	}
}

// UsesTypes reports whether the mode ever consults the resolved type layer.
func (m Mode) UsesTypes() bool {
	return m == ModeTyped || m == ModeHybrid
}
