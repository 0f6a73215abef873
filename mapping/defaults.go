package mapping

import (
	_ "embed"
	"fmt"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Default returns the built-in mapping table covering the common
// renames: the presentation namespace swap, ListView to ListBox,
// Visibility to IsVisible with value translation, mouse to pointer
// events, and the trigger condition pseudo-classes. The result is a
// fresh copy the caller may modify.
func Default() *File {
	mf, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("mapping: embedded defaults are invalid: %v", err))
	}

	return mf
}
