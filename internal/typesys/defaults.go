package typesys

import (
	_ "embed"
	"fmt"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Default returns the built-in catalog describing the source dialect's
// control hierarchy.
func Default() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("typesys: embedded catalog is invalid: %v", err))
	}

	return c
}
