package xamlport_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xamlport"
)

// TestConvertExampleFiles runs the full conversion over every document
// under examples/ and checks none of them trips an error-level
// finding. Warnings are expected where the source leans on features
// the target dialect lacks.
func TestConvertExampleFiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("examples", "*.xaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			require.NoError(t, err)

			res, err := xamlport.Convert(src, filepath.Base(path))
			require.NoError(t, err)

			assert.NotEmpty(t, res.Output)
			assert.False(t, res.Diagnostics.HasErrors(), "errors: %v", res.Diagnostics.Errors)
			assert.Positive(t, res.Stats.Total())

			t.Logf("%s:\n%s", path, res.Stats.Summary())
		})
	}
}
