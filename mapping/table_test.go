package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRejectsInvalid(t *testing.T) {
	mf := &File{Types: RenameList{{Source: "A", Target: "B"}, {Source: "B", Target: "C"}}}

	_, err := Compile(mf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mapping")
}

func TestPropertyOwnerPrecedence(t *testing.T) {
	mf := &File{
		Properties: PropertyRenames{
			{Source: "Background", Target: "GenericBackground"},
			{Source: "Background", Owner: "Control", Target: "ControlBackground"},
			{Source: "Background", Owner: "Button", Target: "ButtonBackground"},
		},
	}

	table, err := Compile(mf)
	require.NoError(t, err)

	// Most derived ancestor wins.
	m, ok := table.Property("Background", []string{"Button", "ButtonBase", "Control"})
	require.True(t, ok)
	assert.Equal(t, "ButtonBackground", m.Target)

	// A type matching only the base scope falls through to it.
	m, ok = table.Property("Background", []string{"TextBlock", "Control"})
	require.True(t, ok)
	assert.Equal(t, "ControlBackground", m.Target)

	// No ancestry at all still hits the generic entry.
	m, ok = table.Property("Background", nil)
	require.True(t, ok)
	assert.Equal(t, "GenericBackground", m.Target)

	_, ok = table.Property("Foreground", []string{"Button"})
	assert.False(t, ok)
}

func TestSelectorValueCaseInsensitive(t *testing.T) {
	table := DefaultTable()

	for _, value := range []string{"True", "true", "TRUE"} {
		sel, ok := table.Selector("IsMouseOver", value)
		require.True(t, ok, "value %s", value)
		assert.Equal(t, ":pointerover", sel)
	}

	_, ok := table.Selector("IsMouseOver", "False")
	assert.False(t, ok)
}

func TestTranslateWithoutValues(t *testing.T) {
	m := PropertyRename{Source: "ToolTip", Target: "ToolTip.Tip"}
	assert.Equal(t, "hello", m.Translate("hello"))
}
