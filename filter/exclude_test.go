package filter

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestExcludeModules(t *testing.T) {
	t.Run("drops matching modules regardless of IO", func(t *testing.T) {
		g := chainGraph(t)
		pass := &ExcludeModules{Names: []string{"SaveImages"}}
		affected, err := pass.Apply(g, ModeRemove)
		assert.NoError(t, err)

		assert.Equal(t, 1, affected)
		assert.False(t, g.HasNode("Save_3"))
		assert.True(t, g.HasNode("Blur_2"))
	})

	t.Run("unknown names affect nothing", func(t *testing.T) {
		g := chainGraph(t)
		pass := &ExcludeModules{Names: []string{"NoSuchModule"}}
		affected, err := pass.Apply(g, ModeRemove)
		assert.NoError(t, err)
		assert.Equal(t, 0, affected)
	})

	t.Run("mode equivalence", func(t *testing.T) {
		removed := chainGraph(t)
		highlighted := chainGraph(t)
		pass := &ExcludeModules{Names: []string{"Blur"}}

		removeCount, err := pass.Apply(removed, ModeRemove)
		assert.NoError(t, err)
		highlightCount, err := pass.Apply(highlighted, ModeHighlight)
		assert.NoError(t, err)

		assert.Equal(t, removeCount, highlightCount)
		assert.Equal(t, []string{"Blur_2"}, filteredKeys(highlighted))
	})
}
