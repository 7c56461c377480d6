package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aridclown/defold-annotations/internal/domain"
	"github.com/aridclown/defold-annotations/internal/registry"
)

func registerConstants(t *testing.T, reg *registry.Service, fullNames ...string) {
	t.Helper()
	for _, fullName := range fullNames {
		c, ok := domain.NewConstant(fullName, "")
		require.True(t, ok, "constant %s should be registrable", fullName)
		reg.RegisterConstant(c)
	}
}

func memberNames(g *domain.AliasGroup) []string {
	return domain.SortedKeys(g.Members)
}

func TestInferencer_GroupsUnreferencedConstants(t *testing.T) {
	reg := registry.NewService()
	registerConstants(t, reg, "colors.RGB_RED", "colors.RGB_GREEN", "colors.RGB_BLUE")

	NewInferencer(reg).Run()

	groups := reg.AliasesOf("colors")
	require.Len(t, groups, 1)
	assert.Equal(t, "RGB", groups[0].Name)
	assert.Equal(t, []string{"colors.RGB_BLUE", "colors.RGB_GREEN", "colors.RGB_RED"}, memberNames(groups[0]))
}

func TestInferencer_MultiLevelNamespace(t *testing.T) {
	reg := registry.NewService()
	registerConstants(t, reg, "foo.bar.SETTING_A", "foo.bar.SETTING_B")

	NewInferencer(reg).Run()

	group, ok := reg.LookupAlias("foo.bar", "SETTING")
	require.True(t, ok)
	assert.Equal(t, "foo.bar.SETTING", group.QualifiedName())
	assert.Equal(t, []string{"foo.bar.SETTING_A", "foo.bar.SETTING_B"}, memberNames(group))
}

func TestInferencer_LongerPrefixWins(t *testing.T) {
	reg := registry.NewService()
	registerConstants(t, reg, "buffer.VALUE_TYPE_UINT8", "buffer.VALUE_TYPE_FLOAT32")

	NewInferencer(reg).Run()

	groups := reg.AliasesOf("buffer")
	require.Len(t, groups, 1)
	assert.Equal(t, "VALUE_TYPE", groups[0].Name)

	_, ok := reg.LookupAlias("buffer", "VALUE")
	assert.False(t, ok, "the shorter prefix must never be registered")
}

func TestInferencer_SpecificGroupLeavesRestToShorterPrefix(t *testing.T) {
	reg := registry.NewService()
	registerConstants(t, reg,
		"gui.PROP_COLOR_R", "gui.PROP_COLOR_G",
		"gui.PROP_POSITION", "gui.PROP_SCALE",
	)

	NewInferencer(reg).Run()

	color, ok := reg.LookupAlias("gui", "PROP_COLOR")
	require.True(t, ok)
	assert.Equal(t, []string{"gui.PROP_COLOR_G", "gui.PROP_COLOR_R"}, memberNames(color))

	prop, ok := reg.LookupAlias("gui", "PROP")
	require.True(t, ok)
	assert.Equal(t, []string{"gui.PROP_POSITION", "gui.PROP_SCALE"}, memberNames(prop),
		"constants claimed by the more specific prefix must not reappear")
}

func TestInferencer_NoBoundaryCoincidence(t *testing.T) {
	reg := registry.NewService()
	registerConstants(t, reg, "sys.VALUE_A", "sys.VALUES_B")

	NewInferencer(reg).Run()

	// "VALUE" must not claim "VALUES_B"; neither prefix reaches 2 matches.
	assert.Empty(t, reg.AliasesOf("sys"))
}

func TestInferencer_SingleConstantNoAlias(t *testing.T) {
	reg := registry.NewService()
	registerConstants(t, reg, "sound.GROUP_MASTER")

	NewInferencer(reg).Run()

	assert.Empty(t, reg.AliasesOf("sound"))
}

func TestInferencer_TieBreakDeterministic(t *testing.T) {
	// PROP_FILL and PROP_SIZE carry the same token count, so only the
	// lexicographic tie-break orders them. Both must claim their pair and
	// leave nothing for the shorter PROP prefix, on every run.
	build := func() *registry.Service {
		reg := registry.NewService()
		registerConstants(t, reg,
			"gui.PROP_SIZE_X", "gui.PROP_SIZE_Y",
			"gui.PROP_FILL_X", "gui.PROP_FILL_Y",
		)
		return reg
	}

	snapshot := func(reg *registry.Service) map[string][]string {
		out := make(map[string][]string)
		for _, group := range reg.AliasesOf("gui") {
			out[group.Name] = memberNames(group)
		}
		return out
	}

	want := map[string][]string{
		"PROP_FILL": {"gui.PROP_FILL_X", "gui.PROP_FILL_Y"},
		"PROP_SIZE": {"gui.PROP_SIZE_X", "gui.PROP_SIZE_Y"},
	}

	for run := 0; run < 5; run++ {
		reg := build()
		NewInferencer(reg).Run()
		assert.Equal(t, want, snapshot(reg), "run %d", run)

		_, ok := reg.LookupAlias("gui", "PROP")
		assert.False(t, ok, "equal-length candidates claim everything; PROP must stay unregistered")
	}
}

func TestInferencer_DeterministicAndIdempotent(t *testing.T) {
	build := func() *registry.Service {
		reg := registry.NewService()
		registerConstants(t, reg,
			"render.STATE_DEPTH_TEST", "render.STATE_STENCIL_TEST",
			"render.FORMAT_RGBA", "render.FORMAT_DEPTH",
			"render.BUFFER_COLOR_BIT", "render.BUFFER_DEPTH_BIT",
		)
		return reg
	}

	snapshot := func(reg *registry.Service) map[string][]string {
		out := make(map[string][]string)
		for _, group := range reg.AliasesOf("render") {
			out[group.Name] = memberNames(group)
		}
		return out
	}

	first := build()
	NewInferencer(first).Run()
	second := build()
	NewInferencer(second).Run()
	assert.Equal(t, snapshot(first), snapshot(second))

	// Re-running on an unchanged constant set must not change the partition.
	before := snapshot(first)
	NewInferencer(first).Run()
	assert.Equal(t, before, snapshot(first))
}
