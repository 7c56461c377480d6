package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aridclown/defold-annotations/internal/domain"
)

func mustConstant(t *testing.T, fullName string) *domain.Constant {
	t.Helper()
	c, ok := domain.NewConstant(fullName, "")
	require.True(t, ok, "constant %s should be registrable", fullName)
	return c
}

func TestRegisterConstant_FirstWins(t *testing.T) {
	s := NewService()

	first := mustConstant(t, "gui.PROP_POSITION")
	first.Description = "original"
	duplicate := mustConstant(t, "gui.PROP_POSITION")
	duplicate.Description = "duplicate"

	s.RegisterConstant(first)
	s.RegisterConstant(duplicate)

	got, ok := s.LookupConstant("gui", "PROP_POSITION")
	require.True(t, ok)
	assert.Equal(t, "original", got.Description)
	assert.Len(t, s.ConstantsOf("gui"), 1)
}

func TestConstantsOf_RegistrationOrder(t *testing.T) {
	s := NewService()
	for _, name := range []string{"colors.RGB_RED", "colors.RGB_GREEN", "colors.RGB_BLUE"} {
		s.RegisterConstant(mustConstant(t, name))
	}

	var order []string
	for _, c := range s.ConstantsOf("colors") {
		order = append(order, c.ShortName)
	}
	assert.Equal(t, []string{"RGB_RED", "RGB_GREEN", "RGB_BLUE"}, order)
}

func TestSetRenderedType(t *testing.T) {
	t.Run("unknown constant is a no-op", func(t *testing.T) {
		s := NewService()
		s.SetRenderedType("gui.MISSING_CONST", domain.STRING)
	})

	t.Run("writes once", func(t *testing.T) {
		s := NewService()
		s.RegisterConstant(mustConstant(t, "gui.PROP_POSITION"))

		s.SetRenderedType("gui.PROP_POSITION", domain.STRING)
		s.SetRenderedType("gui.PROP_POSITION", domain.HASH)

		c, _ := s.LookupConstant("gui", "PROP_POSITION")
		assert.Equal(t, domain.STRING, c.RenderedType)
	})
}

func TestRegisterAlias(t *testing.T) {
	t.Run("requires two members for a new alias", func(t *testing.T) {
		s := NewService()
		group := s.RegisterAlias("gui", "PROP", []string{"gui.PROP_POSITION"})
		assert.Nil(t, group)
		_, ok := s.LookupAlias("gui", "PROP")
		assert.False(t, ok)
	})

	t.Run("merges into existing identity", func(t *testing.T) {
		s := NewService()
		s.RegisterAlias("gui", "PROP", []string{"gui.PROP_POSITION", "gui.PROP_SCALE"})
		group := s.RegisterAlias("gui", "PROP", []string{"gui.PROP_ROTATION"})

		require.NotNil(t, group)
		assert.Len(t, group.Members, 3)
		assert.True(t, group.Has("gui.PROP_ROTATION"))
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		s := NewService()
		members := []string{"gui.PROP_POSITION", "gui.PROP_SCALE"}
		s.RegisterAlias("gui", "PROP", members)
		group := s.RegisterAlias("gui", "PROP", members)
		assert.Len(t, group.Members, 2)
	})
}

func TestAliasFor(t *testing.T) {
	s := NewService()
	s.RegisterAlias("buffer", "VALUE_TYPE", []string{"buffer.VALUE_TYPE_UINT8", "buffer.VALUE_TYPE_FLOAT32"})

	group, ok := s.AliasFor("buffer", "buffer.VALUE_TYPE_UINT8")
	require.True(t, ok)
	assert.Equal(t, "VALUE_TYPE", group.Name)

	_, ok = s.AliasFor("buffer", "buffer.OPTION_BITS")
	assert.False(t, ok)
}

func TestHasAlias(t *testing.T) {
	s := NewService()
	s.RegisterAlias("foo.bar", "SETTING", []string{"foo.bar.SETTING_A", "foo.bar.SETTING_B"})

	assert.True(t, s.HasAlias("foo.bar.SETTING"))
	assert.False(t, s.HasAlias("foo.bar.OTHER"))
	assert.False(t, s.HasAlias("SETTING"))
}

func TestReset(t *testing.T) {
	s := NewService()
	s.RegisterConstant(mustConstant(t, "gui.PROP_POSITION"))
	s.RegisterAlias("gui", "PROP", []string{"gui.PROP_POSITION", "gui.PROP_SCALE"})

	s.Reset()

	assert.Empty(t, s.Namespaces())
	_, ok := s.LookupConstant("gui", "PROP_POSITION")
	assert.False(t, ok)
	assert.False(t, s.HasAlias("gui.PROP"))
}
