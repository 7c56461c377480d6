package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Contains(t, cfg.KnownTypes, "integer")
	assert.Contains(t, cfg.KnownTypes, "hash")
	assert.Contains(t, cfg.KnownClasses, "vector3")
	assert.Equal(t, "unknown", cfg.UnknownType)
	assert.False(t, cfg.Strict)
}

func TestReplaceToken(t *testing.T) {
	t.Run("global pattern replacement", func(t *testing.T) {
		cfg := Default()
		assert.Equal(t, "number", cfg.ReplaceToken(RoleParam, "x", "float"))
		assert.Equal(t, "integer", cfg.ReplaceToken(RoleReturn, "", "int"))
	})

	t.Run("unmatched token passes through", func(t *testing.T) {
		cfg := Default()
		assert.Equal(t, "vector3", cfg.ReplaceToken(RoleParam, "pos", "vector3"))
	})

	t.Run("local replacement wins over global", func(t *testing.T) {
		cfg := Default()
		cfg.LocalReplacements[ReplacementKey{Role: RoleParam, Token: "float", Param: "x"}] = "integer"

		assert.Equal(t, "integer", cfg.ReplaceToken(RoleParam, "x", "float"))
		// other parameters still use the global table
		assert.Equal(t, "number", cfg.ReplaceToken(RoleParam, "y", "float"))
	})
}

func TestRenameIdentifier(t *testing.T) {
	cfg := Default()
	cfg.LocalRenames["gui.animate"] = map[string]string{"repeat": "loop"}

	assert.Equal(t, "repeating", cfg.RenameIdentifier("go.animate", "repeat"))
	assert.Equal(t, "loop", cfg.RenameIdentifier("gui.animate", "repeat"))
	assert.Equal(t, "node", cfg.RenameIdentifier("gui.animate", "node"))
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "unknown", cfg.UnknownType)
	})

	t.Run("file merges over defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `
knownClasses: [emitter]
knownAliases: [gui.EASING]
renames:
  goto: jump
replacements:
  "^vec$": vector3
localReplacements:
  - role: param
    token: table
    param: options
    to: any
ignore: [internal]
unknownType: unresolved
strict: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Contains(t, cfg.KnownClasses, "emitter")
		assert.Contains(t, cfg.KnownClasses, "vector3") // defaults kept
		assert.Contains(t, cfg.KnownAliases, "gui.EASING")
		assert.Equal(t, "jump", cfg.RenameIdentifier("any", "goto"))
		assert.Equal(t, "vector3", cfg.ReplaceToken(RoleParam, "v", "vec"))
		assert.Equal(t, "any", cfg.ReplaceToken(RoleParam, "options", "table"))
		assert.Contains(t, cfg.IgnoredNamespaces, "internal")
		assert.Equal(t, "unresolved", cfg.UnknownType)
		assert.True(t, cfg.Strict)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
