// Package config holds the read-only generation tables: known type names,
// identifier renames, type replacements, and diagnostics behavior. Values
// are consumed by the engine but never mutated by it.
package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"sigs.k8s.io/yaml"
)

// Role distinguishes parameter and return positions in local replacement keys.
type Role string

const (
	// RoleParam marks a function parameter type list.
	RoleParam Role = "param"
	// RoleReturn marks a function return type list.
	RoleReturn Role = "return"
)

// ReplacementKey addresses one signature element in the local replacement
// table. Param is empty for return positions.
type ReplacementKey struct {
	Role  Role
	Token string
	Param string
}

// Config is the full set of generation tables. The zero value is unusable;
// start from Default.
type Config struct {
	// KnownTypes are the primitive type names accepted as-is.
	KnownTypes map[string]struct{}

	// KnownClasses are the scripting API class names accepted as-is.
	KnownClasses map[string]struct{}

	// KnownAliases are qualified alias names supplied by configuration
	// rather than discovered by inference.
	KnownAliases map[string]struct{}

	// GlobalRenames maps identifiers (typically reserved words) to safe
	// replacements, applied to every element.
	GlobalRenames map[string]string

	// LocalRenames maps element name → parameter name → replacement and
	// wins over GlobalRenames.
	LocalRenames map[string]map[string]string

	// GlobalReplacements rewrite type tokens by regular expression. They
	// apply in sorted pattern order; the first match wins.
	GlobalReplacements map[string]string

	// LocalReplacements rewrite one signature element's token and win
	// over GlobalReplacements.
	LocalReplacements map[ReplacementKey]string

	// GenericsMarkers append a generic parameter list to class tokens,
	// e.g. "array" → "<T>".
	GenericsMarkers map[string]string

	// IgnoredNamespaces are dropped from generation entirely.
	IgnoredNamespaces map[string]struct{}

	// UnknownType is the sentinel substituted for unvalidatable tokens.
	UnknownType string

	// Strict aborts the run on the first unknown token instead of
	// substituting the sentinel.
	Strict bool

	compiledReplacements []compiledReplacement
}

type compiledReplacement struct {
	pattern     *regexp.Regexp
	replacement string
}

// Default returns the built-in generation tables.
func Default() *Config {
	cfg := &Config{
		KnownTypes: setOf(
			"integer", "string", "hash", "number", "boolean",
			"table", "nil", "function", "any", "userdata",
		),
		KnownClasses: setOf(
			"vector3", "vector4", "quaternion", "matrix4", "url",
			"node", "buffer", "bufferstream", "resource", "texture",
		),
		KnownAliases: map[string]struct{}{},
		GlobalRenames: map[string]string{
			// Lua reserved words are not valid parameter names.
			"repeat":   "repeating",
			"end":      "finish",
			"function": "fn",
			"local":    "loc",
			"nil":      "null",
		},
		LocalRenames: map[string]map[string]string{},
		GlobalReplacements: map[string]string{
			"^float$":  "number",
			"^double$": "number",
			"^int$":    "integer",
			"^bool$":   "boolean",
			"^quat$":   "quaternion",
			"^object$": "table",
		},
		LocalReplacements: map[ReplacementKey]string{},
		GenericsMarkers:   map[string]string{},
		IgnoredNamespaces: map[string]struct{}{},
		UnknownType:       "unknown",
	}
	return cfg
}

// fileConfig is the YAML shape of a configuration file. Entries merge over
// the defaults; they never clear them.
type fileConfig struct {
	KnownTypes         []string          `json:"knownTypes,omitempty"`
	KnownClasses       []string          `json:"knownClasses,omitempty"`
	KnownAliases       []string          `json:"knownAliases,omitempty"`
	GlobalRenames      map[string]string `json:"renames,omitempty"`
	LocalRenames       []localRename     `json:"localRenames,omitempty"`
	GlobalReplacements map[string]string `json:"replacements,omitempty"`
	LocalReplacements  []localReplace    `json:"localReplacements,omitempty"`
	GenericsMarkers    map[string]string `json:"generics,omitempty"`
	IgnoredNamespaces  []string          `json:"ignore,omitempty"`
	UnknownType        string            `json:"unknownType,omitempty"`
	Strict             *bool             `json:"strict,omitempty"`
}

type localRename struct {
	Element string `json:"element"`
	Param   string `json:"param"`
	To      string `json:"to"`
}

type localReplace struct {
	Role  string `json:"role"`
	Token string `json:"token"`
	Param string `json:"param,omitempty"`
	To    string `json:"to"`
}

// Load reads a YAML configuration file and merges it over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	for _, name := range file.KnownTypes {
		cfg.KnownTypes[name] = struct{}{}
	}
	for _, name := range file.KnownClasses {
		cfg.KnownClasses[name] = struct{}{}
	}
	for _, name := range file.KnownAliases {
		cfg.KnownAliases[name] = struct{}{}
	}
	for old, renamed := range file.GlobalRenames {
		cfg.GlobalRenames[old] = renamed
	}
	for _, r := range file.LocalRenames {
		if cfg.LocalRenames[r.Element] == nil {
			cfg.LocalRenames[r.Element] = make(map[string]string)
		}
		cfg.LocalRenames[r.Element][r.Param] = r.To
	}
	for pattern, replacement := range file.GlobalReplacements {
		cfg.GlobalReplacements[pattern] = replacement
	}
	for _, r := range file.LocalReplacements {
		key := ReplacementKey{Role: Role(r.Role), Token: r.Token, Param: r.Param}
		cfg.LocalReplacements[key] = r.To
	}
	for class, marker := range file.GenericsMarkers {
		cfg.GenericsMarkers[class] = marker
	}
	for _, namespace := range file.IgnoredNamespaces {
		cfg.IgnoredNamespaces[namespace] = struct{}{}
	}
	if file.UnknownType != "" {
		cfg.UnknownType = file.UnknownType
	}
	if file.Strict != nil {
		cfg.Strict = *file.Strict
	}

	return cfg, nil
}

// ReplaceToken applies the replacement tables to one type token. The local
// table wins over the global pattern table; unmatched tokens are returned
// unchanged.
func (c *Config) ReplaceToken(role Role, paramName, token string) string {
	if replacement, ok := c.LocalReplacements[ReplacementKey{Role: role, Token: token, Param: paramName}]; ok {
		return replacement
	}

	for _, cr := range c.replacements() {
		if cr.pattern.MatchString(token) {
			return cr.pattern.ReplaceAllString(token, cr.replacement)
		}
	}

	return token
}

// RenameIdentifier applies the rename tables to a parameter name within the
// named element. The element-local table wins.
func (c *Config) RenameIdentifier(element, name string) string {
	if local, ok := c.LocalRenames[element]; ok {
		if renamed, ok := local[name]; ok {
			return renamed
		}
	}
	if renamed, ok := c.GlobalRenames[name]; ok {
		return renamed
	}
	return name
}

// replacements lazily compiles the global pattern table in sorted pattern
// order for deterministic application. Invalid patterns are skipped.
func (c *Config) replacements() []compiledReplacement {
	if c.compiledReplacements != nil {
		return c.compiledReplacements
	}

	patterns := make([]string, 0, len(c.GlobalReplacements))
	for pattern := range c.GlobalReplacements {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	compiled := make([]compiledReplacement, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		compiled = append(compiled, compiledReplacement{
			pattern:     re,
			replacement: c.GlobalReplacements[pattern],
		})
	}

	c.compiledReplacements = compiled
	return compiled
}

func setOf(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
