package domain

import (
	"sort"
	"strings"
)

const (
	// INTEGER represent a integer value.
	INTEGER = "integer"
	// STRING represent a string value.
	STRING = "string"
	// HASH represent a hashed string value.
	HASH = "hash"
	// NUMBER represent a floating point value.
	NUMBER = "number"
	// BOOLEAN represent a boolean value.
	BOOLEAN = "boolean"
	// TABLE represent a table value.
	TABLE = "table"
	// NIL represent a empty value.
	NIL = "nil"
	// FUNCTION represent a function value.
	FUNCTION = "function"
	// ANY represent a any value.
	ANY = "any"
	// CONSTANT is the opaque placeholder the input uses for values drawn
	// from an unspecified constant group.
	CONSTANT = "constant"
)

const (
	// LiteralMarker wraps a constant reference that the input explicitly
	// marks as literal, e.g. `gui.PROP_POSITION`.
	LiteralMarker = "`"

	// TokenSeparator delimits the tokens of a constant's short name.
	TokenSeparator = "_"

	// UnionSeparator joins the members of a rendered type union.
	UnionSeparator = "|"
)

// SplitFullName splits a dotted constant name at its last separator into
// namespace and short name. Multi-level namespaces stay intact:
// "foo.bar.SETTING_A" → ("foo.bar", "SETTING_A", true). Names without a
// separator are not splittable.
func SplitFullName(fullName string) (namespace, shortName string, ok bool) {
	lastDot := strings.LastIndex(fullName, ".")
	if lastDot <= 0 || lastDot == len(fullName)-1 {
		return "", "", false
	}
	return fullName[:lastDot], fullName[lastDot+1:], true
}

// Tokens splits a constant short name into its underscore-delimited tokens.
func Tokens(shortName string) []string {
	return strings.Split(shortName, TokenSeparator)
}

// StripLiteralMarker removes the explicit-literal marker from a type token.
// Unmarked tokens are returned unchanged.
func StripLiteralMarker(token string) string {
	if len(token) >= 2 && strings.HasPrefix(token, LiteralMarker) && strings.HasSuffix(token, LiteralMarker) {
		return token[1 : len(token)-1]
	}
	return token
}

// CommonTokenRun returns the longest run of leading tokens shared by every
// short name, joined with the token separator. An empty string means the
// names share no leading token.
func CommonTokenRun(shortNames []string) string {
	if len(shortNames) == 0 {
		return ""
	}

	run := Tokens(shortNames[0])
	for _, name := range shortNames[1:] {
		tokens := Tokens(name)
		if len(tokens) < len(run) {
			run = run[:len(tokens)]
		}
		for i := range run {
			if run[i] != tokens[i] {
				run = run[:i]
				break
			}
		}
		if len(run) == 0 {
			return ""
		}
	}

	return strings.Join(run, TokenSeparator)
}

// SortedKeys materializes and sorts the keys of a string-keyed map, as
// required for deterministic iteration over unordered key sets.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
