package schema

import "strings"

const (
	callablePrefix = "function("
	funcTypePrefix = "fun("
)

// ResolveCallable rewrites declared callable syntax into the single-token
// function-type form: "function(a: T): R" → "fun(a: T): R" and the empty
// parameter form "function()" → "fun()". Bare "function" is a primitive
// and passes through untouched.
func ResolveCallable(token string) string {
	if !strings.HasPrefix(token, callablePrefix) {
		return token
	}
	return "fun" + strings.TrimPrefix(token, "function")
}

// IsCallable reports whether a token is in function-type form.
func IsCallable(token string) bool {
	return strings.HasPrefix(token, funcTypePrefix)
}
