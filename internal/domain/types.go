// Package domain contains core domain types shared across the generator.
// These types represent the input module descriptors, declared API elements,
// and the constant/alias model the inference engine operates on.
package domain

// ElementKind tags an API element with its declaration kind.
type ElementKind string

const (
	// KindConstant is a named literal value declared within a namespace.
	KindConstant ElementKind = "constant"
	// KindFunction is a callable declaration with parameters and returns.
	KindFunction ElementKind = "function"
	// KindVariable is a plain typed value declaration.
	KindVariable ElementKind = "variable"
	// KindClass is a table-like declaration with member elements.
	KindClass ElementKind = "class"
	// KindStaticAlias is a fixed alias declaration supplied by the input.
	KindStaticAlias ElementKind = "static-alias"
)

// Module is one input module descriptor. Multiple descriptors may share a
// namespace and are merged before generation.
type Module struct {
	Namespace   string    `json:"namespace"`
	Brief       string    `json:"brief,omitempty"`
	Description string    `json:"description,omitempty"`
	Elements    []Element `json:"elements,omitempty"`
}

// Element is one declared API element. Kind-specific fields are left zero
// for kinds that do not use them.
type Element struct {
	Kind        ElementKind   `json:"kind"`
	Name        string        `json:"name"`
	Brief       string        `json:"brief,omitempty"`
	Description string        `json:"description,omitempty"`

	// Type holds the declared type of variables and the target of
	// static aliases.
	Type string `json:"type,omitempty"`

	// Parameters and Returns apply to functions.
	Parameters []Parameter   `json:"parameters,omitempty"`
	Returns    []ReturnValue `json:"returns,omitempty"`

	// Members apply to classes.
	Members []Element `json:"members,omitempty"`
}

// Parameter is one declared function parameter with its type-token list.
type Parameter struct {
	Name     string   `json:"name"`
	Types    []string `json:"types,omitempty"`
	Doc      string   `json:"doc,omitempty"`
	Optional bool     `json:"optional,omitempty"`
}

// ReturnValue is one declared function return with its type-token list.
type ReturnValue struct {
	Name     string   `json:"name,omitempty"`
	Types    []string `json:"types,omitempty"`
	Doc      string   `json:"doc,omitempty"`
	Optional bool     `json:"optional,omitempty"`
}

// Constant is a registered namespace constant. Identity is
// (Namespace, ShortName); FullName is the dotted form the input declared.
type Constant struct {
	FullName    string
	Namespace   string
	ShortName   string
	Description string

	// RenderedType is the primitive type the constant's field declaration
	// renders with. Defaults to integer and is rewritten at most once by
	// the reference resolver.
	RenderedType string
}

// NewConstant builds a Constant from its declared full name. The second
// return is false when the name lacks a namespace separator, in which case
// the constant is unregistrable.
func NewConstant(fullName, description string) (*Constant, bool) {
	namespace, shortName, ok := SplitFullName(fullName)
	if !ok {
		return nil, false
	}
	return &Constant{
		FullName:     fullName,
		Namespace:    namespace,
		ShortName:    shortName,
		Description:  description,
		RenderedType: INTEGER,
	}, true
}

// AliasGroup is a named union type standing in for a group of related
// constants within one namespace. Identity is (Namespace, Name); registering
// into an existing identity merges members.
type AliasGroup struct {
	Namespace string
	Name      string
	Members   map[string]struct{}
}

// NewAliasGroup creates an empty alias group.
func NewAliasGroup(namespace, name string) *AliasGroup {
	return &AliasGroup{
		Namespace: namespace,
		Name:      name,
		Members:   make(map[string]struct{}),
	}
}

// Add records a member constant by full name. Adding an existing member is
// a no-op.
func (g *AliasGroup) Add(fullName string) {
	g.Members[fullName] = struct{}{}
}

// Has reports whether the constant is a member of this alias.
func (g *AliasGroup) Has(fullName string) bool {
	_, ok := g.Members[fullName]
	return ok
}

// QualifiedName returns the dotted alias name used in rendered signatures,
// e.g. "buffer.VALUE_TYPE".
func (g *AliasGroup) QualifiedName() string {
	return g.Namespace + "." + g.Name
}
