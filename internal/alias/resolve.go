package alias

import (
	"regexp"
	"strings"

	"github.com/aridclown/defold-annotations/internal/domain"
	"github.com/aridclown/defold-annotations/internal/registry"
)

// constantRefPattern matches dotted constant references inside free-text
// descriptions, e.g. "gui.PROP_POSITION" or the wildcard form
// "gui.MATERIAL_*". Namespace segments are lowercase identifiers; the short
// name is an upper-case token sequence.
var constantRefPattern = regexp.MustCompile(`\b([a-z][a-z0-9_]*(?:\.[a-z][a-z0-9_]*)*)\.([A-Z][A-Z0-9_]*)(\*?)`)

// Resolver rewrites one parameter or return type-list at a time, folding
// referenced constants into alias groups and substituting the alias names
// into the signature.
type Resolver struct {
	registry *registry.Service
}

// NewResolver creates a resolver over the given registry.
func NewResolver(reg *registry.Service) *Resolver {
	return &Resolver{registry: reg}
}

// Resolve rebuilds a declared type-token list. Literal constant references
// and, when the opaque placeholder is present, references scanned from the
// description are grouped per namespace; each group with at least two
// distinct names is folded into an alias (an existing one when the
// constants already belong to a registered group, a freshly computed one
// otherwise). Resolved references are replaced by the alias name and a
// fallback primitive is appended once when any alias was produced.
func (r *Resolver) Resolve(declared []string, description string) []string {
	stripped := make([]string, len(declared))
	for i, token := range declared {
		stripped[i] = domain.StripLiteralMarker(token)
	}

	recorded := make(map[string][]*domain.Constant)
	recordedSet := make(map[string]struct{})
	record := func(c *domain.Constant) {
		if _, dup := recordedSet[c.FullName]; dup {
			return
		}
		recordedSet[c.FullName] = struct{}{}
		recorded[c.Namespace] = append(recorded[c.Namespace], c)
	}

	hasPlaceholder := false
	for _, token := range stripped {
		if token == domain.CONSTANT {
			hasPlaceholder = true
			continue
		}
		if c, ok := r.registry.LookupFullName(token); ok {
			record(c)
		}
	}

	if hasPlaceholder && description != "" {
		r.scanDescription(description, record)
	}

	var aliasNames []string
	aliasSeen := make(map[string]struct{})
	addAlias := func(qualified string) {
		if _, dup := aliasSeen[qualified]; dup {
			return
		}
		aliasSeen[qualified] = struct{}{}
		aliasNames = append(aliasNames, qualified)
	}

	// tokenAlias maps a resolved constant full name to the qualified alias
	// that replaces it in the rebuilt list.
	tokenAlias := make(map[string]string)
	var resolved []*domain.Constant

	for _, namespace := range domain.SortedKeys(recorded) {
		constants := recorded[namespace]
		if countShortNames(constants) < 2 {
			continue
		}

		// A constant already claimed by a registered alias (typically from
		// the proactive pass) resolves to that alias before any common-run
		// computation.
		var unclaimed []*domain.Constant
		for _, c := range constants {
			if group, ok := r.registry.AliasFor(namespace, c.FullName); ok {
				addAlias(group.QualifiedName())
				tokenAlias[c.FullName] = group.QualifiedName()
				resolved = append(resolved, c)
				continue
			}
			unclaimed = append(unclaimed, c)
		}

		if len(unclaimed) < 2 {
			continue
		}

		shortNames := make([]string, len(unclaimed))
		members := make([]string, len(unclaimed))
		for i, c := range unclaimed {
			shortNames[i] = c.ShortName
			members[i] = c.FullName
		}

		run := domain.CommonTokenRun(shortNames)
		if run == "" {
			// No alias can be synthesized; the literal references stay
			// individual tokens for the validity check.
			continue
		}

		group := r.registry.RegisterAlias(namespace, run, members)
		if group == nil {
			continue
		}
		addAlias(group.QualifiedName())
		for _, c := range unclaimed {
			tokenAlias[c.FullName] = group.QualifiedName()
			resolved = append(resolved, c)
		}
	}

	// Rebuild the list: substitute aliases in place, drop the placeholder
	// once an alias was produced, then append aliases not yet present.
	var rebuilt []string
	present := make(map[string]struct{})
	appendToken := func(token string) {
		if _, dup := present[token]; dup {
			return
		}
		present[token] = struct{}{}
		rebuilt = append(rebuilt, token)
	}

	for _, token := range stripped {
		if token == domain.CONSTANT && len(aliasNames) > 0 {
			continue
		}
		if qualified, ok := tokenAlias[token]; ok {
			appendToken(qualified)
			continue
		}
		appendToken(token)
	}
	for _, qualified := range aliasNames {
		appendToken(qualified)
	}

	if len(aliasNames) > 0 {
		fallback := fallbackPrimitive(stripped)
		appendToken(fallback)
		for _, c := range resolved {
			r.registry.SetRenderedType(c.FullName, fallback)
		}
	}

	return rebuilt
}

// scanDescription records every constant reference found in the free text.
// A wildcard reference expands to every currently-registered constant of
// the namespace whose short name starts with the prefix.
func (r *Resolver) scanDescription(description string, record func(*domain.Constant)) {
	for _, match := range constantRefPattern.FindAllStringSubmatch(description, -1) {
		namespace, shortName, wildcard := match[1], match[2], match[3]
		if wildcard == "*" {
			for _, c := range r.registry.ConstantsOf(namespace) {
				if strings.HasPrefix(c.ShortName, shortName) {
					record(c)
				}
			}
			continue
		}
		if c, ok := r.registry.LookupConstant(namespace, shortName); ok {
			record(c)
		}
	}
}

// fallbackPrimitive selects the non-constant branch of a resolved union:
// string when any declared type was string, hash when any was hash,
// integer otherwise.
func fallbackPrimitive(declared []string) string {
	sawHash := false
	for _, token := range declared {
		switch token {
		case domain.STRING:
			return domain.STRING
		case domain.HASH:
			sawHash = true
		}
	}
	if sawHash {
		return domain.HASH
	}
	return domain.INTEGER
}

func countShortNames(constants []*domain.Constant) int {
	set := make(map[string]struct{}, len(constants))
	for _, c := range constants {
		set[c.ShortName] = struct{}{}
	}
	return len(set)
}
