// Package alias implements the two alias-discovery passes: the proactive
// prefix inference that partitions a namespace's constants up front, and the
// reactive resolver that rewrites one type signature at a time.
package alias

import (
	"sort"
	"strings"

	"github.com/aridclown/defold-annotations/internal/domain"
	"github.com/aridclown/defold-annotations/internal/registry"
)

// Inferencer partitions each namespace's constants into alias groups based
// on shared leading name tokens. It runs exactly once per generation run,
// before any namespace is rendered.
type Inferencer struct {
	registry *registry.Service
}

// NewInferencer creates an inferencer over the given registry.
func NewInferencer(reg *registry.Service) *Inferencer {
	return &Inferencer{registry: reg}
}

// Run infers aliases for every namespace with registered constants.
func (i *Inferencer) Run() {
	for _, namespace := range i.registry.Namespaces() {
		i.inferNamespace(namespace)
	}
}

// prefixCandidate is one potential alias prefix with the constants whose
// short names extend it past a token boundary.
type prefixCandidate struct {
	prefix     string
	tokenCount int
	members    []*domain.Constant
}

func (i *Inferencer) inferNamespace(namespace string) {
	constants := i.registry.ConstantsOf(namespace)

	// Candidate prefixes: every proper leading token run of every name.
	prefixes := make(map[string]int)
	for _, c := range constants {
		tokens := domain.Tokens(c.ShortName)
		for length := 1; length < len(tokens); length++ {
			prefix := strings.Join(tokens[:length], domain.TokenSeparator)
			prefixes[prefix] = length
		}
	}

	// Collect matches per prefix. The prefix must be followed by a token
	// separator in the matching name, so "VALUE" never claims "VALUES_X".
	candidates := make([]prefixCandidate, 0, len(prefixes))
	for _, prefix := range domain.SortedKeys(prefixes) {
		var members []*domain.Constant
		seen := make(map[string]struct{})
		for _, c := range constants {
			if !strings.HasPrefix(c.ShortName, prefix+domain.TokenSeparator) {
				continue
			}
			if _, dup := seen[c.FullName]; dup {
				continue
			}
			seen[c.FullName] = struct{}{}
			members = append(members, c)
		}
		if len(members) < 2 {
			continue
		}
		candidates = append(candidates, prefixCandidate{
			prefix:     prefix,
			tokenCount: prefixes[prefix],
			members:    members,
		})
	}

	// Longer prefixes first so the most specific grouping claims its
	// constants before a shorter prefix can. Equal lengths order
	// lexicographically for reproducible output.
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].tokenCount != candidates[b].tokenCount {
			return candidates[a].tokenCount > candidates[b].tokenCount
		}
		return candidates[a].prefix < candidates[b].prefix
	})

	claimed := make(map[string]struct{})
	for _, candidate := range candidates {
		var free []string
		for _, c := range candidate.members {
			if _, taken := claimed[c.FullName]; !taken {
				free = append(free, c.FullName)
			}
		}
		if len(free) < 2 {
			continue
		}
		i.registry.RegisterAlias(namespace, candidate.prefix, free)
		for _, fullName := range free {
			claimed[fullName] = struct{}{}
		}
	}
}
