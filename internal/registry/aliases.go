// Package registry - alias store operations.
package registry

import (
	"sort"

	"github.com/aridclown/defold-annotations/internal/domain"
)

// RegisterAlias stores an alias under its (namespace, name) identity,
// merging members into an existing identity rather than replacing it. A new
// alias requires at least two members; merges into an existing alias accept
// any member count. Returns the stored group, or nil when the registration
// was rejected.
func (s *Service) RegisterAlias(namespace, name string, members []string) *domain.AliasGroup {
	byName, ok := s.aliases[namespace]
	if !ok {
		byName = make(map[string]*domain.AliasGroup)
		s.aliases[namespace] = byName
	}

	group, exists := byName[name]
	if !exists {
		if len(distinct(members)) < 2 {
			return nil
		}
		group = domain.NewAliasGroup(namespace, name)
		byName[name] = group
	}

	for _, member := range members {
		group.Add(member)
	}

	return group
}

// LookupAlias finds an alias group by its identity.
func (s *Service) LookupAlias(namespace, name string) (*domain.AliasGroup, bool) {
	group, ok := s.aliases[namespace][name]
	return group, ok
}

// AliasesOf returns the namespace's alias groups sorted by alias name.
func (s *Service) AliasesOf(namespace string) []*domain.AliasGroup {
	byName := s.aliases[namespace]
	groups := make([]*domain.AliasGroup, 0, len(byName))
	for _, name := range domain.SortedKeys(byName) {
		groups = append(groups, byName[name])
	}
	return groups
}

// AliasFor returns the alias group the constant already belongs to within
// its namespace, if any. When several groups contain the constant the
// lexicographically first alias name wins, keeping lookups deterministic.
func (s *Service) AliasFor(namespace, fullName string) (*domain.AliasGroup, bool) {
	byName := s.aliases[namespace]
	for _, name := range domain.SortedKeys(byName) {
		if byName[name].Has(fullName) {
			return byName[name], true
		}
	}
	return nil, false
}

// HasAlias reports whether the qualified name refers to a registered alias
// in any namespace.
func (s *Service) HasAlias(qualifiedName string) bool {
	namespace, name, ok := domain.SplitFullName(qualifiedName)
	if !ok {
		return false
	}
	_, found := s.aliases[namespace][name]
	return found
}

// distinct deduplicates and sorts member names.
func distinct(members []string) []string {
	set := make(map[string]struct{}, len(members))
	for _, member := range members {
		set[member] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for member := range set {
		out = append(out, member)
	}
	sort.Strings(out)
	return out
}
