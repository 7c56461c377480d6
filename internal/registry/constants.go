// Package registry - constant catalog operations.
package registry

import (
	"github.com/aridclown/defold-annotations/internal/domain"
)

// RegisterConstant stores a constant under its (namespace, short name)
// identity. The first registration for an identity wins; later duplicates
// are ignored.
func (s *Service) RegisterConstant(c *domain.Constant) {
	byShort, ok := s.constants[c.Namespace]
	if !ok {
		byShort = make(map[string]*domain.Constant)
		s.constants[c.Namespace] = byShort
	}

	if _, exists := byShort[c.ShortName]; exists {
		return
	}

	byShort[c.ShortName] = c
	s.fullNames[c.FullName] = c
	s.ordered[c.Namespace] = append(s.ordered[c.Namespace], c)
}

// LookupConstant finds a constant by its identity.
func (s *Service) LookupConstant(namespace, shortName string) (*domain.Constant, bool) {
	c, ok := s.constants[namespace][shortName]
	return c, ok
}

// LookupFullName finds a constant by its declared full name.
func (s *Service) LookupFullName(fullName string) (*domain.Constant, bool) {
	c, ok := s.fullNames[fullName]
	return c, ok
}

// ConstantsOf returns the namespace's constants in first-registration order.
func (s *Service) ConstantsOf(namespace string) []*domain.Constant {
	return s.ordered[namespace]
}

// SetRenderedType rewrites the rendered primitive type of a constant. The
// write applies at most once: a constant still carrying the default keeps
// the first non-default type it is given. Unknown constants are a no-op.
func (s *Service) SetRenderedType(fullName, typeName string) {
	c, ok := s.fullNames[fullName]
	if !ok {
		return
	}
	if c.RenderedType != domain.INTEGER {
		return
	}
	c.RenderedType = typeName
}
