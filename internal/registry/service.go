// Package registry provides the run-scoped constant catalog and alias store.
// One Service value is created per generation run, passed into every engine
// operation, and discarded when the run ends; it is never shared across runs.
package registry

import (
	"github.com/aridclown/defold-annotations/internal/domain"
)

// Service owns the two namespace registries of a generation run.
type Service struct {
	// ordered holds each namespace's constants in first-registration
	// order, used for field rendering.
	ordered map[string][]*domain.Constant

	// constants indexes namespace → short name → constant.
	constants map[string]map[string]*domain.Constant

	// fullNames indexes full name → constant for signature lookups.
	fullNames map[string]*domain.Constant

	// aliases indexes namespace → alias name → group.
	aliases map[string]map[string]*domain.AliasGroup
}

// NewService creates an empty registry service.
func NewService() *Service {
	s := &Service{}
	s.Reset()
	return s
}

// Reset drops all registered constants and aliases. Every generation run
// starts with a reset.
func (s *Service) Reset() {
	s.ordered = make(map[string][]*domain.Constant)
	s.constants = make(map[string]map[string]*domain.Constant)
	s.fullNames = make(map[string]*domain.Constant)
	s.aliases = make(map[string]map[string]*domain.AliasGroup)
}

// Namespaces returns every namespace with at least one registered constant,
// sorted for deterministic iteration.
func (s *Service) Namespaces() []string {
	return domain.SortedKeys(s.ordered)
}
