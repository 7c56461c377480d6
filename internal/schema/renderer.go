// Package schema normalizes type tokens and renders the final union type
// of a signature element: callable syntax resolution, replacement tables,
// validity checking against the configured grammar, and deduplicated joins.
package schema

import (
	"fmt"
	"strings"

	"github.com/aridclown/defold-annotations/internal/config"
	"github.com/aridclown/defold-annotations/internal/console"
	"github.com/aridclown/defold-annotations/internal/domain"
	"github.com/aridclown/defold-annotations/internal/registry"
)

// Renderer validates and renders type-token lists against the configured
// grammar and the run's alias registry.
type Renderer struct {
	cfg      *config.Config
	registry *registry.Service
}

// NewRenderer creates a renderer over the given configuration and registry.
func NewRenderer(cfg *config.Config, reg *registry.Service) *Renderer {
	return &Renderer{cfg: cfg, registry: reg}
}

// Render normalizes every token and joins the surviving set into a union.
// Unknown tokens degrade to the configured sentinel with a diagnostic; in
// strict mode the first unknown token aborts the run instead. The element
// name only labels diagnostics.
func (r *Renderer) Render(role config.Role, element, paramName string, tokens []string) (string, error) {
	var union []string
	seen := make(map[string]struct{})

	for _, token := range tokens {
		normalized := ResolveCallable(token)
		normalized = r.cfg.ReplaceToken(role, paramName, normalized)

		if !r.isKnown(normalized) {
			if r.cfg.Strict {
				return "", fmt.Errorf("unknown type %q in %s %s of %s", token, role, paramName, element)
			}
			console.Logger.Debug("unknown type %q in %s %s of %s, substituting %s",
				token, role, paramName, element, r.cfg.UnknownType)
			normalized = r.cfg.UnknownType
		} else if marker, ok := r.cfg.GenericsMarkers[normalized]; ok {
			normalized += marker
		}

		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		union = append(union, normalized)
	}

	if len(union) == 0 {
		return r.cfg.UnknownType, nil
	}

	return strings.Join(union, domain.UnionSeparator), nil
}

// isKnown reports whether a normalized token is part of the accepted
// grammar: a configured primitive or class, a registered or configured
// alias name, or callable syntax.
func (r *Renderer) isKnown(token string) bool {
	if _, ok := r.cfg.KnownTypes[token]; ok {
		return true
	}
	if _, ok := r.cfg.KnownClasses[token]; ok {
		return true
	}
	if _, ok := r.cfg.KnownAliases[token]; ok {
		return true
	}
	if r.registry.HasAlias(token) {
		return true
	}
	return IsCallable(token)
}
