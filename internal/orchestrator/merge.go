package orchestrator

import (
	"github.com/aridclown/defold-annotations/internal/domain"
)

// MergeModules folds descriptors sharing a namespace into one module per
// namespace: elements concatenate in input order and the more detailed of
// two differing descriptions wins. The result is sorted by namespace, the
// order namespaces render in.
func MergeModules(modules []*domain.Module) []*domain.Module {
	byNamespace := make(map[string]*domain.Module, len(modules))

	for _, module := range modules {
		existing, ok := byNamespace[module.Namespace]
		if !ok {
			merged := *module
			merged.Elements = append([]domain.Element(nil), module.Elements...)
			byNamespace[module.Namespace] = &merged
			continue
		}

		existing.Elements = append(existing.Elements, module.Elements...)
		existing.Brief = moreDetailed(existing.Brief, module.Brief)
		existing.Description = moreDetailed(existing.Description, module.Description)
	}

	merged := make([]*domain.Module, 0, len(byNamespace))
	for _, namespace := range domain.SortedKeys(byNamespace) {
		merged = append(merged, byNamespace[namespace])
	}

	return merged
}

// moreDetailed keeps the longer of two descriptions.
func moreDetailed(a, b string) string {
	if len(b) > len(a) {
		return b
	}
	return a
}
