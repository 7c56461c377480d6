package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aridclown/defold-annotations/internal/domain"
)

func TestMergeModules(t *testing.T) {
	t.Run("concatenates elements of shared namespaces", func(t *testing.T) {
		merged := MergeModules([]*domain.Module{
			{Namespace: "go", Elements: []domain.Element{{Kind: domain.KindFunction, Name: "animate"}}},
			{Namespace: "go", Elements: []domain.Element{{Kind: domain.KindFunction, Name: "get"}}},
		})

		require.Len(t, merged, 1)
		require.Len(t, merged[0].Elements, 2)
		assert.Equal(t, "animate", merged[0].Elements[0].Name)
		assert.Equal(t, "get", merged[0].Elements[1].Name)
	})

	t.Run("keeps the more detailed description", func(t *testing.T) {
		merged := MergeModules([]*domain.Module{
			{Namespace: "go", Description: "short"},
			{Namespace: "go", Description: "a considerably longer description"},
			{Namespace: "go", Description: "tiny"},
		})

		require.Len(t, merged, 1)
		assert.Equal(t, "a considerably longer description", merged[0].Description)
	})

	t.Run("sorts namespaces", func(t *testing.T) {
		merged := MergeModules([]*domain.Module{
			{Namespace: "sys"},
			{Namespace: "buffer"},
			{Namespace: "gui"},
		})

		var order []string
		for _, module := range merged {
			order = append(order, module.Namespace)
		}
		assert.Equal(t, []string{"buffer", "gui", "sys"}, order)
	})

	t.Run("does not mutate its input", func(t *testing.T) {
		first := &domain.Module{Namespace: "go", Elements: []domain.Element{{Kind: domain.KindFunction, Name: "animate"}}}
		second := &domain.Module{Namespace: "go", Elements: []domain.Element{{Kind: domain.KindFunction, Name: "get"}}}

		MergeModules([]*domain.Module{first, second})

		assert.Len(t, first.Elements, 1)
		assert.Len(t, second.Elements, 1)
	})
}
