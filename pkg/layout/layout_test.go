package layout

import (
	"testing"

	"github.com/fnuworsu/pgquery/internal/graph"
	"github.com/fnuworsu/pgquery/pkg/query"
	"github.com/stretchr/testify/assert"
)

func TestBuild_LongestPathLayering(t *testing.T) {
	paths := []query.PathResult{
		{
			Nodes: map[string]string{"a": "A", "b": "B", "c": "C"},
			Edges: []graph.EdgeTriple{
				{Src: "A", Type: "R", Dst: "B"},
				{Src: "B", Type: "R", Dst: "C"},
			},
		},
	}

	l := Build(paths)
	assert.Equal(t, 0, l.Layer("A"))
	assert.Equal(t, 1, l.Layer("B"))
	assert.Equal(t, 2, l.Layer("C"))
	assert.Equal(t, 2, l.MaxDepth())
	assert.Equal(t, []string{"A"}, l.Roots())
	assert.ElementsMatch(t, []string{"C"}, l.NodesInLayer(2))
}

func TestBuild_VariableLayerIsMedian(t *testing.T) {
	paths := []query.PathResult{
		{
			Nodes: map[string]string{"a": "A1", "b": "B1"},
			Edges: []graph.EdgeTriple{{Src: "A1", Type: "R", Dst: "B1"}},
		},
		{
			Nodes: map[string]string{"a": "A2", "b": "B2"},
			Edges: []graph.EdgeTriple{
				{Src: "A2", Type: "R", Dst: "M"},
				{Src: "M", Type: "R", Dst: "B2"},
			},
		},
	}

	l := Build(paths)
	assert.Equal(t, 0, l.VariableLayer("a"))
	// b is bound to B1 (layer 1) and B2 (layer 2); median of [1,2] rounds down.
	assert.Equal(t, 1, l.VariableLayer("b"))
	assert.Equal(t, -1, l.VariableLayer("missing"))
}

func TestBuild_UnboundNodeIsMinusOne(t *testing.T) {
	l := Build(nil)
	assert.Equal(t, -1, l.Layer("ghost"))
	assert.Equal(t, 0, l.MaxDepth())
}
