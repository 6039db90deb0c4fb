package graphio

import (
	"testing"

	"github.com/fnuworsu/pgquery/internal/graph"
	"github.com/fnuworsu/pgquery/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	g := storage.NewGraph()
	g.AddNode(&graph.Node{ID: "a1", Type: "Person", Label: "Alice", Properties: graph.Properties{"age": int64(30)}})
	g.AddNode(&graph.Node{ID: "b1", Type: "Person", Label: "Bob"})
	require.NoError(t, g.AddEdge("a1", "KNOWS", "b1"))

	data, err := Encode(g)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, g.NodeCount(), decoded.NodeCount())
	assert.Equal(t, g.EdgeCount(), decoded.EdgeCount())

	n, ok := decoded.GetNode("a1")
	require.True(t, ok)
	assert.Equal(t, "Alice", n.Label)
	age, ok := n.Property("age")
	require.True(t, ok)
	assert.EqualValues(t, 30, age)

	assert.True(t, decoded.HasEdge("a1", "KNOWS", "b1"))
}

func TestDecode_DuplicateEdgesCollapse(t *testing.T) {
	data := []byte(`{
		"nodes": [{"id":"a1","type":"Person","label":"Alice"},{"id":"b1","type":"Person","label":"Bob"}],
		"edges": [{"src":"a1","type":"KNOWS","dst":"b1"},{"src":"a1","type":"KNOWS","dst":"b1"}]
	}`)

	g, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestDecode_UnknownNodeFailsWholeDecode(t *testing.T) {
	data := []byte(`{
		"nodes": [{"id":"a1","type":"Person","label":"Alice"}],
		"edges": [{"src":"a1","type":"KNOWS","dst":"missing"}]
	}`)

	_, err := Decode(data)
	assert.ErrorIs(t, err, storage.ErrUnknownNode)
}
