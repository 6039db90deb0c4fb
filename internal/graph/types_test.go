package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProperties_Clone(t *testing.T) {
	p := Properties{"name": "Alice"}
	c := p.Clone()
	c["name"] = "Bob"

	assert.Equal(t, "Alice", p["name"])
	assert.Equal(t, "Bob", c["name"])
}

func TestProperties_CloneNil(t *testing.T) {
	var p Properties
	assert.Nil(t, p.Clone())
}

func TestNode_Property(t *testing.T) {
	n := &Node{ID: "a1", Properties: Properties{"age": int64(30)}}

	age, ok := n.Property("age")
	assert.True(t, ok)
	assert.Equal(t, int64(30), age)

	_, ok = n.Property("missing")
	assert.False(t, ok)
}

func TestNode_Clone(t *testing.T) {
	n := &Node{ID: "a1", Type: "Person", Label: "Alice", Properties: Properties{"age": int64(30)}}
	c := n.Clone()

	c.Properties["age"] = int64(31)

	assert.Equal(t, int64(30), n.Properties["age"])
	assert.Equal(t, "a1", c.ID)
}
