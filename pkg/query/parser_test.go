package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleNode(t *testing.T) {
	pat, err := Parse(`u:Person`)
	require.NoError(t, err)
	require.Len(t, pat.Nodes, 1)
	assert.Equal(t, "u", pat.Nodes[0].Variable)
	assert.Equal(t, "Person", pat.Nodes[0].Type)
	assert.Empty(t, pat.Edges)
}

func TestParse_LabelFilter(t *testing.T) {
	pat, err := Parse(`u:Person{label~Admin}`)
	require.NoError(t, err)
	assert.True(t, pat.Nodes[0].HasLabel)
	assert.Equal(t, "Admin", pat.Nodes[0].LabelFilter)
}

func TestParse_ForwardEdge(t *testing.T) {
	pat, err := Parse(`u:A-[:KNOWS]->v:B`)
	require.NoError(t, err)
	require.Len(t, pat.Edges, 1)
	assert.Equal(t, DirectionForward, pat.Edges[0].Direction)
	assert.Equal(t, []string{"KNOWS"}, pat.Edges[0].Types)
	require.Len(t, pat.Nodes, 2)
	assert.Equal(t, "v", pat.Nodes[1].Variable)
}

func TestParse_BackwardEdge(t *testing.T) {
	pat, err := Parse(`u<-[:MANAGES]-v`)
	require.NoError(t, err)
	assert.Equal(t, DirectionBackward, pat.Edges[0].Direction)
}

func TestParse_UndirectedEdge(t *testing.T) {
	pat, err := Parse(`u-[:KNOWS]-v`)
	require.NoError(t, err)
	assert.Equal(t, DirectionAny, pat.Edges[0].Direction)
}

func TestParse_BareShorthandEdges(t *testing.T) {
	pat, err := Parse(`u->v`)
	require.NoError(t, err)
	assert.Equal(t, DirectionForward, pat.Edges[0].Direction)
	assert.Empty(t, pat.Edges[0].Types)

	pat, err = Parse(`u--v`)
	require.NoError(t, err)
	assert.Equal(t, DirectionAny, pat.Edges[0].Direction)

	pat, err = Parse(`u<-v`)
	require.NoError(t, err)
	assert.Equal(t, DirectionBackward, pat.Edges[0].Direction)
}

func TestParse_EdgeTypeAlternation(t *testing.T) {
	pat, err := Parse(`u-[:A|B|C]->v`)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, pat.Edges[0].Types)
}

func TestParse_EdgeVariable(t *testing.T) {
	pat, err := Parse(`u-[r:KNOWS]->v`)
	require.NoError(t, err)
	assert.Equal(t, "r", pat.Edges[0].Variable)
}

func TestParse_MultiSegmentChain(t *testing.T) {
	pat, err := Parse(`a:A-[:X]->b:B-[:Y]->c:C`)
	require.NoError(t, err)
	require.Len(t, pat.Nodes, 3)
	require.Len(t, pat.Edges, 2)
}

func TestParse_VariableLengthExactQuantifier(t *testing.T) {
	pat, err := Parse(`u-[:R*3]->v`)
	require.NoError(t, err)
	edge := pat.Edges[0]
	assert.True(t, edge.VariableLength)
	assert.Equal(t, 3, edge.MinHops)
	assert.Equal(t, 3, edge.MaxHops)
}

func TestParse_VariableLengthRangeQuantifier(t *testing.T) {
	pat, err := Parse(`u-[:R*1..3]->v`)
	require.NoError(t, err)
	edge := pat.Edges[0]
	assert.Equal(t, 1, edge.MinHops)
	assert.Equal(t, 3, edge.MaxHops)
}

func TestParse_VariableLengthOpenUpperBound(t *testing.T) {
	pat, err := Parse(`u-[:R*2..]->v`)
	require.NoError(t, err)
	edge := pat.Edges[0]
	assert.Equal(t, 2, edge.MinHops)
	assert.Equal(t, DefaultMaxHops, edge.MaxHops)
}

func TestParse_VariableLengthOpenLowerBound(t *testing.T) {
	pat, err := Parse(`u-[:R*..2]->v`)
	require.NoError(t, err)
	edge := pat.Edges[0]
	assert.Equal(t, 1, edge.MinHops)
	assert.Equal(t, 2, edge.MaxHops)
}

func TestParse_BareStarQuantifier(t *testing.T) {
	pat, err := Parse(`u-[:R*]->v`)
	require.NoError(t, err)
	edge := pat.Edges[0]
	assert.Equal(t, 1, edge.MinHops)
	assert.Equal(t, DefaultMaxHops, edge.MaxHops)
}

func TestParse_InvalidQuantifierRange(t *testing.T) {
	_, err := Parse(`u-[:R*5..2]->v`)
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParse_WhereComparison(t *testing.T) {
	pat, err := Parse(`u:Person WHERE u.age > 30`)
	require.NoError(t, err)
	require.NotNil(t, pat.Where)
	cmp, ok := pat.Where.(*Comparison)
	require.True(t, ok)
	assert.Equal(t, ">", cmp.Operator)
}

func TestParse_WhereAndOrNotPrecedence(t *testing.T) {
	pat, err := Parse(`u:Person WHERE u.age > 30 AND u.age < 40 OR NOT u.active = true`)
	require.NoError(t, err)
	top, ok := pat.Where.(*OrPredicate)
	require.True(t, ok)
	_, ok = top.Left.(*AndPredicate)
	assert.True(t, ok)
	_, ok = top.Right.(*NotPredicate)
	assert.True(t, ok)
}

func TestParse_WhereStringOp(t *testing.T) {
	pat, err := Parse(`u:Person WHERE u.name STARTS WITH "Al"`)
	require.NoError(t, err)
	op, ok := pat.Where.(*StringOp)
	require.True(t, ok)
	assert.Equal(t, "STARTS WITH", op.Operator)
}

func TestParse_WhereTypeOfCall(t *testing.T) {
	pat, err := Parse(`u-[r]->v WHERE type(r) = "KNOWS"`)
	require.NoError(t, err)
	cmp, ok := pat.Where.(*Comparison)
	require.True(t, ok)
	call, ok := cmp.Left.(*TypeOfCall)
	require.True(t, ok)
	assert.Equal(t, "r", call.EdgeVar)
}

func TestParse_WhereParenthesizedExpression(t *testing.T) {
	pat, err := Parse(`u:Person WHERE (u.age > 30 OR u.age < 10) AND u.active = true`)
	require.NoError(t, err)
	top, ok := pat.Where.(*AndPredicate)
	require.True(t, ok)
	_, ok = top.Left.(*OrPredicate)
	assert.True(t, ok)
}

func TestParse_MatchKeywordOptional(t *testing.T) {
	pat1, err := Parse(`MATCH u:Person`)
	require.NoError(t, err)
	pat2, err := Parse(`u:Person`)
	require.NoError(t, err)
	assert.Equal(t, pat1.Nodes, pat2.Nodes)
}

func TestParse_TrailingGarbageIsAnError(t *testing.T) {
	_, err := Parse(`u:Person v:Other`)
	assert.Error(t, err)
}
