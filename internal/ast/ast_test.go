package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCondition() *Node {
	sma := NewCall("sma", NewCall("close"), NewIntConst(10))
	return NewCall("greater_than", sma, NewCall("close"))
}

func TestNodeString(t *testing.T) {
	assert.Equal(t, "greater_than(sma(close, 10), close)", sampleCondition().String())
	assert.Equal(t, "close", NewCall("close").String())
	assert.Equal(t, "42", NewIntConst(42).String())
	assert.Equal(t, "1.5", NewFloatConst(1.5).String())
	assert.Equal(t, "true", NewBoolConst(true).String())
	assert.Equal(t, "<nil>", (*Node)(nil).String())
}

func TestRuleString(t *testing.T) {
	r := &Rule{Condition: sampleCondition(), Action: NewCall("open_long")}
	assert.Equal(t, "IF greater_than(sma(close, 10), close) THEN open_long", r.String())
	assert.Equal(t, "<nil>", (*Rule)(nil).String())
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, NewCall("close").Depth())
	assert.Equal(t, 0, NewIntConst(5).Depth())
	assert.Equal(t, 2, sampleCondition().Depth())
	assert.Equal(t, 0, (*Node)(nil).Depth())
}

func TestCloneIsDeep(t *testing.T) {
	orig := sampleCondition()
	clone := orig.Clone()

	clone.Children[0].Children[1].IntVal = 99
	clone.Alias = "less_than"

	assert.Equal(t, 10, orig.Children[0].Children[1].IntVal)
	assert.Equal(t, "greater_than", orig.Alias)

	assert.Nil(t, (*Node)(nil).Clone())
	assert.Nil(t, (*Rule)(nil).Clone())
}

func TestWalkOrderAndEarlyStop(t *testing.T) {
	var visited []string
	done := sampleCondition().Walk(func(n *Node) bool {
		if n.Kind == KindCall {
			visited = append(visited, n.Alias)
		} else {
			visited = append(visited, n.String())
		}
		return true
	})
	require.True(t, done)
	assert.Equal(t, []string{"greater_than", "sma", "close", "10", "close"}, visited)

	// Stop as soon as sma is reached.
	visited = visited[:0]
	done = sampleCondition().Walk(func(n *Node) bool {
		visited = append(visited, n.Alias)
		return n.Alias != "sma"
	})
	assert.False(t, done)
	assert.Equal(t, []string{"greater_than", "sma"}, visited)
}
