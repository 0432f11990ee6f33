package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/strategy-miner/internal/ast"
)

func TestNewSkipsDuplicateAliases(t *testing.T) {
	c := New([]Signature{
		{Alias: "op", OutputType: ast.TypeSeriesNum},
		{Alias: "op", OutputType: ast.TypeSeriesBool},
	}, nil)

	sig, ok := c.Get("op")
	require.True(t, ok)
	assert.Equal(t, ast.TypeSeriesNum, sig.OutputType, "first registration wins")
	assert.Empty(t, c.LookupByOutputType(ast.TypeSeriesBool))
}

func TestLookupByOutputTypePreservesRegistrationOrder(t *testing.T) {
	c := Default()

	bools := c.LookupByOutputType(ast.TypeSeriesBool)
	require.NotEmpty(t, bools)
	assert.Equal(t, AliasGreaterThan, bools[0].Alias)

	var aliases []string
	for _, s := range bools {
		aliases = append(aliases, s.Alias)
	}
	assert.Contains(t, aliases, AliasCrossAbove)
	assert.Contains(t, aliases, AliasAnd)
}

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()

	inds := c.Indicators()
	require.NotEmpty(t, inds)
	for _, s := range inds {
		assert.Equal(t, ast.TypeSeriesNum, s.OutputType, s.Alias)
		assert.True(t, s.Indicator, s.Alias)
	}

	accs := c.Accessors(ast.TypeSeriesNum)
	require.Len(t, accs, 5)
	for _, s := range accs {
		assert.Zero(t, s.Arity(), s.Alias)
	}

	actions := c.Actions()
	require.Len(t, actions, 2)
	assert.Equal(t, AliasOpenLong, actions[0].Alias)
	assert.Equal(t, AliasOpenShort, actions[1].Alias)
	for _, s := range actions {
		assert.Zero(t, s.Arity(), s.Alias)
	}
}

func TestDefaultMetadataPeriods(t *testing.T) {
	c := Default()

	meta, ok := c.Metadata(AliasSMA)
	require.True(t, ok)
	assert.Equal(t, []int{10, 20, 50, 100, 200}, meta.TypicalIntValues)

	meta, ok = c.Metadata(AliasRSI)
	require.True(t, ok)
	assert.Equal(t, []int{7, 14, 21}, meta.TypicalIntValues)

	_, ok = c.Metadata(AliasClose)
	assert.False(t, ok)
}

func TestGetUnknownAlias(t *testing.T) {
	_, ok := Default().Get("no_such_op")
	assert.False(t, ok)
}
