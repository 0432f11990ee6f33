package catalog

import "github.com/your-org/strategy-miner/internal/ast"

// Built-in operation aliases. The evaluator dispatches on these, so the
// names are part of the contract between catalog and evaluator.
const (
	AliasGreaterThan = "greater_than"
	AliasLessThan    = "less_than"
	AliasCrossAbove  = "cross_above"
	AliasCrossBelow  = "cross_below"
	AliasAnd         = "and"
	AliasOr          = "or"

	AliasAdd = "add"
	AliasSub = "sub"
	AliasMul = "mul"
	AliasDiv = "div"

	AliasSMA     = "sma"
	AliasEMA     = "ema"
	AliasRSI     = "rsi"
	AliasHighest = "highest"
	AliasLowest  = "lowest"

	AliasOpen   = "open"
	AliasHigh   = "high"
	AliasLow    = "low"
	AliasClose  = "close"
	AliasVolume = "volume"

	AliasOpenLong  = "open_long"
	AliasOpenShort = "open_short"
)

// Default builds the built-in trading catalog: comparison and logic
// operations over series, arithmetic combinators, the standard indicator
// set with typical period lists, OHLCV accessors and the two terminal
// trading directives.
func Default() *Catalog {
	num := ast.TypeSeriesNum
	boolean := ast.TypeSeriesBool

	sigs := []Signature{
		// Boolean-series producers.
		{Alias: AliasGreaterThan, InputTypes: []ast.Type{num, num}, OutputType: boolean},
		{Alias: AliasLessThan, InputTypes: []ast.Type{num, num}, OutputType: boolean},
		{Alias: AliasCrossAbove, InputTypes: []ast.Type{num, num}, OutputType: boolean},
		{Alias: AliasCrossBelow, InputTypes: []ast.Type{num, num}, OutputType: boolean},
		{Alias: AliasAnd, InputTypes: []ast.Type{boolean, boolean}, OutputType: boolean},
		{Alias: AliasOr, InputTypes: []ast.Type{boolean, boolean}, OutputType: boolean},

		// Arithmetic combinators.
		{Alias: AliasAdd, InputTypes: []ast.Type{num, num}, OutputType: num},
		{Alias: AliasSub, InputTypes: []ast.Type{num, num}, OutputType: num},
		{Alias: AliasMul, InputTypes: []ast.Type{num, num}, OutputType: num},
		{Alias: AliasDiv, InputTypes: []ast.Type{num, num}, OutputType: num},

		// Indicators.
		{Alias: AliasSMA, InputTypes: []ast.Type{num, ast.TypeInt}, OutputType: num, Indicator: true},
		{Alias: AliasEMA, InputTypes: []ast.Type{num, ast.TypeInt}, OutputType: num, Indicator: true},
		{Alias: AliasRSI, InputTypes: []ast.Type{num, ast.TypeInt}, OutputType: num, Indicator: true},
		{Alias: AliasHighest, InputTypes: []ast.Type{num, ast.TypeInt}, OutputType: num, Indicator: true},
		{Alias: AliasLowest, InputTypes: []ast.Type{num, ast.TypeInt}, OutputType: num, Indicator: true},

		// Raw data accessors.
		{Alias: AliasOpen, OutputType: num, Accessor: true},
		{Alias: AliasHigh, OutputType: num, Accessor: true},
		{Alias: AliasLow, OutputType: num, Accessor: true},
		{Alias: AliasClose, OutputType: num, Accessor: true},
		{Alias: AliasVolume, OutputType: num, Accessor: true},

		// Trading directives.
		{Alias: AliasOpenLong, OutputType: ast.TypeAction},
		{Alias: AliasOpenShort, OutputType: ast.TypeAction},
	}

	metadata := map[string]Metadata{
		AliasSMA:     {TypicalIntValues: []int{10, 20, 50, 100, 200}},
		AliasEMA:     {TypicalIntValues: []int{9, 12, 21, 26, 50}},
		AliasRSI:     {TypicalIntValues: []int{7, 14, 21}},
		AliasHighest: {TypicalIntValues: []int{10, 20, 55}},
		AliasLowest:  {TypicalIntValues: []int{10, 20, 55}},
	}

	return New(sigs, metadata)
}
