package evaluator

import (
	"math"

	"github.com/your-org/strategy-miner/internal/ast"
	"github.com/your-org/strategy-miner/internal/catalog"
	"github.com/your-org/strategy-miner/internal/datastore"
	"github.com/your-org/strategy-miner/internal/indicator"
)

// seriesEval compiles expression subtrees into concrete series over one
// candle set. Comparisons involving NaN (indicator warm-up) yield false.
type seriesEval struct {
	candles datastore.Series
}

func (se *seriesEval) evalBool(n *ast.Node) ([]bool, error) {
	if n.Kind == ast.KindConst {
		if n.ConstType != ast.TypeBool {
			return nil, evalErrorf("constant %s where boolean series expected", n)
		}
		out := make([]bool, len(se.candles))
		for i := range out {
			out[i] = n.BoolVal
		}
		return out, nil
	}

	switch n.Alias {
	case catalog.AliasGreaterThan, catalog.AliasLessThan, catalog.AliasCrossAbove, catalog.AliasCrossBelow:
		if len(n.Children) != 2 {
			return nil, evalErrorf("%s expects 2 arguments, got %d", n.Alias, len(n.Children))
		}
		a, err := se.evalNum(n.Children[0])
		if err != nil {
			return nil, err
		}
		b, err := se.evalNum(n.Children[1])
		if err != nil {
			return nil, err
		}
		return compare(n.Alias, a, b), nil

	case catalog.AliasAnd, catalog.AliasOr:
		if len(n.Children) != 2 {
			return nil, evalErrorf("%s expects 2 arguments, got %d", n.Alias, len(n.Children))
		}
		a, err := se.evalBool(n.Children[0])
		if err != nil {
			return nil, err
		}
		b, err := se.evalBool(n.Children[1])
		if err != nil {
			return nil, err
		}
		out := make([]bool, len(a))
		for i := range out {
			if n.Alias == catalog.AliasAnd {
				out[i] = a[i] && b[i]
			} else {
				out[i] = a[i] || b[i]
			}
		}
		return out, nil

	default:
		return nil, evalErrorf("unknown boolean operation %q", n.Alias)
	}
}

func (se *seriesEval) evalNum(n *ast.Node) ([]float64, error) {
	if n.Kind == ast.KindConst {
		var v float64
		switch n.ConstType {
		case ast.TypeInt:
			v = float64(n.IntVal)
		case ast.TypeFloat:
			v = n.FloatVal
		default:
			return nil, evalErrorf("constant %s where numeric series expected", n)
		}
		out := make([]float64, len(se.candles))
		for i := range out {
			out[i] = v
		}
		return out, nil
	}

	switch n.Alias {
	case catalog.AliasOpen, catalog.AliasHigh, catalog.AliasLow, catalog.AliasClose, catalog.AliasVolume:
		return se.candles.Column(n.Alias), nil

	case catalog.AliasAdd, catalog.AliasSub, catalog.AliasMul, catalog.AliasDiv:
		if len(n.Children) != 2 {
			return nil, evalErrorf("%s expects 2 arguments, got %d", n.Alias, len(n.Children))
		}
		a, err := se.evalNum(n.Children[0])
		if err != nil {
			return nil, err
		}
		b, err := se.evalNum(n.Children[1])
		if err != nil {
			return nil, err
		}
		return arith(n.Alias, a, b), nil

	case catalog.AliasSMA, catalog.AliasEMA, catalog.AliasRSI, catalog.AliasHighest, catalog.AliasLowest:
		if len(n.Children) != 2 {
			return nil, evalErrorf("%s expects 2 arguments, got %d", n.Alias, len(n.Children))
		}
		src, err := se.evalNum(n.Children[0])
		if err != nil {
			return nil, err
		}
		period, ok := intConst(n.Children[1])
		if !ok {
			return nil, evalErrorf("%s period must be an integer literal", n.Alias)
		}
		switch n.Alias {
		case catalog.AliasSMA:
			return indicator.SMA(src, period), nil
		case catalog.AliasEMA:
			return indicator.EMA(src, period), nil
		case catalog.AliasRSI:
			return indicator.RSI(src, period), nil
		case catalog.AliasHighest:
			return indicator.Highest(src, period), nil
		default:
			return indicator.Lowest(src, period), nil
		}

	default:
		return nil, evalErrorf("unknown numeric operation %q", n.Alias)
	}
}

func intConst(n *ast.Node) (int, bool) {
	if n == nil || n.Kind != ast.KindConst || n.ConstType != ast.TypeInt {
		return 0, false
	}
	return n.IntVal, true
}

func compare(alias string, a, b []float64) []bool {
	out := make([]bool, len(a))
	for i := range out {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		switch alias {
		case catalog.AliasGreaterThan:
			out[i] = a[i] > b[i]
		case catalog.AliasLessThan:
			out[i] = a[i] < b[i]
		case catalog.AliasCrossAbove:
			out[i] = i > 0 && !math.IsNaN(a[i-1]) && !math.IsNaN(b[i-1]) &&
				a[i-1] <= b[i-1] && a[i] > b[i]
		case catalog.AliasCrossBelow:
			out[i] = i > 0 && !math.IsNaN(a[i-1]) && !math.IsNaN(b[i-1]) &&
				a[i-1] >= b[i-1] && a[i] < b[i]
		}
	}
	return out
}

func arith(alias string, a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		switch alias {
		case catalog.AliasAdd:
			out[i] = a[i] + b[i]
		case catalog.AliasSub:
			out[i] = a[i] - b[i]
		case catalog.AliasMul:
			out[i] = a[i] * b[i]
		case catalog.AliasDiv:
			if b[i] == 0 {
				out[i] = math.NaN()
			} else {
				out[i] = a[i] / b[i]
			}
		}
	}
	return out
}
