package validator

import (
	"math"

	"github.com/your-org/strategy-miner/internal/ast"
)

// Diversity rejects trees that use the same operation repeatedly with
// near-identical numeric parameters. It gates freshly decoded trees and
// hall-of-fame admission alike.
type Diversity struct {
	minDifference float64
}

// NewDiversity returns a diversity validator with the given minimum
// pairwise parameter distance.
func NewDiversity(minDifference float64) *Diversity {
	return &Diversity{minDifference: minDifference}
}

// ParamProfile maps an operation alias to the primary numeric parameter
// value observed at each of its call sites. The primary parameter is the
// first scalar (int or float) child of a call.
type ParamProfile map[string][]float64

// Profile walks the tree and collects its parameter profile.
func Profile(n *ast.Node) ParamProfile {
	p := make(ParamProfile)
	n.Walk(func(node *ast.Node) bool {
		if node.Kind != ast.KindCall {
			return true
		}
		for _, ch := range node.Children {
			if ch.Kind != ast.KindConst {
				continue
			}
			switch ch.ConstType {
			case ast.TypeInt:
				p[node.Alias] = append(p[node.Alias], float64(ch.IntVal))
			case ast.TypeFloat:
				p[node.Alias] = append(p[node.Alias], ch.FloatVal)
			default:
				continue
			}
			break
		}
		return true
	})
	return p
}

// Validate reports whether every operation used more than once in the
// tree keeps its parameter values at least minDifference apart. A single
// occurrence is trivially diverse.
func (d *Diversity) Validate(n *ast.Node) bool {
	for _, values := range Profile(n) {
		if !pairwiseDistinct(values, d.minDifference) {
			return false
		}
	}
	return true
}

// ValidateRule applies the parameter-distance rule to the condition
// subtree. Actions carry no parameters.
func (d *Diversity) ValidateRule(r *ast.Rule) bool {
	if r == nil || r.Condition == nil {
		return false
	}
	return d.Validate(r.Condition)
}

// Distinct reports whether two parameter profiles stay mutually diverse:
// for every alias present in both, each cross-pair of parameter values
// must differ by at least minDifference. Used by the hall of fame to
// compare candidate strategies against archived members.
func (d *Diversity) Distinct(a, b ParamProfile) bool {
	for alias, avals := range a {
		bvals, ok := b[alias]
		if !ok {
			continue
		}
		for _, av := range avals {
			for _, bv := range bvals {
				if math.Abs(av-bv) < d.minDifference {
					return false
				}
			}
		}
	}
	return true
}

func pairwiseDistinct(values []float64, minDiff float64) bool {
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			if math.Abs(values[i]-values[j]) < minDiff {
				return false
			}
		}
	}
	return true
}
