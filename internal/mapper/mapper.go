// Package mapper decodes genomes into type-correct strategy trees.
//
// Decoding is a pure function of (genome, catalog, max depth): the same
// genome always yields the same tree. Genes are consumed in a fixed
// depth-first, left-to-right order, and every branch decision maps one
// gene through Consumer.Choose, so the traversal order itself is part of
// the determinism contract.
package mapper

import (
	"fmt"

	"github.com/your-org/strategy-miner/internal/ast"
	"github.com/your-org/strategy-miner/internal/catalog"
	"github.com/your-org/strategy-miner/internal/genome"
)

// Generic parameter candidates used when an operation carries no metadata.
// Deliberately small, domain-reasonable sets: unconstrained integer ranges
// produce pathological indicator periods.
var (
	defaultIntCandidates   = []int{5, 10, 14, 20, 30, 50, 100, 200}
	defaultFloatCandidates = []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0}
)

// GenerationError reports that the catalog has no operation producing a
// required output type. This indicates a misconfigured catalog and is
// fatal to the run, not to a single individual.
type GenerationError struct {
	Required ast.Type
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("catalog has no operations producing %s", e.Required)
}

// Mapper synthesizes strategy trees from genomes.
type Mapper struct {
	cat      *catalog.Catalog
	maxDepth int
}

// New returns a mapper over the given catalog. maxDepth bounds recursion:
// at that depth only terminal productions are emitted.
func New(cat *catalog.Catalog, maxDepth int) *Mapper {
	return &Mapper{cat: cat, maxDepth: maxDepth}
}

// CreateStrategy decodes one genome into a Rule. The condition subtree is
// built first with desired type boolean-series, then the action directive
// is chosen. Identical genomes always produce identical rules.
func (m *Mapper) CreateStrategy(g genome.Genome) (*ast.Rule, error) {
	c := genome.NewConsumer(g)

	cond, err := m.build(c, ast.TypeSeriesBool, 0)
	if err != nil {
		return nil, err
	}

	actions := m.cat.Actions()
	if len(actions) == 0 {
		return nil, &GenerationError{Required: ast.TypeAction}
	}
	action := ast.NewCall(actions[c.Choose(len(actions))].Alias)

	return &ast.Rule{Condition: cond, Action: action}, nil
}

// build synthesizes a subtree of the desired type. The depth ceiling check
// comes first and is unconditional; it is the sole termination guarantee.
func (m *Mapper) build(c *genome.Consumer, desired ast.Type, depth int) (*ast.Node, error) {
	if depth >= m.maxDepth {
		return m.terminal(c, desired), nil
	}

	switch desired {
	case ast.TypeSeriesBool:
		return m.buildBool(c, depth)
	case ast.TypeSeriesNum:
		return m.buildNum(c, depth)
	case ast.TypeInt:
		return ast.NewIntConst(chooseInt(c, defaultIntCandidates)), nil
	case ast.TypeFloat:
		return ast.NewFloatConst(chooseFloat(c, defaultFloatCandidates)), nil
	default:
		return m.terminal(c, desired), nil
	}
}

// buildBool picks among all boolean-series producers. An empty set is a
// configuration error: synthesis must not silently substitute another
// type.
func (m *Mapper) buildBool(c *genome.Consumer, depth int) (*ast.Node, error) {
	ops := m.cat.LookupByOutputType(ast.TypeSeriesBool)
	if len(ops) == 0 {
		return nil, &GenerationError{Required: ast.TypeSeriesBool}
	}
	sig := ops[c.Choose(len(ops))]
	return m.buildCall(c, sig, depth)
}

// buildNum makes a three-way branch: 0 indicator lookup, 1 raw data
// accessor, 2 binary arithmetic. Degenerate catalogs fall through to the
// next branch rather than failing.
func (m *Mapper) buildNum(c *genome.Consumer, depth int) (*ast.Node, error) {
	switch c.Choose(3) {
	case 0:
		if inds := m.cat.Indicators(); len(inds) > 0 {
			return m.buildCall(c, inds[c.Choose(len(inds))], depth)
		}
		return m.accessorOrLiteral(c), nil
	case 1:
		return m.accessorOrLiteral(c), nil
	default:
		ops := m.arithmeticOps()
		if len(ops) == 0 {
			return m.accessorOrLiteral(c), nil
		}
		return m.buildCall(c, ops[c.Choose(len(ops))], depth)
	}
}

// buildCall fills every typed argument slot of sig in order at depth+1.
func (m *Mapper) buildCall(c *genome.Consumer, sig catalog.Signature, depth int) (*ast.Node, error) {
	children := make([]*ast.Node, 0, sig.Arity())
	for _, argType := range sig.InputTypes {
		var (
			child *ast.Node
			err   error
		)
		switch argType {
		case ast.TypeInt:
			child = ast.NewIntConst(m.intArg(c, sig.Alias))
		case ast.TypeFloat:
			child = ast.NewFloatConst(chooseFloat(c, defaultFloatCandidates))
		default:
			child, err = m.build(c, argType, depth+1)
			if err != nil {
				return nil, err
			}
		}
		children = append(children, child)
	}
	return ast.NewCall(sig.Alias, children...), nil
}

// intArg selects an integer parameter for the named operation. Operations
// with curated typical values draw from that list, which keeps generated
// parameters realistic and stable across catalog changes elsewhere.
func (m *Mapper) intArg(c *genome.Consumer, alias string) int {
	if meta, ok := m.cat.Metadata(alias); ok && len(meta.TypicalIntValues) > 0 {
		return meta.TypicalIntValues[c.Choose(len(meta.TypicalIntValues))]
	}
	return chooseInt(c, defaultIntCandidates)
}

// terminal emits the forced production at the depth ceiling: a data
// accessor for series types, a literal for scalar types. The catalog has
// no boolean accessors, so boolean series degrade to a boolean literal.
func (m *Mapper) terminal(c *genome.Consumer, desired ast.Type) *ast.Node {
	switch desired {
	case ast.TypeSeriesNum:
		return m.accessorOrLiteral(c)
	case ast.TypeSeriesBool:
		return ast.NewBoolConst(c.Choose(2) == 1)
	case ast.TypeInt:
		return ast.NewIntConst(chooseInt(c, defaultIntCandidates))
	case ast.TypeFloat:
		return ast.NewFloatConst(chooseFloat(c, defaultFloatCandidates))
	default:
		return ast.NewBoolConst(false)
	}
}

func (m *Mapper) accessorOrLiteral(c *genome.Consumer) *ast.Node {
	if accs := m.cat.Accessors(ast.TypeSeriesNum); len(accs) > 0 {
		return ast.NewCall(accs[c.Choose(len(accs))].Alias)
	}
	return ast.NewFloatConst(chooseFloat(c, defaultFloatCandidates))
}

// arithmeticOps returns the numeric-series operations that are neither
// indicators nor accessors, in catalog registration order.
func (m *Mapper) arithmeticOps() []catalog.Signature {
	var out []catalog.Signature
	for _, s := range m.cat.LookupByOutputType(ast.TypeSeriesNum) {
		if !s.Indicator && !s.Accessor {
			out = append(out, s)
		}
	}
	return out
}

func chooseInt(c *genome.Consumer, candidates []int) int {
	return candidates[c.Choose(len(candidates))]
}

func chooseFloat(c *genome.Consumer, candidates []float64) float64 {
	return candidates[c.Choose(len(candidates))]
}
