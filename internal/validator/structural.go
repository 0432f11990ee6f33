// Package validator re-checks strategy trees independently of how they
// were produced. The structural check is the sole well-formedness gate
// for trees arriving from storage or other external sources, not just
// freshly decoded ones.
package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/your-org/strategy-miner/internal/ast"
	"github.com/your-org/strategy-miner/internal/catalog"
)

// ValidationError reports the first structural violation found, with the
// path of the failing node (e.g. "condition/0/1").
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid tree at %s: %s", e.Path, e.Reason)
}

// Structural validates trees against the catalog: every call alias must
// be registered, child counts and types must match the declared
// signature, and node depth must not exceed the configured maximum.
type Structural struct {
	cat      *catalog.Catalog
	maxDepth int
}

// NewStructural returns a structural validator for the given catalog and
// depth limit.
func NewStructural(cat *catalog.Catalog, maxDepth int) *Structural {
	return &Structural{cat: cat, maxDepth: maxDepth}
}

// ValidateRule checks both subtrees of a rule. The action must be a
// zero-argument directive registered in the catalog.
func (v *Structural) ValidateRule(r *ast.Rule) error {
	if r == nil || r.Condition == nil || r.Action == nil {
		return &ValidationError{Path: "rule", Reason: "missing condition or action"}
	}
	if err := v.Validate(r.Condition, "condition"); err != nil {
		return err
	}
	if err := v.Validate(r.Action, "action"); err != nil {
		return err
	}
	if r.Action.Kind != ast.KindCall || len(r.Action.Children) != 0 {
		return &ValidationError{Path: "action", Reason: "action must be a zero-argument directive"}
	}
	if sig, ok := v.cat.Get(r.Action.Alias); ok && sig.OutputType != ast.TypeAction {
		return &ValidationError{
			Path:   "action",
			Reason: fmt.Sprintf("%s is not a trading directive", r.Action.Alias),
		}
	}
	return nil
}

// Validate checks one subtree. root names the subtree in error paths.
func (v *Structural) Validate(n *ast.Node, root string) error {
	return v.check(n, []string{root}, 0)
}

func (v *Structural) check(n *ast.Node, path []string, depth int) error {
	if n == nil {
		return &ValidationError{Path: strings.Join(path, "/"), Reason: "nil node"}
	}
	if depth > v.maxDepth {
		return &ValidationError{
			Path:   strings.Join(path, "/"),
			Reason: fmt.Sprintf("depth %d exceeds maximum %d", depth, v.maxDepth),
		}
	}
	if n.Kind == ast.KindConst {
		return nil
	}

	sig, ok := v.cat.Get(n.Alias)
	if !ok {
		return &ValidationError{
			Path:   strings.Join(path, "/"),
			Reason: fmt.Sprintf("unknown operation %q", n.Alias),
		}
	}
	if len(n.Children) != sig.Arity() {
		return &ValidationError{
			Path:   strings.Join(path, "/"),
			Reason: fmt.Sprintf("%s expects %d arguments, got %d", n.Alias, sig.Arity(), len(n.Children)),
		}
	}
	for i, ch := range n.Children {
		childPath := append(path, strconv.Itoa(i))
		if err := v.check(ch, childPath, depth+1); err != nil {
			return err
		}
		want := sig.InputTypes[i]
		if got, ok := v.producedType(ch); ok && !assignable(want, got) {
			return &ValidationError{
				Path:   strings.Join(childPath, "/"),
				Reason: fmt.Sprintf("%s argument %d must be %s, got %s", n.Alias, i, want, got),
			}
		}
	}
	return nil
}

// producedType resolves the type a node evaluates to: the literal type
// for constants, the declared output type for registered calls.
func (v *Structural) producedType(n *ast.Node) (ast.Type, bool) {
	if n.Kind == ast.KindConst {
		return n.ConstType, true
	}
	sig, ok := v.cat.Get(n.Alias)
	if !ok {
		return 0, false
	}
	return sig.OutputType, true
}

// assignable reports whether a value of type got may fill a slot declared
// as want. Scalar literals broadcast into the matching series type; the
// evaluator relies on exactly these widenings and no others.
func assignable(want, got ast.Type) bool {
	if want == got {
		return true
	}
	switch want {
	case ast.TypeSeriesNum:
		return got == ast.TypeInt || got == ast.TypeFloat
	case ast.TypeSeriesBool:
		return got == ast.TypeBool
	}
	return false
}
