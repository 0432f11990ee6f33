// Package ast defines the expression tree produced by genome decoding.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Type identifies the value category a node evaluates to.
type Type int

const (
	// TypeSeriesBool is a boolean series aligned with the market data.
	TypeSeriesBool Type = iota
	// TypeSeriesNum is a numeric series aligned with the market data.
	TypeSeriesNum
	// TypeInt is a scalar integer parameter (e.g. an indicator period).
	TypeInt
	// TypeFloat is a scalar float parameter.
	TypeFloat
	// TypeBool is a scalar boolean literal.
	TypeBool
	// TypeAction is a zero-argument trading directive.
	TypeAction
)

// String returns a readable name for the type.
func (t Type) String() string {
	switch t {
	case TypeSeriesBool:
		return "series_bool"
	case TypeSeriesNum:
		return "series_num"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeAction:
		return "action"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Kind discriminates the two node variants.
type Kind int

const (
	// KindConst is a typed literal.
	KindConst Kind = iota
	// KindCall is an operation applied to child nodes.
	KindCall
)

// Node is one node of the expression tree. It is a tagged union: a Const
// carries exactly one of the literal fields, a Call carries an operation
// alias and its ordered children. Subtrees are owned by their parent and
// are never shared between trees.
type Node struct {
	Kind Kind

	// Const fields. Which one is meaningful is determined by ConstType.
	ConstType Type
	IntVal    int
	FloatVal  float64
	BoolVal   bool
	StrVal    string

	// Call fields.
	Alias    string
	Children []*Node
}

// NewIntConst returns an integer literal node.
func NewIntConst(v int) *Node {
	return &Node{Kind: KindConst, ConstType: TypeInt, IntVal: v}
}

// NewFloatConst returns a float literal node.
func NewFloatConst(v float64) *Node {
	return &Node{Kind: KindConst, ConstType: TypeFloat, FloatVal: v}
}

// NewBoolConst returns a boolean literal node.
func NewBoolConst(v bool) *Node {
	return &Node{Kind: KindConst, ConstType: TypeBool, BoolVal: v}
}

// NewCall returns a call node for the given alias and children.
func NewCall(alias string, children ...*Node) *Node {
	return &Node{Kind: KindCall, Alias: alias, Children: children}
}

// Rule pairs an entry condition with a trading directive. The condition must
// evaluate to a boolean series; the action is a zero-argument call.
type Rule struct {
	Condition *Node
	Action    *Node
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return &c
}

// Clone returns a deep copy of the rule.
func (r *Rule) Clone() *Rule {
	if r == nil {
		return nil
	}
	return &Rule{Condition: r.Condition.Clone(), Action: r.Action.Clone()}
}

// Depth returns the maximum node depth, counting the root as 0.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	max := 0
	for _, ch := range n.Children {
		if d := ch.Depth() + 1; d > max {
			max = d
		}
	}
	return max
}

// Walk visits n and every descendant in depth-first, left-to-right order.
// Traversal stops early if fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, ch := range n.Children {
		if !ch.Walk(fn) {
			return false
		}
	}
	return true
}

// String renders the node as an s-expression like "greater_than(sma(close, 10), close)".
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Kind == KindConst {
		switch n.ConstType {
		case TypeInt:
			return strconv.Itoa(n.IntVal)
		case TypeFloat:
			return strconv.FormatFloat(n.FloatVal, 'g', -1, 64)
		case TypeBool:
			return strconv.FormatBool(n.BoolVal)
		default:
			return n.StrVal
		}
	}
	if len(n.Children) == 0 {
		return n.Alias
	}
	parts := make([]string, len(n.Children))
	for i, ch := range n.Children {
		parts[i] = ch.String()
	}
	return n.Alias + "(" + strings.Join(parts, ", ") + ")"
}

// String renders the rule as "IF <condition> THEN <action>".
func (r *Rule) String() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("IF %s THEN %s", r.Condition, r.Action)
}
