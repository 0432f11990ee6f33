// Package catalog exposes the closed set of operations available to the
// strategy mapper and validators. A catalog is built once at startup and
// is read-only afterwards, so it can be shared across evaluation workers
// without synchronization.
package catalog

import "github.com/your-org/strategy-miner/internal/ast"

// Signature describes one operation: its alias, the types of its ordered
// argument slots and its output type. Arity is implied by InputTypes.
type Signature struct {
	Alias      string
	InputTypes []ast.Type
	OutputType ast.Type

	// Indicator marks numeric-series producers that the mapper offers in
	// its indicator branch (as opposed to plain arithmetic).
	Indicator bool
	// Accessor marks zero-argument raw data accessors.
	Accessor bool
}

// Arity returns the number of argument slots.
func (s Signature) Arity() int {
	return len(s.InputTypes)
}

// Metadata carries optional per-operation hints used for parameter
// generation.
type Metadata struct {
	// TypicalIntValues is a curated list of realistic integer parameter
	// values (e.g. common indicator periods). When present, the mapper
	// selects integer arguments from this list instead of the generic
	// candidate set.
	TypicalIntValues []int
}

// Catalog indexes operation signatures by alias and by output type.
type Catalog struct {
	byAlias  map[string]Signature
	byOutput map[ast.Type][]Signature
	metadata map[string]Metadata
	ordered  []Signature
}

// New builds a catalog from the given signatures and metadata. Lookup
// order by output type follows the registration order of sigs, which is
// part of the decode determinism contract.
func New(sigs []Signature, metadata map[string]Metadata) *Catalog {
	c := &Catalog{
		byAlias:  make(map[string]Signature, len(sigs)),
		byOutput: make(map[ast.Type][]Signature),
		metadata: make(map[string]Metadata, len(metadata)),
		ordered:  make([]Signature, 0, len(sigs)),
	}
	for _, s := range sigs {
		if _, dup := c.byAlias[s.Alias]; dup {
			continue
		}
		c.byAlias[s.Alias] = s
		c.byOutput[s.OutputType] = append(c.byOutput[s.OutputType], s)
		c.ordered = append(c.ordered, s)
	}
	for alias, m := range metadata {
		c.metadata[alias] = m
	}
	return c
}

// Get returns the signature for alias, if registered.
func (c *Catalog) Get(alias string) (Signature, bool) {
	s, ok := c.byAlias[alias]
	return s, ok
}

// LookupByOutputType returns all signatures producing the given type, in
// registration order. The returned slice must not be modified.
func (c *Catalog) LookupByOutputType(t ast.Type) []Signature {
	return c.byOutput[t]
}

// Indicators returns the numeric-series producers flagged as indicators,
// in registration order.
func (c *Catalog) Indicators() []Signature {
	var out []Signature
	for _, s := range c.ordered {
		if s.Indicator {
			out = append(out, s)
		}
	}
	return out
}

// Accessors returns the raw data accessors producing the given type, in
// registration order.
func (c *Catalog) Accessors(t ast.Type) []Signature {
	var out []Signature
	for _, s := range c.ordered {
		if s.Accessor && s.OutputType == t {
			out = append(out, s)
		}
	}
	return out
}

// Actions returns the terminal trading directives, in registration order.
func (c *Catalog) Actions() []Signature {
	return c.byOutput[ast.TypeAction]
}

// Metadata returns the metadata registered for alias, if any.
func (c *Catalog) Metadata(alias string) (Metadata, bool) {
	m, ok := c.metadata[alias]
	return m, ok
}
