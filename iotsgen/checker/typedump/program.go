// Package typedump implements checker.Checker over a serialized snapshot of the
// external type checker's answers (a "type dump").
//
// A Program is built either by decoding a dump document with Load, or
// programmatically with a Builder.
package typedump

import "github.com/broady/tsio/iotsgen/checker"

// Type is a node of the dumped type graph.
type Type struct {
	id             int
	flags          checker.TypeFlags
	text           string
	constituents   []*Type
	members        []member
	aliasName      string
	aliasArgs      []*Type
	stringIndex    *Type
	numberIndex    *Type
	callSignatures int
	form           checker.Form
	elements       []*Type
	rest           *Type
}

type member struct {
	name     string
	typ      *Type
	optional bool
}

// ID implements checker.Type.
func (t *Type) ID() int { return t.id }

// Program is an immutable, fully resolved type dump.
type Program struct {
	files []checker.SourceFile
	types map[int]*Type
}

var _ checker.Checker = (*Program)(nil)

// Type returns the type with the given id, or nil.
func (p *Program) Type(id int) *Type {
	return p.types[id]
}

func (p *Program) lookup(t checker.Type) *Type {
	if t == nil {
		return nil
	}
	if dt, ok := t.(*Type); ok {
		return dt
	}
	return p.types[t.ID()]
}

// Flags implements checker.Checker.
func (p *Program) Flags(t checker.Type) checker.TypeFlags {
	if dt := p.lookup(t); dt != nil {
		return dt.flags
	}
	return 0
}

// TypeToString implements checker.Checker.
func (p *Program) TypeToString(t checker.Type) string {
	if dt := p.lookup(t); dt != nil {
		return dt.text
	}
	return ""
}

// Properties implements checker.Checker.
func (p *Program) Properties(t checker.Type) []checker.Member {
	dt := p.lookup(t)
	if dt == nil || len(dt.members) == 0 {
		return nil
	}
	out := make([]checker.Member, len(dt.members))
	for i, m := range dt.members {
		out[i] = checker.Member{Name: m.name, Type: m.typ, Optional: m.optional}
	}
	return out
}

// Constituents implements checker.Checker.
func (p *Program) Constituents(t checker.Type) []checker.Type {
	dt := p.lookup(t)
	if dt == nil {
		return nil
	}
	return handles(dt.constituents)
}

// Alias implements checker.Checker.
func (p *Program) Alias(t checker.Type) (string, []checker.Type) {
	dt := p.lookup(t)
	if dt == nil {
		return "", nil
	}
	return dt.aliasName, handles(dt.aliasArgs)
}

// StringIndexType implements checker.Checker.
func (p *Program) StringIndexType(t checker.Type) checker.Type {
	if dt := p.lookup(t); dt != nil && dt.stringIndex != nil {
		return dt.stringIndex
	}
	return nil
}

// NumberIndexType implements checker.Checker.
func (p *Program) NumberIndexType(t checker.Type) checker.Type {
	if dt := p.lookup(t); dt != nil && dt.numberIndex != nil {
		return dt.numberIndex
	}
	return nil
}

// CallSignatureCount implements checker.Checker.
func (p *Program) CallSignatureCount(t checker.Type) int {
	if dt := p.lookup(t); dt != nil {
		return dt.callSignatures
	}
	return 0
}

// CanonicalForm implements checker.Checker.
func (p *Program) CanonicalForm(t checker.Type) checker.Form {
	if dt := p.lookup(t); dt != nil {
		return dt.form
	}
	return checker.FormOther
}

// TupleElements implements checker.Checker.
func (p *Program) TupleElements(t checker.Type) ([]checker.Type, checker.Type) {
	dt := p.lookup(t)
	if dt == nil {
		return nil, nil
	}
	var rest checker.Type
	if dt.rest != nil {
		rest = dt.rest
	}
	return handles(dt.elements), rest
}

// SourceFiles implements checker.Checker.
func (p *Program) SourceFiles() []checker.SourceFile {
	return p.files
}

// handles converts to interface values. Elements are never nil: both Load and
// Builder reject dangling references.
func handles(ts []*Type) []checker.Type {
	if len(ts) == 0 {
		return nil
	}
	out := make([]checker.Type, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}
