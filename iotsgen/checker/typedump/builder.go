package typedump

import (
	"strings"

	"github.com/broady/tsio/iotsgen/checker"
)

// Builder constructs a Program in memory, producing the same shapes the
// TypeScript checker reports (e.g. boolean is a union of its two literals,
// arrays are objects with a number index).
type Builder struct {
	nextID int
	types  map[int]*Type
	files  []checker.SourceFile
}

// Prop describes an object member for Builder.Object and Builder.Interface.
type Prop struct {
	Name     string
	Type     *Type
	Optional bool
}

// Required returns a required Prop.
func Required(name string, t *Type) Prop { return Prop{Name: name, Type: t} }

// Optional returns an optional Prop.
func Optional(name string, t *Type) Prop { return Prop{Name: name, Type: t, Optional: true} }

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{types: make(map[int]*Type)}
}

func (b *Builder) add(t *Type) *Type {
	b.nextID++
	t.id = b.nextID
	b.types[t.id] = t
	return t
}

// Raw adds a type with arbitrary flags and printable form.
func (b *Builder) Raw(flags checker.TypeFlags, text string) *Type {
	return b.add(&Type{flags: flags, text: text})
}

func (b *Builder) String() *Type    { return b.Raw(checker.TypeFlagsString, "string") }
func (b *Builder) Number() *Type    { return b.Raw(checker.TypeFlagsNumber, "number") }
func (b *Builder) Null() *Type      { return b.Raw(checker.TypeFlagsNull, "null") }
func (b *Builder) Undefined() *Type { return b.Raw(checker.TypeFlagsUndefined, "undefined") }
func (b *Builder) Any() *Type       { return b.Raw(checker.TypeFlagsAny, "any") }
func (b *Builder) Unknown() *Type   { return b.Raw(checker.TypeFlagsUnknown, "unknown") }
func (b *Builder) Void() *Type      { return b.Raw(checker.TypeFlagsVoid, "void") }
func (b *Builder) Never() *Type     { return b.Raw(checker.TypeFlagsNever, "never") }

// Boolean returns the boolean type, which the checker models as false | true.
func (b *Builder) Boolean() *Type {
	f := b.BooleanLiteral(false)
	t := b.BooleanLiteral(true)
	return b.add(&Type{
		flags:        checker.TypeFlagsBoolean | checker.TypeFlagsUnion,
		text:         "boolean",
		constituents: []*Type{f, t},
	})
}

// StringLiteral returns a string literal type; its printable form is quoted.
func (b *Builder) StringLiteral(value string) *Type {
	return b.Raw(checker.TypeFlagsStringLiteral, quote(value))
}

// NumberLiteral returns a number literal type printed as given.
func (b *Builder) NumberLiteral(text string) *Type {
	return b.Raw(checker.TypeFlagsNumberLiteral, text)
}

// BooleanLiteral returns the literal type true or false.
func (b *Builder) BooleanLiteral(value bool) *Type {
	text := "false"
	if value {
		text = "true"
	}
	return b.Raw(checker.TypeFlagsBooleanLiteral, text)
}

// Union returns a union in the given constituent order.
func (b *Builder) Union(types ...*Type) *Type {
	return b.add(&Type{
		flags:        checker.TypeFlagsUnion,
		text:         joinText(types, " | "),
		constituents: types,
	})
}

// Intersection returns an intersection in the given constituent order.
func (b *Builder) Intersection(types ...*Type) *Type {
	return b.add(&Type{
		flags:        checker.TypeFlagsIntersection,
		text:         joinText(types, " & "),
		constituents: types,
	})
}

// NonPrimitive returns the bare "object" type.
func (b *Builder) NonPrimitive() *Type {
	return b.Raw(checker.TypeFlagsNonPrimitive, "object")
}

// Object returns an anonymous object literal type.
func (b *Builder) Object(props ...Prop) *Type {
	t := b.add(&Type{flags: checker.TypeFlagsObject})
	b.SetProps(t, props...)
	var sb strings.Builder
	sb.WriteString("{")
	for _, p := range props {
		sb.WriteString(" ")
		sb.WriteString(p.Name)
		if p.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		sb.WriteString(p.Type.text)
		sb.WriteString(";")
	}
	sb.WriteString(" }")
	t.text = sb.String()
	return t
}

// Interface returns a named object type. Members may be set later with
// SetProps, which allows self-referential shapes.
func (b *Builder) Interface(name string, props ...Prop) *Type {
	t := b.add(&Type{flags: checker.TypeFlagsObject, text: name})
	b.SetProps(t, props...)
	return t
}

// SetProps replaces the members of t.
func (b *Builder) SetProps(t *Type, props ...Prop) {
	t.members = make([]member, len(props))
	for i, p := range props {
		t.members[i] = member{name: p.Name, typ: p.Type, optional: p.Optional}
	}
}

// Record returns Record<key, value>.
func (b *Builder) Record(key, value *Type) *Type {
	t := &Type{
		flags:     checker.TypeFlagsObject,
		text:      "Record<" + key.text + ", " + value.text + ">",
		aliasName: "Record",
		aliasArgs: []*Type{key, value},
	}
	switch key.flags {
	case checker.TypeFlagsString:
		t.stringIndex = value
	case checker.TypeFlagsNumber:
		t.numberIndex = value
	}
	return b.add(t)
}

// Array returns elem[].
func (b *Builder) Array(elem *Type) *Type {
	return b.add(&Type{
		flags:       checker.TypeFlagsObject,
		text:        elem.text + "[]",
		form:        checker.FormArray,
		numberIndex: elem,
	})
}

// Tuple returns a fixed-length tuple.
func (b *Builder) Tuple(elems ...*Type) *Type {
	return b.TupleWithRest(nil, elems...)
}

// TupleWithRest returns [elems..., ...rest[]]. A nil rest gives a plain tuple.
func (b *Builder) TupleWithRest(rest *Type, elems ...*Type) *Type {
	parts := make([]string, 0, len(elems)+1)
	for _, e := range elems {
		parts = append(parts, e.text)
	}
	if rest != nil {
		parts = append(parts, "..."+rest.text+"[]")
	}
	return b.add(&Type{
		flags:    checker.TypeFlagsObject,
		text:     "[" + strings.Join(parts, ", ") + "]",
		form:     checker.FormTuple,
		elements: elems,
		rest:     rest,
	})
}

// StringIndexed returns { [key: string]: elem }.
func (b *Builder) StringIndexed(elem *Type) *Type {
	return b.add(&Type{
		flags:       checker.TypeFlagsObject,
		text:        "{ [key: string]: " + elem.text + "; }",
		stringIndex: elem,
	})
}

// NumberIndexed returns { [key: number]: elem }.
func (b *Builder) NumberIndexed(elem *Type) *Type {
	return b.add(&Type{
		flags:       checker.TypeFlagsObject,
		text:        "{ [key: number]: " + elem.text + "; }",
		numberIndex: elem,
	})
}

// Function returns a callable object type with the given number of signatures.
func (b *Builder) Function(signatures int) *Type {
	return b.add(&Type{
		flags:          checker.TypeFlagsObject,
		text:           "() => void",
		callSignatures: signatures,
	})
}

// File appends a source file. Declarations inherit the file name.
func (b *Builder) File(name string, decls ...checker.Declaration) *Builder {
	b.files = append(b.files, checker.SourceFile{Name: name, Declarations: withFile(decls, name)})
	return b
}

// DeclarationFile appends a .d.ts file, which is never emitted.
func (b *Builder) DeclarationFile(name string, decls ...checker.Declaration) *Builder {
	b.files = append(b.files, checker.SourceFile{Name: name, DeclarationFile: true, Declarations: withFile(decls, name)})
	return b
}

// Program returns the built program. The builder must not be used afterwards.
func (b *Builder) Program() *Program {
	return &Program{files: b.files, types: b.types}
}

// DeclareType returns a type alias declaration.
func DeclareType(name string, t *Type) checker.Declaration {
	return checker.Declaration{Kind: checker.DeclarationTypeAlias, Name: name, Type: t}
}

// DeclareInterface returns an interface declaration.
func DeclareInterface(name string, t *Type) checker.Declaration {
	return checker.Declaration{Kind: checker.DeclarationInterface, Name: name, Type: t}
}

// DeclareVariable returns a variable declaration.
func DeclareVariable(name string, t *Type) checker.Declaration {
	return checker.Declaration{Kind: checker.DeclarationVariable, Name: name, Type: t}
}

// DeclareNamespace returns a namespace holding children.
func DeclareNamespace(name string, children ...checker.Declaration) checker.Declaration {
	return checker.Declaration{Kind: checker.DeclarationNamespace, Name: name, Children: children}
}

func withFile(decls []checker.Declaration, file string) []checker.Declaration {
	out := make([]checker.Declaration, len(decls))
	for i, d := range decls {
		d.File = file
		d.Children = withFile(d.Children, file)
		out[i] = d
	}
	return out
}

func joinText(types []*Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.text
	}
	return strings.Join(parts, sep)
}

// quote renders a string literal the way the checker prints it.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}
