// Package checker defines the narrow query interface through which codec
// generation consumes an external TypeScript type checker.
// Types and declarations are owned by the Checker; the generator only reads them.
package checker

// Type is an opaque handle to one structural type.
type Type interface {
	// ID identifies the type within its Checker.
	// Two handles with the same ID denote the same type.
	ID() int
}

// Member is a named property of an object-like type.
type Member struct {
	Name string
	Type Type

	// Optional is true for members declared with "?".
	Optional bool
}

// Form is the canonical syntactic shape the checker would print a type as.
type Form int

const (
	FormOther Form = iota
	FormTuple        // [A, B] or [A, ...B[]]
	FormArray        // A[] / Array<A>
)

// String returns the string representation of the form.
func (f Form) String() string {
	switch f {
	case FormTuple:
		return "Tuple"
	case FormArray:
		return "Array"
	default:
		return "Other"
	}
}

// Checker answers type queries. Implementations must return sequences in a
// stable order; the generator preserves whatever order it is given.
type Checker interface {
	// Flags returns the combined classification bit-mask.
	Flags(t Type) TypeFlags

	// TypeToString returns the canonical printable form, with literal quoting
	// (string literals quoted, numbers and booleans bare).
	TypeToString(t Type) string

	// Properties returns the members of an object-like type.
	Properties(t Type) []Member

	// Constituents returns union or intersection members.
	Constituents(t Type) []Type

	// Alias returns the originating alias name and its type arguments, if any.
	Alias(t Type) (name string, args []Type)

	// StringIndexType returns the element type of a string index signature, or nil.
	StringIndexType(t Type) Type

	// NumberIndexType returns the element type of a number index signature, or nil.
	NumberIndexType(t Type) Type

	// CallSignatureCount returns the number of call signatures.
	CallSignatureCount(t Type) int

	// CanonicalForm reports whether t prints as a tuple, an array, or neither.
	CanonicalForm(t Type) Form

	// TupleElements returns the positional element types of a tuple and,
	// if the tuple ends in a rest element, that element's type.
	TupleElements(t Type) (elements []Type, rest Type)

	// SourceFiles returns every file of the program in program order.
	SourceFiles() []SourceFile
}
