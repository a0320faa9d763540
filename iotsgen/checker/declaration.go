package checker

// DeclarationKind identifies the syntactic kind of a top-level declaration.
type DeclarationKind int

const (
	DeclarationTypeAlias DeclarationKind = iota // type X = ...
	DeclarationInterface                        // interface X { ... }
	DeclarationVariable                         // const x: T = ...
	DeclarationNamespace                        // namespace / module block
)

// String returns the lower-case keyword used for the kind in messages.
func (k DeclarationKind) String() string {
	switch k {
	case DeclarationTypeAlias:
		return "type"
	case DeclarationInterface:
		return "interface"
	case DeclarationVariable:
		return "variable"
	case DeclarationNamespace:
		return "namespace"
	default:
		return "unknown"
	}
}

// ParseDeclarationKind is the inverse of DeclarationKind.String.
func ParseDeclarationKind(s string) (DeclarationKind, bool) {
	switch s {
	case "type":
		return DeclarationTypeAlias, true
	case "interface":
		return DeclarationInterface, true
	case "variable":
		return DeclarationVariable, true
	case "namespace":
		return DeclarationNamespace, true
	default:
		return 0, false
	}
}

// Declaration is a read-only fact about one declaration in a source file.
type Declaration struct {
	Kind DeclarationKind

	// Name is the bound name. Empty for destructured variables.
	Name string

	// Type is the resolved type. Nil for namespaces.
	Type Type

	// File is the originating file name.
	File string

	// Children holds the declarations of a namespace, in source order.
	Children []Declaration
}

// SourceFile is one file of the checked program.
type SourceFile struct {
	Name string

	// DeclarationFile is true for .d.ts inputs such as the standard library.
	DeclarationFile bool

	Declarations []Declaration
}
