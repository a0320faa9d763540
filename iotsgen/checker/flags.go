package checker

import (
	"strconv"
	"strings"
)

// TypeFlags is the combined classification bit-mask of a type.
// The values mirror the TypeScript checker so that dumps can carry them verbatim.
type TypeFlags uint32

const (
	TypeFlagsAny             TypeFlags = 1 << 0
	TypeFlagsUnknown         TypeFlags = 1 << 1
	TypeFlagsString          TypeFlags = 1 << 2
	TypeFlagsNumber          TypeFlags = 1 << 3
	TypeFlagsBoolean         TypeFlags = 1 << 4
	TypeFlagsEnum            TypeFlags = 1 << 5
	TypeFlagsBigInt          TypeFlags = 1 << 6
	TypeFlagsStringLiteral   TypeFlags = 1 << 7
	TypeFlagsNumberLiteral   TypeFlags = 1 << 8
	TypeFlagsBooleanLiteral  TypeFlags = 1 << 9
	TypeFlagsEnumLiteral     TypeFlags = 1 << 10
	TypeFlagsBigIntLiteral   TypeFlags = 1 << 11
	TypeFlagsESSymbol        TypeFlags = 1 << 12
	TypeFlagsUniqueESSymbol  TypeFlags = 1 << 13
	TypeFlagsVoid            TypeFlags = 1 << 14
	TypeFlagsUndefined       TypeFlags = 1 << 15
	TypeFlagsNull            TypeFlags = 1 << 16
	TypeFlagsNever           TypeFlags = 1 << 17
	TypeFlagsTypeParameter   TypeFlags = 1 << 18
	TypeFlagsObject          TypeFlags = 1 << 19
	TypeFlagsUnion           TypeFlags = 1 << 20
	TypeFlagsIntersection    TypeFlags = 1 << 21
	TypeFlagsIndex           TypeFlags = 1 << 22
	TypeFlagsIndexedAccess   TypeFlags = 1 << 23
	TypeFlagsConditional     TypeFlags = 1 << 24
	TypeFlagsSubstitution    TypeFlags = 1 << 25
	TypeFlagsNonPrimitive    TypeFlags = 1 << 26
	TypeFlagsTemplateLiteral TypeFlags = 1 << 27
	TypeFlagsStringMapping   TypeFlags = 1 << 28
)

// MaxFlagCount is the size of the flag table scanned by Decompose.
const MaxFlagCount = 29

// flagTable holds 1<<0 .. 1<<(MaxFlagCount-1) in ascending order.
var flagTable = func() [MaxFlagCount]TypeFlags {
	var table [MaxFlagCount]TypeFlags
	for i := range table {
		table[i] = 1 << i
	}
	return table
}()

var flagNames = map[TypeFlags]string{
	TypeFlagsAny:             "Any",
	TypeFlagsUnknown:         "Unknown",
	TypeFlagsString:          "String",
	TypeFlagsNumber:          "Number",
	TypeFlagsBoolean:         "Boolean",
	TypeFlagsEnum:            "Enum",
	TypeFlagsBigInt:          "BigInt",
	TypeFlagsStringLiteral:   "StringLiteral",
	TypeFlagsNumberLiteral:   "NumberLiteral",
	TypeFlagsBooleanLiteral:  "BooleanLiteral",
	TypeFlagsEnumLiteral:     "EnumLiteral",
	TypeFlagsBigIntLiteral:   "BigIntLiteral",
	TypeFlagsESSymbol:        "ESSymbol",
	TypeFlagsUniqueESSymbol:  "UniqueESSymbol",
	TypeFlagsVoid:            "Void",
	TypeFlagsUndefined:       "Undefined",
	TypeFlagsNull:            "Null",
	TypeFlagsNever:           "Never",
	TypeFlagsTypeParameter:   "TypeParameter",
	TypeFlagsObject:          "Object",
	TypeFlagsUnion:           "Union",
	TypeFlagsIntersection:    "Intersection",
	TypeFlagsIndex:           "Index",
	TypeFlagsIndexedAccess:   "IndexedAccess",
	TypeFlagsConditional:     "Conditional",
	TypeFlagsSubstitution:    "Substitution",
	TypeFlagsNonPrimitive:    "NonPrimitive",
	TypeFlagsTemplateLiteral: "TemplateLiteral",
	TypeFlagsStringMapping:   "StringMapping",
}

// Decompose splits input into the distinct power-of-two flags it is made of,
// largest first.
//
// The table is scanned from the largest flag down; a flag is taken whenever it
// does not exceed what is left, and the scan stops as soon as nothing is left.
// Decomposition is partial: if the table is exhausted first, the remainder is
// dropped without error. Any mask built by OR-ing table values decomposes
// exactly.
func Decompose(input uint32) []TypeFlags {
	flags := []TypeFlags{}
	remaining := TypeFlags(input)
	for i := MaxFlagCount - 1; i >= 0; i-- {
		if remaining == 0 {
			return flags
		}
		if flagTable[i] <= remaining {
			remaining -= flagTable[i]
			flags = append(flags, flagTable[i])
		}
	}
	return flags
}

// Split returns the decomposition of f, largest flag first.
func (f TypeFlags) Split() []TypeFlags {
	return Decompose(uint32(f))
}

// Has reports whether flag is part of the decomposition of f.
func (f TypeFlags) Has(flag TypeFlags) bool {
	return f.HasAny(flag)
}

// HasAny reports whether any of the given flags is part of the decomposition of f.
func (f TypeFlags) HasAny(flags ...TypeFlags) bool {
	for _, part := range f.Split() {
		for _, flag := range flags {
			if part == flag {
				return true
			}
		}
	}
	return false
}

// CountOf returns how many of the given flags appear in the decomposition of f.
func (f TypeFlags) CountOf(flags ...TypeFlags) int {
	n := 0
	for _, part := range f.Split() {
		for _, flag := range flags {
			if part == flag {
				n++
			}
		}
	}
	return n
}

// String renders the decomposition as names joined by "|", e.g. "Boolean|Union".
// Bits without a name are rendered as numbers.
func (f TypeFlags) String() string {
	if f == 0 {
		return "None"
	}
	parts := f.Split()
	names := make([]string, 0, len(parts))
	// Ascending reads like the checker's own enum order.
	for i := len(parts) - 1; i >= 0; i-- {
		if name, ok := flagNames[parts[i]]; ok {
			names = append(names, name)
		} else {
			names = append(names, strconv.FormatUint(uint64(parts[i]), 10))
		}
	}
	return strings.Join(names, "|")
}
