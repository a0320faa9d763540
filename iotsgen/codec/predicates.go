package codec

import "github.com/broady/tsio/iotsgen/checker"

// Predicates are not mutually exclusive (a literal is also a primitive to the
// checker, a tuple is also array-like). Classify resolves the overlap.

// recordAliasName is the alias the checker reports for Record<K, V>.
const recordAliasName = "Record"

// IsLiteral reports a string, number or boolean literal type.
func IsLiteral(c checker.Checker, t checker.Type) bool {
	return c.Flags(t).HasAny(
		checker.TypeFlagsStringLiteral,
		checker.TypeFlagsNumberLiteral,
		checker.TypeFlagsBooleanLiteral,
	)
}

var primitiveFlags = []checker.TypeFlags{
	checker.TypeFlagsString,
	checker.TypeFlagsNumber,
	checker.TypeFlagsBoolean,
	checker.TypeFlagsNull,
	checker.TypeFlagsUndefined,
}

// IsPrimitive reports a non-literal primitive: exactly one of string, number,
// boolean, null or undefined. boolean also carries the union flag.
func IsPrimitive(c checker.Checker, t checker.Type) bool {
	return c.Flags(t).CountOf(primitiveFlags...) == 1
}

// IsBasicObject reports the bare "object" type.
func IsBasicObject(c checker.Checker, t checker.Type) bool {
	return c.TypeToString(t) == "object"
}

// IsRecordAlias reports Record<K, V>.
func IsRecordAlias(c checker.Checker, t checker.Type) bool {
	name, args := c.Alias(t)
	return name == recordAliasName && len(args) == 2
}

// IsUnion reports a union of two or more constituents.
func IsUnion(c checker.Checker, t checker.Type) bool {
	return c.Flags(t).Has(checker.TypeFlagsUnion) && len(c.Constituents(t)) >= 2
}

// IsIntersection reports an intersection of two or more constituents.
func IsIntersection(c checker.Checker, t checker.Type) bool {
	return c.Flags(t).Has(checker.TypeFlagsIntersection) && len(c.Constituents(t)) >= 2
}

// IsStringLiteralUnion reports a union made only of string literals.
// Only meaningful once IsUnion holds.
func IsStringLiteralUnion(c checker.Checker, t checker.Type) bool {
	members := c.Constituents(t)
	if len(members) == 0 {
		return false
	}
	for _, m := range members {
		if !c.Flags(m).Has(checker.TypeFlagsStringLiteral) {
			return false
		}
	}
	return true
}

// IsTuple reports a type the checker prints as a tuple.
func IsTuple(c checker.Checker, t checker.Type) bool {
	return c.CanonicalForm(t) == checker.FormTuple
}

// IsArray reports a type the checker prints as T[].
func IsArray(c checker.Checker, t checker.Type) bool {
	return c.CanonicalForm(t) == checker.FormArray
}

// IsStringIndexed reports a string index signature outside of Record.
func IsStringIndexed(c checker.Checker, t checker.Type) bool {
	return c.StringIndexType(t) != nil && !IsRecordAlias(c, t)
}

// IsNumberIndexed reports a number index signature outside of Record.
func IsNumberIndexed(c checker.Checker, t checker.Type) bool {
	return c.NumberIndexType(t) != nil && !IsRecordAlias(c, t)
}

// IsFunction reports a type with at least one call signature.
func IsFunction(c checker.Checker, t checker.Type) bool {
	return c.CallSignatureCount(t) > 0
}

// IsPlainObject reports an object type with members.
func IsPlainObject(c checker.Checker, t checker.Type) bool {
	return len(c.Properties(t)) > 0
}

// IsVoid reports void.
func IsVoid(c checker.Checker, t checker.Type) bool {
	return c.Flags(t).Has(checker.TypeFlagsVoid)
}

// IsAnyOrUnknown reports any or unknown.
func IsAnyOrUnknown(c checker.Checker, t checker.Type) bool {
	return c.Flags(t).HasAny(checker.TypeFlagsAny, checker.TypeFlagsUnknown)
}
