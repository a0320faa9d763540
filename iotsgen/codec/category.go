package codec

import "github.com/broady/tsio/iotsgen/checker"

// Category is the structural category a type is emitted as.
// Declaration order is dispatch priority.
type Category int

const (
	CategoryUnclassified Category = iota
	CategoryLiteral
	CategoryPrimitive
	CategoryBasicObject
	CategoryRecordAlias
	CategoryUnion
	CategoryIntersection
	CategoryTuple
	CategoryArray
	CategoryStringIndexed
	CategoryNumberIndexed
	CategoryFunction
	CategoryPlainObject
	CategoryVoid
	CategoryAnyOrUnknown
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryLiteral:
		return "Literal"
	case CategoryPrimitive:
		return "Primitive"
	case CategoryBasicObject:
		return "BasicObject"
	case CategoryRecordAlias:
		return "RecordAlias"
	case CategoryUnion:
		return "Union"
	case CategoryIntersection:
		return "Intersection"
	case CategoryTuple:
		return "Tuple"
	case CategoryArray:
		return "Array"
	case CategoryStringIndexed:
		return "StringIndexed"
	case CategoryNumberIndexed:
		return "NumberIndexed"
	case CategoryFunction:
		return "Function"
	case CategoryPlainObject:
		return "PlainObject"
	case CategoryVoid:
		return "Void"
	case CategoryAnyOrUnknown:
		return "AnyOrUnknown"
	default:
		return "Unclassified"
	}
}

// dispatch is the ordered predicate chain; the first match wins.
//   - Literal precedes Primitive: literal types also satisfy primitive-ish tests.
//   - RecordAlias precedes Union/Intersection and the index signatures:
//     Record<K, V> carries both an alias and a string index.
//   - Tuple precedes Array, Array precedes NumberIndexed: arrays have a number index.
//   - Function precedes PlainObject: callable objects may also have members.
var dispatch = []struct {
	category Category
	match    func(checker.Checker, checker.Type) bool
}{
	{CategoryLiteral, IsLiteral},
	{CategoryPrimitive, IsPrimitive},
	{CategoryBasicObject, IsBasicObject},
	{CategoryRecordAlias, IsRecordAlias},
	{CategoryUnion, IsUnion},
	{CategoryIntersection, IsIntersection},
	{CategoryTuple, IsTuple},
	{CategoryArray, IsArray},
	{CategoryStringIndexed, IsStringIndexed},
	{CategoryNumberIndexed, IsNumberIndexed},
	{CategoryFunction, IsFunction},
	{CategoryPlainObject, IsPlainObject},
	{CategoryVoid, IsVoid},
	{CategoryAnyOrUnknown, IsAnyOrUnknown},
}

// Classify returns the first category whose predicate accepts t, or
// CategoryUnclassified.
func Classify(c checker.Checker, t checker.Type) Category {
	for _, d := range dispatch {
		if d.match(c, t) {
			return d.category
		}
	}
	return CategoryUnclassified
}
