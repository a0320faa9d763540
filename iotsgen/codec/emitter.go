// Package codec renders checker types as io-ts codec expressions.
package codec

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/tsio/iotsgen/checker"
)

// ImportStatement is the header line that brings the io-ts namespace into scope.
const ImportStatement = `import * as t from "io-ts"`

// AnyType values.
const (
	AnyAsUnknown = "unknown" // any and unknown both emit t.unknown
	AnyAsAny     = "any"     // any emits t.any, unknown emits t.unknown
)

// Options configures emission.
type Options struct {
	// AnyType selects the codec for the any type.
	// MUST be one of: "unknown" (default), "any".
	AnyType string
}

// Warning is a non-fatal issue; the emitted codec is best effort.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// TypeName is the printable form of the type that triggered the warning.
	TypeName string
}

// WarnTupleRest is emitted when a tuple's rest element is dropped.
const WarnTupleRest = "tuple_rest_element"

// Emitter renders types as codec expressions. An Emitter is not safe for
// concurrent use.
type Emitter struct {
	checker  checker.Checker
	opts     Options
	warnings []Warning
	visiting map[int]bool
}

// NewEmitter returns an Emitter reading types from c.
func NewEmitter(c checker.Checker, opts Options) *Emitter {
	return &Emitter{
		checker:  c,
		opts:     opts,
		visiting: make(map[int]bool),
	}
}

// Warnings returns the warnings collected so far.
func (e *Emitter) Warnings() []Warning {
	return e.warnings
}

// Emit returns the codec expression for t. It fails with a
// *ClassificationError when some nested type matches no category, and with
// ErrRecursiveType when t refers to itself.
func (e *Emitter) Emit(t checker.Type) (string, error) {
	if t == nil {
		return "", errors.AssertionFailedf("nil type")
	}
	id := t.ID()
	if e.visiting[id] {
		return "", errors.Wrapf(ErrRecursiveType, "type %q", e.checker.TypeToString(t))
	}
	e.visiting[id] = true
	defer delete(e.visiting, id)

	c := e.checker
	switch Classify(c, t) {
	case CategoryLiteral:
		return call("literal", c.TypeToString(t)), nil
	case CategoryPrimitive:
		return "t." + primitiveName(c.Flags(t)), nil
	case CategoryBasicObject:
		return call("type", "{}"), nil
	case CategoryRecordAlias:
		_, args := c.Alias(t)
		return e.emitRecord(args[0], args[1])
	case CategoryUnion:
		if IsStringLiteralUnion(c, t) {
			return e.emitKeyof(c.Constituents(t)), nil
		}
		return e.emitList("union", c.Constituents(t))
	case CategoryIntersection:
		return e.emitList("intersection", c.Constituents(t))
	case CategoryTuple:
		return e.emitTuple(t)
	case CategoryArray:
		elem := c.NumberIndexType(t)
		if elem == nil {
			return "", errors.Newf("array type %q has no element type", c.TypeToString(t))
		}
		s, err := e.Emit(elem)
		if err != nil {
			return "", errors.Wrap(err, "array element")
		}
		return call("array", s), nil
	case CategoryStringIndexed:
		return e.emitIndexed("t.string", c.StringIndexType(t))
	case CategoryNumberIndexed:
		return e.emitIndexed("t.number", c.NumberIndexType(t))
	case CategoryFunction:
		return "t.Function", nil
	case CategoryPlainObject:
		return e.emitObject(c.Properties(t))
	case CategoryVoid:
		return "t.void", nil
	case CategoryAnyOrUnknown:
		if e.opts.AnyType == AnyAsAny && c.Flags(t).Has(checker.TypeFlagsAny) {
			return "t.any", nil
		}
		return "t.unknown", nil
	default:
		return "", newClassificationError(c, t)
	}
}

func (e *Emitter) emitRecord(key, value checker.Type) (string, error) {
	k, err := e.Emit(key)
	if err != nil {
		return "", errors.Wrap(err, "record key")
	}
	v, err := e.Emit(value)
	if err != nil {
		return "", errors.Wrap(err, "record value")
	}
	return call("record", k, v), nil
}

func (e *Emitter) emitIndexed(key string, elem checker.Type) (string, error) {
	v, err := e.Emit(elem)
	if err != nil {
		return "", errors.Wrap(err, "index signature")
	}
	return call("record", key, v), nil
}

// emitKeyof maps every literal to null, keeping the checker's quoting.
func (e *Emitter) emitKeyof(members []checker.Type) string {
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = e.checker.TypeToString(m) + ": null"
	}
	return call("keyof", "{"+strings.Join(keys, ", ")+"}")
}

func (e *Emitter) emitList(ctor string, types []checker.Type) (string, error) {
	parts := make([]string, len(types))
	for i, m := range types {
		s, err := e.Emit(m)
		if err != nil {
			return "", errors.Wrapf(err, "%s member %d", ctor, i)
		}
		parts[i] = s
	}
	return call(ctor, "["+strings.Join(parts, ", ")+"]"), nil
}

func (e *Emitter) emitTuple(t checker.Type) (string, error) {
	elems, rest := e.checker.TupleElements(t)
	if rest != nil {
		e.warnings = append(e.warnings, Warning{
			Code:     WarnTupleRest,
			Message:  "rest elements are not supported by t.tuple; only the fixed elements are validated",
			TypeName: e.checker.TypeToString(t),
		})
	}
	return e.emitList("tuple", elems)
}

// emitObject splits members into t.type (required) and t.partial (optional),
// each keeping the checker's member order.
func (e *Emitter) emitObject(members []checker.Member) (string, error) {
	var required, optional []string
	for _, m := range members {
		s, err := e.Emit(m.Type)
		if err != nil {
			return "", errors.Wrapf(err, "member %s", m.Name)
		}
		prop := PropertyName(m.Name) + ": " + s
		if m.Optional {
			optional = append(optional, prop)
		} else {
			required = append(required, prop)
		}
	}

	switch {
	case len(required) > 0 && len(optional) > 0:
		return call("intersection", "["+props("type", required)+", "+props("partial", optional)+"]"), nil
	case len(optional) > 0:
		return props("partial", optional), nil
	default:
		return props("type", required), nil
	}
}

func primitiveName(flags checker.TypeFlags) string {
	switch {
	case flags.Has(checker.TypeFlagsString):
		return "string"
	case flags.Has(checker.TypeFlagsNumber):
		return "number"
	case flags.Has(checker.TypeFlagsBoolean):
		return "boolean"
	case flags.Has(checker.TypeFlagsNull):
		return "null"
	default:
		return "undefined"
	}
}

func call(ctor string, args ...string) string {
	return "t." + ctor + "(" + strings.Join(args, ", ") + ")"
}

func props(ctor string, members []string) string {
	return call(ctor, "{"+strings.Join(members, ", ")+"}")
}
