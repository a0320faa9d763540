package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/broady/tsio/iotsgen/checker"
	"github.com/broady/tsio/iotsgen/checker/typedump"
)

func TestEmitter_Emit(t *testing.T) {
	b := typedump.NewBuilder()
	str := b.String()
	num := b.Number()
	null := b.Null()

	tests := []struct {
		name string
		typ  *typedump.Type
		want string
	}{
		{"string", str, "t.string"},
		{"number", num, "t.number"},
		{"boolean", b.Boolean(), "t.boolean"},
		{"null", null, "t.null"},
		{"undefined", b.Undefined(), "t.undefined"},
		{"string literal keeps quoting", b.StringLiteral("foo"), `t.literal("foo")`},
		{"number literal", b.NumberLiteral("42"), "t.literal(42)"},
		{"boolean literal", b.BooleanLiteral(false), "t.literal(false)"},
		{"object keyword", b.NonPrimitive(), "t.type({})"},
		{"record", b.Record(str, null), "t.record(t.string, t.null)"},
		{"record with literal keys", b.Record(b.Union(b.StringLiteral("a"), b.StringLiteral("b")), num), `t.record(t.keyof({"a": null, "b": null}), t.number)`},
		{"string literal union", b.Union(b.StringLiteral("foo"), b.StringLiteral("bar")), `t.keyof({"foo": null, "bar": null})`},
		{"nullable literal union", b.Union(null, b.StringLiteral("foo"), b.StringLiteral("bar")), `t.union([t.null, t.literal("foo"), t.literal("bar")])`},
		{"union keeps checker order", b.Union(num, str), "t.union([t.number, t.string])"},
		{
			"union of objects",
			b.Union(b.Object(typedump.Required("foo", str)), b.Object(typedump.Required("foo", num))),
			"t.union([t.type({foo: t.string}), t.type({foo: t.number})])",
		},
		{
			"intersection",
			b.Intersection(b.Object(typedump.Required("foo", str)), b.Object(typedump.Required("bar", num))),
			"t.intersection([t.type({foo: t.string}), t.type({bar: t.number})])",
		},
		{"tuple", b.Tuple(str, num, b.NumberLiteral("1")), "t.tuple([t.string, t.number, t.literal(1)])"},
		{"array", b.Array(str), "t.array(t.string)"},
		{"nested array", b.Array(b.Array(num)), "t.array(t.array(t.number))"},
		{"string index", b.StringIndexed(num), "t.record(t.string, t.number)"},
		{"number index", b.NumberIndexed(str), "t.record(t.number, t.string)"},
		{"function", b.Function(1), "t.Function"},
		{"overloaded function", b.Function(3), "t.Function"},
		{"void", b.Void(), "t.void"},
		{"any", b.Any(), "t.unknown"},
		{"unknown", b.Unknown(), "t.unknown"},
		{"required members", b.Object(typedump.Required("foo", str), typedump.Required("bar", num)), "t.type({foo: t.string, bar: t.number})"},
		{"optional members", b.Object(typedump.Optional("foo", str)), "t.partial({foo: t.string})"},
		{
			"mixed members",
			b.Object(typedump.Required("foo", str), typedump.Optional("bar", num)),
			"t.intersection([t.type({foo: t.string}), t.partial({bar: t.number})])",
		},
		{
			"mixed members keep relative order",
			b.Object(
				typedump.Optional("a", str),
				typedump.Required("b", num),
				typedump.Optional("c", num),
				typedump.Required("d", str),
			),
			"t.intersection([t.type({b: t.number, d: t.string}), t.partial({a: t.string, c: t.number})])",
		},
		{"quoted member name", b.Object(typedump.Required("content-type", str)), `t.type({"content-type": t.string})`},
		{"reserved member name stays bare", b.Object(typedump.Required("default", str)), "t.type({default: t.string})"},
		{
			"null and undefined members",
			b.Object(typedump.Required("foo", null), typedump.Required("bar", b.Undefined())),
			"t.type({foo: t.null, bar: t.undefined})",
		},
		{"object keyword member", b.Object(typedump.Required("baz", b.NonPrimitive())), "t.type({baz: t.type({})})"},
	}

	p := b.Program()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEmitter(p, Options{})
			got, err := e.Emit(tt.typ)
			if err != nil {
				t.Fatalf("Emit() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Emit() =\n  %s\nwant\n  %s", got, tt.want)
			}
			if len(e.Warnings()) != 0 {
				t.Errorf("unexpected warnings: %v", e.Warnings())
			}
		})
	}
}

func TestEmitter_AnyType(t *testing.T) {
	b := typedump.NewBuilder()
	anyT := b.Any()
	unknownT := b.Unknown()
	p := b.Program()

	e := NewEmitter(p, Options{AnyType: AnyAsAny})
	if got, _ := e.Emit(anyT); got != "t.any" {
		t.Errorf("any = %s, want t.any", got)
	}
	if got, _ := e.Emit(unknownT); got != "t.unknown" {
		t.Errorf("unknown = %s, want t.unknown", got)
	}

	e = NewEmitter(p, Options{AnyType: AnyAsUnknown})
	if got, _ := e.Emit(anyT); got != "t.unknown" {
		t.Errorf("any = %s, want t.unknown", got)
	}
}

func TestEmitter_TupleRestWarns(t *testing.T) {
	b := typedump.NewBuilder()
	tuple := b.TupleWithRest(b.String(), b.Number())
	p := b.Program()

	e := NewEmitter(p, Options{})
	got, err := e.Emit(tuple)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if got != "t.tuple([t.number])" {
		t.Errorf("Emit() = %s", got)
	}

	warnings := e.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Code != WarnTupleRest {
		t.Errorf("warning code = %q", warnings[0].Code)
	}
	if warnings[0].TypeName != "[number, ...string[]]" {
		t.Errorf("warning type = %q", warnings[0].TypeName)
	}
}

func TestEmitter_Unclassified(t *testing.T) {
	b := typedump.NewBuilder()
	never := b.Never()
	nested := b.Object(typedump.Required("ok", b.String()), typedump.Required("bad", b.Union(b.Number(), never)))
	p := b.Program()

	for _, typ := range []*typedump.Type{never, nested} {
		_, err := NewEmitter(p, Options{}).Emit(typ)
		if err == nil {
			t.Fatalf("expected error for %s", p.TypeToString(typ))
		}
		if !errors.Is(err, ErrUnclassified) {
			t.Errorf("errors.Is(err, ErrUnclassified) = false: %v", err)
		}
		var ce *ClassificationError
		if !errors.As(err, &ce) {
			t.Fatalf("expected *ClassificationError in chain: %v", err)
		}
		if ce.Flags != checker.TypeFlagsNever {
			t.Errorf("flags = %v", ce.Flags)
		}
		if len(ce.Split) != 1 || ce.Split[0] != checker.TypeFlagsNever {
			t.Errorf("split = %v", ce.Split)
		}
		if !strings.Contains(err.Error(), "131072") {
			t.Errorf("message should list the decomposed flags: %v", err)
		}
	}
}

func TestEmitter_Recursive(t *testing.T) {
	b := typedump.NewBuilder()
	node := b.Interface("Node")
	b.SetProps(node,
		typedump.Required("value", b.Number()),
		typedump.Optional("next", node),
	)
	p := b.Program()

	_, err := NewEmitter(p, Options{}).Emit(node)
	if !errors.Is(err, ErrRecursiveType) {
		t.Fatalf("expected ErrRecursiveType, got %v", err)
	}
	if errors.Is(err, ErrUnclassified) {
		t.Error("recursion is not a classification failure")
	}
}

func TestEmitter_SharedTypesAreNotRecursive(t *testing.T) {
	b := typedump.NewBuilder()
	str := b.String()
	pair := b.Object(typedump.Required("a", str), typedump.Required("b", str))
	list := b.Tuple(pair, pair)
	p := b.Program()

	got, err := NewEmitter(p, Options{}).Emit(list)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if got != "t.tuple([t.type({a: t.string, b: t.string}), t.type({a: t.string, b: t.string})])" {
		t.Errorf("Emit() = %s", got)
	}
}

func TestEmitter_NilType(t *testing.T) {
	b := typedump.NewBuilder()
	p := b.Program()
	if _, err := NewEmitter(p, Options{}).Emit(nil); err == nil {
		t.Error("expected error for nil type")
	}
}
