package iotsgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/broady/tsio/iotsgen/checker/typedump"
	"github.com/broady/tsio/iotsgen/codec"
	"github.com/broady/tsio/iotsgen/sink"
)

func sampleProgram() *typedump.Program {
	b := typedump.NewBuilder()
	str := b.String()
	num := b.Number()
	b.File("model.ts",
		typedump.DeclareType("n", num),
		typedump.DeclareType("Any", b.Any()),
		typedump.DeclareType("Args", b.TupleWithRest(str, num)),
	)
	b.File("dep.ts", typedump.DeclareType("Dep", str))
	return b.Program()
}

func TestGenerator_Generate(t *testing.T) {
	res, err := FromChecker(sampleProgram()).
		FileNames("model.ts").
		WithLogger(discard).
		Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := "import * as t from \"io-ts\"\n\nconst n = t.number\n\nconst Any = t.unknown\n\nconst Args = t.tuple([t.number])"
	if res.Text != want {
		t.Errorf("Text =\n%s\nwant\n%s", res.Text, want)
	}
	if len(res.Entries) != 3 {
		t.Errorf("Entries = %d", len(res.Entries))
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Code != codec.WarnTupleRest {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if len(res.Failures()) != 0 {
		t.Errorf("Failures = %v", res.Failures())
	}
}

func TestGenerator_Options(t *testing.T) {
	res, err := FromChecker(sampleProgram()).
		FollowImports().
		WithoutHeader().
		AnyType(codec.AnyAsAny).
		WithLogger(discard).
		Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := "const n = t.number\n\nconst Any = t.any\n\nconst Args = t.tuple([t.number])\n\nconst Dep = t.string"
	if res.Text != want {
		t.Errorf("Text =\n%s\nwant\n%s", res.Text, want)
	}
}

func TestGenerator_InvalidConfig(t *testing.T) {
	_, err := FromChecker(sampleProgram()).AnyType("never").Generate(context.Background())
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGenerator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FromChecker(sampleProgram()).Generate(ctx); err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerator_FromDump(t *testing.T) {
	dir := t.TempDir()
	dump := filepath.Join(dir, "types.yaml")
	const doc = `
files:
  - name: a.ts
    declarations:
      - {kind: type, name: r, type: 3}
types:
  - {id: 1, flags: 4, text: string}
  - {id: 2, flags: 65536, text: "null"}
  - {id: 3, flags: 524288, text: "Record<string, null>", alias: {name: Record, arguments: [1, 2]}, stringIndex: 2}
`
	if err := os.WriteFile(dump, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := FromDump(dump).FileNames("a.ts").WithoutHeader().WithLogger(discard).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Text != "const r = t.record(t.string, t.null)" {
		t.Errorf("Text = %q", res.Text)
	}

	if _, err := FromDump(filepath.Join(dir, "missing.yaml")).Generate(context.Background()); err == nil {
		t.Error("expected error for missing dump")
	}
}

func TestGenerator_ToSink(t *testing.T) {
	mem := sink.NewMemorySink()
	_, err := FromChecker(sampleProgram()).
		FileNames("dep.ts").
		WithoutHeader().
		WithLogger(discard).
		ToSink(context.Background(), mem, "gen/codecs.ts")
	if err != nil {
		t.Fatalf("ToSink: %v", err)
	}
	if got := string(mem.Get("gen/codecs.ts")); got != "const Dep = t.string\n" {
		t.Errorf("written = %q", got)
	}

	// Nothing visible: nothing written.
	mem = sink.NewMemorySink()
	res, err := FromChecker(sampleProgram()).WithLogger(discard).ToSink(context.Background(), mem, "codecs.ts")
	if err != nil {
		t.Fatalf("ToSink: %v", err)
	}
	if res.Text != "" || len(mem.Files()) != 0 {
		t.Errorf("expected no output, got %q and %d files", res.Text, len(mem.Files()))
	}

	if _, err := FromChecker(sampleProgram()).FileNames("dep.ts").WithLogger(discard).ToSink(context.Background(), mem, "../x.ts"); err == nil {
		t.Error("expected invalid path error")
	}
}

func TestResult_Failures(t *testing.T) {
	b := typedump.NewBuilder()
	b.File("a.ts", typedump.DeclareType("Bad", b.Never()), typedump.DeclareType("Good", b.String()))
	res, err := FromChecker(b.Program()).FileNames("a.ts").WithLogger(discard).Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	failures := res.Failures()
	if len(failures) != 1 || failures[0].Name != "Bad" {
		t.Errorf("Failures = %v", failures)
	}
}
