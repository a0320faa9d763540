package typedump

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/broady/tsio/iotsgen/checker"
)

// ErrInvalidDump marks every structural error found while resolving a dump.
var ErrInvalidDump = errors.New("invalid type dump")

// Document is the serialized form of a type dump. JSON dumps decode too,
// since JSON is a subset of YAML.
type Document struct {
	Files []FileDoc `yaml:"files"`
	Types []TypeDoc `yaml:"types"`
}

// FileDoc is one source file of the dumped program.
type FileDoc struct {
	Name            string           `yaml:"name"`
	DeclarationFile bool             `yaml:"declarationFile"`
	Declarations    []DeclarationDoc `yaml:"declarations"`
}

// DeclarationDoc is one declaration. Kind is "type", "interface", "variable"
// or "namespace"; Type refers to TypeDoc.ID and is unset for namespaces.
type DeclarationDoc struct {
	Kind         string           `yaml:"kind"`
	Name         string           `yaml:"name"`
	Type         int              `yaml:"type"`
	Declarations []DeclarationDoc `yaml:"declarations"`
}

// TypeDoc is one node of the type graph. All type references are ids; zero
// means absent, so ids start at 1.
type TypeDoc struct {
	ID             int         `yaml:"id"`
	Flags          uint32      `yaml:"flags"`
	Text           string      `yaml:"text"`
	Types          []int       `yaml:"types"`
	Members        []MemberDoc `yaml:"members"`
	Alias          *AliasDoc   `yaml:"alias"`
	StringIndex    int         `yaml:"stringIndex"`
	NumberIndex    int         `yaml:"numberIndex"`
	CallSignatures int         `yaml:"callSignatures"`
	Form           string      `yaml:"form"`
	Elements       []int       `yaml:"elements"`
	Rest           int         `yaml:"rest"`
}

// MemberDoc is one object member.
type MemberDoc struct {
	Name     string `yaml:"name"`
	Type     int    `yaml:"type"`
	Optional bool   `yaml:"optional"`
}

// AliasDoc names the alias a type originates from.
type AliasDoc struct {
	Name      string `yaml:"name"`
	Arguments []int  `yaml:"arguments"`
}

// LoadFile reads and resolves a dump from disk.
func LoadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read type dump %s", path)
	}
	p, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return p, nil
}

// Load decodes and resolves a dump.
func Load(r io.Reader) (*Program, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.WithHint(errors.Mark(errors.New("empty type dump"), ErrInvalidDump),
				"the dump must contain at least a files or types key")
		}
		return nil, errors.Wrap(err, "decode type dump")
	}
	return Resolve(&doc)
}

// Resolve links a decoded Document into a Program, checking that every id is
// unique and every reference resolves.
func Resolve(doc *Document) (*Program, error) {
	types := make(map[int]*Type, len(doc.Types))
	for i := range doc.Types {
		td := &doc.Types[i]
		if td.ID <= 0 {
			return nil, invalidf("type #%d: id must be positive, got %d", i, td.ID)
		}
		if _, dup := types[td.ID]; dup {
			return nil, invalidf("duplicate type id %d", td.ID)
		}
		form, err := parseForm(td.Form)
		if err != nil {
			return nil, errors.Wrapf(err, "type %d", td.ID)
		}
		types[td.ID] = &Type{
			id:             td.ID,
			flags:          checker.TypeFlags(td.Flags),
			text:           td.Text,
			callSignatures: td.CallSignatures,
			form:           form,
		}
	}

	r := resolver{types: types}
	for i := range doc.Types {
		td := &doc.Types[i]
		t := types[td.ID]
		r.ctx = td.ID

		t.constituents = r.list(td.Types, "types")
		t.elements = r.list(td.Elements, "elements")
		t.stringIndex = r.optional(td.StringIndex, "stringIndex")
		t.numberIndex = r.optional(td.NumberIndex, "numberIndex")
		t.rest = r.optional(td.Rest, "rest")
		if td.Alias != nil {
			t.aliasName = td.Alias.Name
			t.aliasArgs = r.list(td.Alias.Arguments, "alias.arguments")
		}
		for _, md := range td.Members {
			t.members = append(t.members, member{
				name:     md.Name,
				typ:      r.required(md.Type, "member "+md.Name),
				optional: md.Optional,
			})
		}
		if r.err != nil {
			return nil, r.err
		}
	}

	files := make([]checker.SourceFile, 0, len(doc.Files))
	for _, fd := range doc.Files {
		if fd.Name == "" {
			return nil, invalidf("file without a name")
		}
		decls, err := resolveDeclarations(fd.Declarations, fd.Name, types)
		if err != nil {
			return nil, errors.Wrapf(err, "file %s", fd.Name)
		}
		files = append(files, checker.SourceFile{
			Name:            fd.Name,
			DeclarationFile: fd.DeclarationFile,
			Declarations:    decls,
		})
	}

	return &Program{files: files, types: types}, nil
}

func resolveDeclarations(docs []DeclarationDoc, file string, types map[int]*Type) ([]checker.Declaration, error) {
	decls := make([]checker.Declaration, 0, len(docs))
	for _, dd := range docs {
		kind, ok := checker.ParseDeclarationKind(dd.Kind)
		if !ok {
			return nil, errors.WithHint(
				invalidf("declaration %q: unknown kind %q", dd.Name, dd.Kind),
				"kind must be one of type, interface, variable, namespace")
		}
		d := checker.Declaration{Kind: kind, Name: dd.Name, File: file}
		if kind == checker.DeclarationNamespace {
			children, err := resolveDeclarations(dd.Declarations, file, types)
			if err != nil {
				return nil, errors.Wrapf(err, "namespace %s", dd.Name)
			}
			d.Children = children
		} else {
			if len(dd.Declarations) > 0 {
				return nil, invalidf("declaration %q: only namespaces have nested declarations", dd.Name)
			}
			t, ok := types[dd.Type]
			if !ok {
				return nil, invalidf("declaration %q: unknown type id %d", dd.Name, dd.Type)
			}
			d.Type = t
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// resolver records the first dangling reference of a type.
type resolver struct {
	types map[int]*Type
	ctx   int
	err   error
}

func (r *resolver) required(id int, field string) *Type {
	t, ok := r.types[id]
	if !ok && r.err == nil {
		r.err = invalidf("type %d: %s refers to unknown type id %d", r.ctx, field, id)
	}
	return t
}

func (r *resolver) optional(id int, field string) *Type {
	if id == 0 {
		return nil
	}
	return r.required(id, field)
}

func (r *resolver) list(ids []int, field string) []*Type {
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Type, len(ids))
	for i, id := range ids {
		out[i] = r.required(id, field)
	}
	return out
}

func parseForm(s string) (checker.Form, error) {
	switch s {
	case "", "other":
		return checker.FormOther, nil
	case "tuple":
		return checker.FormTuple, nil
	case "array":
		return checker.FormArray, nil
	default:
		return 0, errors.WithHint(invalidf("unknown form %q", s), "form must be tuple, array, or omitted")
	}
}

func invalidf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidDump)
}
