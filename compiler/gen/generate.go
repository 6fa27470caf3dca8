package gen

import (
	"context"
	"fmt"
	"runtime"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/autostruct/names"
	"github.com/syssam/autostruct/schema"
	"github.com/syssam/autostruct/schema/field"
)

// TypeMapper maps a native type name into a target-type descriptor. Every
// dialect driver satisfies it.
type TypeMapper interface {
	MapType(name string) *field.TypeInfo
}

// Generator emits one snippet per assembled entity.
type Generator struct {
	cfg    Config
	mapper TypeMapper
}

// NewGenerator creates a Generator that resolves native types through the
// given mapper.
func NewGenerator(mapper TypeMapper, opts ...Option) (*Generator, error) {
	if mapper == nil {
		return nil, &ConfigError{Option: "TypeMapper", Message: "mapper cannot be nil"}
	}
	cfg := Config{Workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Generator{cfg: cfg, mapper: mapper}, nil
}

// Generate produces one finalized snippet per enum, composite type, and
// table. Entities are independent of one another's content, so per-entity
// work runs in parallel; output order is fixed by the assembly order
// regardless of scheduling.
func (g *Generator) Generate(ctx context.Context, db *schema.Database) ([]*Snippet, error) {
	index := g.identIndex(db)
	snippets := make([]*Snippet, len(db.Enums)+len(db.CompositeTypes)+len(db.Tables))
	errg, _ := errgroup.WithContext(ctx)
	errg.SetLimit(g.cfg.Workers)
	slot := 0
	for _, e := range db.Enums {
		i, e := slot, e
		errg.Go(func() error {
			snippets[i] = g.enumSnippet(e)
			return nil
		})
		slot++
	}
	for _, c := range db.CompositeTypes {
		i, c := slot, c
		errg.Go(func() error {
			s, err := g.compositeSnippet(c, index)
			if err != nil {
				return err
			}
			snippets[i] = s
			return nil
		})
		slot++
	}
	for _, t := range db.Tables {
		i, t := slot, t
		errg.Go(func() error {
			s, err := g.tableSnippet(t, index)
			if err != nil {
				return err
			}
			snippets[i] = s
			return nil
		})
		slot++
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	for _, s := range snippets {
		s.Finalize()
	}
	return snippets, nil
}

// identIndex maps the pascal-cased native name of every generated enum and
// composite type to its final identifier, so custom-named descriptors can be
// resolved into dependency edges.
func (g *Generator) identIndex(db *schema.Database) map[string]string {
	index := make(map[string]string, len(db.Enums)+len(db.CompositeTypes))
	for _, e := range db.Enums {
		index[names.Pascal(e.Name)] = g.entityIdent(e.Name)
	}
	for _, c := range db.CompositeTypes {
		index[names.Pascal(c.Name)] = g.entityIdent(c.Name)
	}
	return index
}

// entityIdent derives the generated identifier for an entity name.
func (g *Generator) entityIdent(name string) string {
	if g.cfg.SingularNames {
		name = names.Singular(name)
	}
	return names.Pascal(name)
}

// resolveType maps a native type name and records the imports and dependency
// edges its descriptor requires on the snippet. Custom-named leaves that
// match a generated entity are rewritten to that entity's identifier; the
// rest either stay as caller-supplied placeholders or, in strict mode, fail
// the pass.
func (g *Generator) resolveType(s *Snippet, entity, fieldName, native string, index map[string]string) (*field.TypeInfo, error) {
	info := g.mapper.MapType(native)
	if leaf := info.Unwrap(); leaf.Type == field.TypeCustom {
		switch ident, ok := index[leaf.Ident]; {
		case ok:
			leaf.Ident = ident
			s.AddDependency(ident)
		case g.cfg.StrictTypes:
			return nil, &GenError{Entity: entity, Field: fieldName, NativeType: native, Message: "unrecognized native type"}
		default:
			s.AddDependency(leaf.Ident)
		}
	}
	for _, path := range info.PkgPaths() {
		s.AddImport(path)
	}
	return info, nil
}

// enumSnippet emits a named closed-choice type: a string-typed declaration,
// one constant per value in catalog-defined order, and a Values method.
func (g *Generator) enumSnippet(e *schema.Enum) *Snippet {
	ident := g.entityIdent(e.Name)
	s := newSnippet(ident)
	decl := jen.Type().Id(ident).String()
	consts := jen.Const().DefsFunc(func(grp *jen.Group) {
		for _, v := range e.Values {
			grp.Id(ident + names.Pascal(v.Name)).Id(ident).Op("=").Lit(v.Name)
		}
	})
	values := jen.Func().Params(jen.Id(ident)).Id("Values").Params().Index().String().Block(
		jen.Return(jen.Index().String().ValuesFunc(func(grp *jen.Group) {
			for _, v := range e.Values {
				grp.Lit(v.Name)
			}
		})),
	)
	s.Body = fmt.Sprintf("// %s is the generated type for the %q enum.\n%#v\n\n// %s values, in their catalog-defined order.\n%#v\n\n// Values returns all values of the enum, in order.\n%#v",
		ident, e.Name, decl, ident, consts, values)
	return s
}

// compositeSnippet emits a named record type with one field per attribute,
// in catalog-declared position order.
func (g *Generator) compositeSnippet(c *schema.CompositeType, index map[string]string) (*Snippet, error) {
	ident := g.entityIdent(c.Name)
	s := newSnippet(ident)
	fields := make([]jen.Code, 0, len(c.Attributes))
	for _, attr := range c.Attributes {
		info, err := g.resolveType(s, ident, attr.Name, attr.DataType, index)
		if err != nil {
			return nil, err
		}
		fields = append(fields, g.fieldCode(attr.Name, info))
	}
	decl := jen.Type().Id(ident).Struct(fields...)
	s.Body = fmt.Sprintf("// %s is the generated type for the %q composite type.\n%#v", ident, c.Name, decl)
	return s, nil
}

// tableSnippet emits a named record type with one field per column. Nullable
// columns get exactly one nullable wrapper around the descriptor their type
// would otherwise produce; foreign keys register dependency edges.
func (g *Generator) tableSnippet(t *schema.Table, index map[string]string) (*Snippet, error) {
	ident := g.entityIdent(t.Name)
	s := newSnippet(ident)
	fields := make([]jen.Code, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.ForeignKeyTable != "" {
			s.AddDependency(g.entityIdent(c.ForeignKeyTable))
		}
		info, err := g.resolveType(s, ident, c.Name, c.UDTName, index)
		if err != nil {
			return nil, err
		}
		if c.Nullable {
			info = field.Nullable(info)
		}
		fields = append(fields, g.fieldCode(c.Name, info))
	}
	decl := jen.Type().Id(ident).Struct(fields...)
	s.Body = fmt.Sprintf("// %s is the model entity for the %q table.\n%#v", ident, t.Name, decl)
	return s, nil
}

// fieldCode renders one struct field with its resolved Go type and the
// configured struct tag.
func (g *Generator) fieldCode(column string, info *field.TypeInfo) jen.Code {
	code := jen.Id(names.Pascal(column)).Id(info.String())
	if g.cfg.StructTag != "" {
		code = code.Tag(map[string]string{g.cfg.StructTag: column})
	}
	return code
}
