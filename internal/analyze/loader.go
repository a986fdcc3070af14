package analyze

import (
	"cmp"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"

	"golang.org/x/tools/go/packages"

	"state-generator/internal/classify"
	"state-generator/internal/common"
	"state-generator/internal/diagnostic"
	"state-generator/internal/model"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and extracts their models.
type Analyzer struct {
	graph   *ModelGraph
	dir     string
	skip    string
	pending []pending
}

// pending is a model found by its directive whose fields or variants are
// not built yet. Fields are classified only once every package is scanned,
// so stateful fields may refer to models of any loaded package.
type pending struct {
	decl *model.Declaration
	pkg  *packages.Package
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewModelGraph(),
	}
}

// InDir sets the directory patterns are resolved against.
func (a *Analyzer) InDir(dir string) *Analyzer {
	a.dir = dir
	return a
}

// SkipFile makes the loader ignore the declarations of every file with the
// given base name, typically the generated output. Type errors are then
// tolerated, since code may refer to companions that are not generated yet.
func (a *Analyzer) SkipFile(name string) *Analyzer {
	a.skip = name
	return a
}

// LoadPackages loads the specified packages and builds the model graph.
// Patterns are standard Go package patterns (e.g., "./examples/todo").
func (a *Analyzer) LoadPackages(patterns ...string) (*ModelGraph, error) {
	cfg := &packages.Config{
		Mode:      LoadMode,
		Dir:       a.dir,
		ParseFile: a.parseFile,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError && a.skip != "" {
				a.graph.TypeErrors = append(a.graph.TypeErrors, e)
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.collectPackage(pkg)
	}

	classifier := classify.New(a.graph)
	for _, p := range a.pending {
		switch p.decl.Kind {
		case model.DeclRecord:
			a.buildRecord(p, classifier)
		case model.DeclUnion:
			a.buildUnion(p, classifier)
		}
	}

	a.pending = nil

	return a.graph, nil
}

// Graph returns the current model graph.
func (a *Analyzer) Graph() *ModelGraph {
	return a.graph
}

func (a *Analyzer) parseFile(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	if a.skip != "" && filepath.Base(filename) == a.skip {
		return parser.ParseFile(fset, filename, src, parser.PackageClauseOnly)
	}

	return parser.ParseFile(fset, filename, src, parser.AllErrors|parser.ParseComments)
}

// collectPackage registers every directive-carrying type of pkg.
func (a *Analyzer) collectPackage(pkg *packages.Package) {
	if _, seen := a.graph.Packages[pkg.PkgPath]; seen {
		return
	}

	info := &PackageInfo{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Types: pkg.Types,
	}

	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	a.graph.Packages[pkg.PkgPath] = info
	a.graph.Order = append(a.graph.Order, pkg.PkgPath)

	for _, file := range pkg.Syntax {
		for _, d := range file.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}

				args, ok := findDirective(doc)
				if !ok {
					continue
				}

				a.declare(pkg, info, ts, args)
			}
		}
	}
}

// declare registers a model with its kind and capabilities.
func (a *Analyzer) declare(pkg *packages.Package, info *PackageInfo, ts *ast.TypeSpec, args string) {
	pos := pkg.Fset.Position(ts.Pos())
	name := pkg.Name + "." + ts.Name.Name

	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok || obj.IsAlias() {
		a.errorAt(info, pos, diagnostic.CodeUnsupportedShape,
			"type aliases cannot be derived, put the directive on the aliased type", name, "")

		return
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		a.errorAt(info, pos, diagnostic.CodeUnsupportedShape, "only defined types can be derived", name, "")
		return
	}

	features, unknown := parseFeatures(args)
	for _, u := range unknown {
		a.warningAt(info, pos, diagnostic.CodeUnknownFeature, fmt.Sprintf("unknown capability %q", u), name, "")
	}

	decl := &model.Declaration{
		ID:       model.ModelID{PkgPath: pkg.PkgPath, Name: obj.Name()},
		Named:    named,
		Features: features,
		Pos:      pos,
	}

	switch named.Underlying().(type) {
	case *types.Struct:
		decl.Kind = model.DeclRecord
	case *types.Interface:
		decl.Kind = model.DeclUnion
	default:
		a.errorAt(info, pos, diagnostic.CodeUnsupportedShape,
			fmt.Sprintf("underlying type %s is neither a struct nor an interface", named.Underlying()), name, "")

		return
	}

	a.graph.Models.Add(decl)
	info.Models = append(info.Models, decl.ID)
	a.pending = append(a.pending, pending{decl: decl, pkg: pkg})
}

// buildRecord classifies the fields of a struct model.
func (a *Analyzer) buildRecord(p pending, c *classify.Classifier) {
	decl := p.decl
	st := decl.Named.Underlying().(*types.Struct)
	root := NewTypePath(decl.ID.Name)

	for i := range st.NumFields() {
		v := st.Field(i)
		if v.Name() == "_" {
			continue
		}

		f := model.Field{
			Name:     v.Name(),
			Type:     v.Type(),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: v.Embedded(),
		}

		if a.classify(p, c, &f, root.Field(v.Name()).String(), v.Pos()) {
			decl.Fields = append(decl.Fields, f)
		}
	}
}

// candidate is a type implementing a union interface.
type candidate struct {
	named   *types.Named
	pointer bool
	pos     token.Position
}

// buildUnion collects the variants of an interface model. Variants are the
// named types of the union's package implementing it, ordered by position.
func (a *Analyzer) buildUnion(p pending, c *classify.Classifier) {
	decl := p.decl
	info := a.graph.Packages[p.pkg.PkgPath]
	name := decl.DisplayName()
	iface := decl.Named.Underlying().(*types.Interface)

	if decl.TypeParams().Len() > 0 {
		a.errorAt(info, decl.Pos, diagnostic.CodeUnsupportedShape, "generic unions are not supported", name, "")
		return
	}

	if !iface.IsMethodSet() || iface.NumMethods() == 0 {
		a.errorAt(info, decl.Pos, diagnostic.CodeUnsupportedShape,
			"a union must be an interface with at least one method", name, "")

		return
	}

	candidates := a.variantsOf(p.pkg, decl.Named, iface)
	if common.IsEmpty(candidates) {
		a.errorAt(info, decl.Pos, diagnostic.CodeNoVariants,
			fmt.Sprintf("no type in package %s implements %s", p.pkg.PkgPath, decl.ID.Name), name, "")

		return
	}

	root := NewTypePath(decl.ID.Name)

	for idx, cand := range candidates {
		vname := cand.named.Obj().Name()
		path := root.Field(vname).String()

		st, ok := cand.named.Underlying().(*types.Struct)
		if !ok {
			a.errorAt(info, cand.pos, diagnostic.CodeUnsupportedShape,
				fmt.Sprintf("variant %s is not a struct", vname), name, path)

			continue
		}

		switch st.NumFields() {
		case 0:
			a.errorAt(info, cand.pos, diagnostic.CodeUnitVariant,
				fmt.Sprintf("variant %s has no payload field", vname), name, path)

			continue
		case 1:
		default:
			a.errorAt(info, cand.pos, diagnostic.CodeMultiFieldVariant,
				fmt.Sprintf("variant %s has %d fields, variants carry exactly one payload", vname, st.NumFields()), name, path)

			continue
		}

		v := st.Field(0)
		payload := model.Field{
			Name:     v.Name(),
			Type:     v.Type(),
			Tag:      reflect.StructTag(st.Tag(0)),
			Embedded: v.Embedded(),
		}

		if !a.classify(p, c, &payload, path, v.Pos()) {
			continue
		}

		decl.Variants = append(decl.Variants, model.Variant{
			Name:    vname,
			Named:   cand.named,
			Pointer: cand.pointer,
			Index:   idx,
			Payload: payload,
		})
	}
}

func (a *Analyzer) variantsOf(pkg *packages.Package, union *types.Named, iface *types.Interface) []candidate {
	var out []candidate

	scope := pkg.Types.Scope()
	for _, n := range scope.Names() {
		tn, ok := scope.Lookup(n).(*types.TypeName)
		if !ok || tn.IsAlias() || tn == union.Obj() {
			continue
		}

		named, ok := tn.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 || types.IsInterface(named) {
			continue
		}

		pos := pkg.Fset.Position(tn.Pos())
		if a.skip != "" && filepath.Base(pos.Filename) == a.skip {
			continue
		}

		var pointer bool

		switch {
		case types.Implements(named, iface):
		case types.Implements(types.NewPointer(named), iface):
			pointer = true
		default:
			continue
		}

		out = append(out, candidate{named: named, pointer: pointer, pos: pos})
	}

	slices.SortFunc(out, func(x, y candidate) int {
		return cmp.Or(
			cmp.Compare(x.pos.Filename, y.pos.Filename),
			cmp.Compare(x.pos.Offset, y.pos.Offset),
		)
	})

	return out
}

// classify runs the classifier on f and stamps its diagnostics with the
// field's position.
func (a *Analyzer) classify(p pending, c *classify.Classifier, f *model.Field, path string, pos token.Pos) bool {
	var local diagnostic.Diagnostics

	ok := c.Field(f, p.decl.DisplayName(), path, &local)

	where := p.pkg.Fset.Position(pos).String()
	for _, list := range [][]diagnostic.Diagnostic{local.Errors, local.Warnings, local.Infos} {
		for i := range list {
			if list[i].Position == "" {
				list[i].Position = where
			}
		}
	}

	a.graph.Packages[p.pkg.PkgPath].Diagnostics.Merge(local)

	return ok
}

func (a *Analyzer) errorAt(info *PackageInfo, pos token.Position, code, message, modelName, path string) {
	info.Diagnostics.Add(diagnostic.Diagnostic{
		Severity:  diagnostic.DiagnosticError,
		Code:      code,
		Message:   message,
		Model:     modelName,
		FieldPath: path,
		Position:  pos.String(),
	})
}

func (a *Analyzer) warningAt(info *PackageInfo, pos token.Position, code, message, modelName, path string) {
	info.Diagnostics.Add(diagnostic.Diagnostic{
		Severity:  diagnostic.DiagnosticWarning,
		Code:      code,
		Message:   message,
		Model:     modelName,
		FieldPath: path,
		Position:  pos.String(),
	})
}
