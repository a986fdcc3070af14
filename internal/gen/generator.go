package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/types"
	"path"
	"strings"

	"go.uber.org/zap"

	"state-generator/internal/analyze"
	"state-generator/internal/classify"
	"state-generator/internal/diagnostic"
	"state-generator/internal/model"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the file generated in each package.
	Filename string
	// RuntimeModule is the module path providing the reactive, scope and
	// collection packages.
	RuntimeModule string
	// SharedPrefix names shared companions: SharedPrefix + model name.
	SharedPrefix string
	// ScopedPrefix names scoped companions: ScopedPrefix + model name.
	ScopedPrefix string
	// DebugUnformatted writes a .unformatted.go sidecar when the generated
	// code fails to format.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:         "state_gen.go",
		RuntimeModule:    "state-generator",
		SharedPrefix:     "Shared",
		ScopedPrefix:     "Scoped",
		DebugUnformatted: true,
	}
}

// Generator generates companion code from a model graph. It keeps no state
// between calls, so packages may be generated concurrently.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "state_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
	// Models lists the models of the file in emission order.
	Models []string
}

// FileData is the generation plan of one package.
type FileData struct {
	PackageName string
	PackagePath string
	Dir         string
	Imports     []importSpec
	Models      []ModelData
}

// ModelData describes the companions of one model.
type ModelData struct {
	Name       string
	Union      bool
	Features   model.Features
	SharedName string
	ScopedName string
	// TypeParams is the type parameter list of a generic model ("[T any]").
	TypeParams string
	// TypeArgs repeats the type parameter names ("[T]").
	TypeArgs string
	// Source is the model type as written in the package ("Box[T]").
	Source string

	Fields   []FieldData
	Variants []VariantData

	// Qualified runtime identifiers, set only when the model needs them.
	Scope      string
	Sprintf    string
	CmpCompare string

	SharedFormat string
	ScopedFormat string
}

// FieldData describes one companion field and how to build it.
type FieldData struct {
	Name       string
	Class      string
	SharedType string
	SharedInit string
	ScopedType string
	ScopedInit string
}

// VariantData describes one union case.
type VariantData struct {
	Name         string
	Index        int
	Case         string // type switch case ("Renamed", "*Tagged")
	Pointer      bool   // the case matches a pointer, which may be nil
	SharedName   string
	ScopedName   string
	Payload      FieldData
	SharedFormat string
	ScopedFormat string
}

// Generate generates the companion file of the package at pkgPath. It
// returns nil when the package declares no models.
func (g *Generator) Generate(graph *analyze.ModelGraph, pkgPath string) (*GeneratedFile, error) {
	data, err := g.Plan(graph, pkgPath)
	if err != nil {
		return nil, err
	}

	if len(data.Models) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{
		Dir:      data.Dir,
		Filename: g.config.Filename,
		Models:   data.ModelNames(),
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugUnformatted {
			_ = writeDebugUnformatted(data.Dir, g.config.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w", err)
	}

	file.Content = formatted

	Logger().Debug("generated companions",
		zap.String("package", pkgPath),
		zap.Strings("models", file.Models))

	return file, nil
}

// Plan builds the template data of a package: models in dependency order,
// every field transformed for both companions, and the imports they need.
func (g *Generator) Plan(graph *analyze.ModelGraph, pkgPath string) (*FileData, error) {
	info, ok := graph.Packages[pkgPath]
	if !ok {
		return nil, fmt.Errorf("package %s was not loaded", pkgPath)
	}

	if info.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("package %s: %w", pkgPath, info.Diagnostics.Error())
	}

	decls := graph.ModelsOf(pkgPath)

	var diags diagnostic.Diagnostics

	order, err := orderModels(decls)
	if err != nil {
		diags.AddError(diagnostic.CodeDependencyCycle, err.Error(), "", "")
		return nil, fmt.Errorf("package %s: %w", pkgPath, diags.Error())
	}

	st := &fileState{
		config:   g.config,
		registry: graph,
		imports:  newImportSet(pkgPath),
	}

	data := &FileData{
		PackageName: info.Name,
		PackagePath: pkgPath,
		Dir:         info.Dir,
	}

	for _, i := range order {
		data.Models = append(data.Models, st.model(decls[i], &diags))
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("package %s: %w", pkgPath, diags.Error())
	}

	data.Imports = st.imports.specs()

	return data, nil
}

// orderModels sorts declarations so that every model comes after the models
// its stateful fields wrap. Self references are allowed.
func orderModels(decls []*model.Declaration) ([]int, error) {
	index := make(map[model.ModelID]int, len(decls))
	for i, d := range decls {
		index[d.ID] = i
	}

	order, err := topoSortModels(len(decls), func(i int) []int {
		var deps []int

		for _, id := range decls[i].Dependencies() {
			if j, ok := index[id]; ok && j != i {
				deps = append(deps, j)
			}
		}

		return deps
	})

	var cycle *cycleError
	if errors.As(err, &cycle) {
		names := make([]string, len(cycle.Nodes))
		for k, n := range cycle.Nodes {
			names[k] = decls[n].ID.Name
		}

		return nil, fmt.Errorf("stateful fields form a cycle between %s", strings.Join(names, ", "))
	}

	return order, err
}

// fileState is the per-package generation state.
type fileState struct {
	config   GeneratorConfig
	registry classify.Registry
	imports  *importSet
}

func (st *fileState) typeString(t types.Type) string {
	return types.TypeString(t, st.imports.qualifier)
}

// runtime returns the local name of a runtime package, importing it.
func (st *fileState) runtime(name string) string {
	return st.imports.add(path.Join(st.config.RuntimeModule, name), name)
}

func (st *fileState) std(name string) string {
	return st.imports.add(name, name)
}

func (st *fileState) model(d *model.Declaration, diags *diagnostic.Diagnostics) ModelData {
	md := ModelData{
		Name:       d.ID.Name,
		Union:      d.Kind == model.DeclUnion,
		Features:   d.Features,
		SharedName: st.config.SharedPrefix + d.ID.Name,
		ScopedName: st.config.ScopedPrefix + d.ID.Name,
	}

	md.TypeParams, md.TypeArgs = st.typeParams(d.TypeParams())
	md.Source = d.ID.Name + md.TypeArgs
	md.Scope = st.runtime("scope") + ".Scope"

	if md.Union || d.Features.Debug {
		md.Sprintf = st.std("fmt") + ".Sprintf"
	}

	if md.Union && d.Features.Ord {
		md.CmpCompare = st.std("cmp") + ".Compare"
	}

	reserved := reservedNames(d)
	st.requireCapabilities(d, diags)

	if md.Union {
		for _, v := range d.Variants {
			if reserved[v.Payload.Name] {
				diags.AddError(diagnostic.CodeUnsupportedShape,
					fmt.Sprintf("payload field %s collides with a generated method", v.Payload.Name),
					d.DisplayName(), d.ID.Name+"."+v.Name)
			}

			vd := VariantData{
				Name:       v.Name,
				Index:      v.Index,
				Case:       v.Name,
				SharedName: md.SharedName + v.Name,
				ScopedName: md.ScopedName + v.Name,
				Payload:    st.field(v.Payload),
			}

			if v.Pointer {
				vd.Case = "*" + v.Name
				vd.Pointer = true
			}

			vd.SharedFormat = vd.SharedName + "{" + v.Payload.Name + ": %v}"
			vd.ScopedFormat = vd.ScopedName + "{" + v.Payload.Name + ": %v}"

			md.Variants = append(md.Variants, vd)
		}

		return md
	}

	parts := make([]string, 0, len(d.Fields))

	for _, f := range d.Fields {
		if reserved[f.Name] {
			diags.AddError(diagnostic.CodeUnsupportedShape,
				fmt.Sprintf("field %s collides with a generated method", f.Name),
				d.DisplayName(), d.ID.Name+"."+f.Name)
		}

		md.Fields = append(md.Fields, st.field(f))
		parts = append(parts, f.Name+": %v")
	}

	md.SharedFormat = md.SharedName + "{" + strings.Join(parts, ", ") + "}"
	md.ScopedFormat = md.ScopedName + "{" + strings.Join(parts, ", ") + "}"

	return md
}

// requireCapabilities reports stateful fields and payloads whose target model
// does not derive the eq or ord capability d requests. The generated Equal
// and Compare delegate to the target companion's methods.
func (st *fileState) requireCapabilities(d *model.Declaration, diags *diagnostic.Diagnostics) {
	if !d.Features.Eq && !d.Features.Ord {
		return
	}

	check := func(f model.Field, path string) {
		if !f.Class.IsStateful() {
			return
		}

		target, ok := st.registry.Lookup(f.Target)
		if !ok {
			return
		}

		var missing []string
		if d.Features.Eq && !target.Features.Eq {
			missing = append(missing, analyze.FeatureEq)
		}

		if d.Features.Ord && !target.Features.Ord {
			missing = append(missing, analyze.FeatureOrd)
		}

		if len(missing) > 0 {
			diags.AddError(diagnostic.CodeMissingCapability,
				fmt.Sprintf("%s derives %s but stateful target %s does not",
					d.ID.Name, strings.Join(missing, ","), target.DisplayName()),
				d.DisplayName(), path)
		}
	}

	for _, f := range d.Fields {
		check(f, d.ID.Name+"."+f.Name)
	}

	for _, v := range d.Variants {
		check(v.Payload, d.ID.Name+"."+v.Name)
	}
}

// reservedNames are the method names a model's companions define.
func reservedNames(d *model.Declaration) map[string]bool {
	names := map[string]bool{"Clone": true}

	if d.Kind == model.DeclUnion {
		names["Variant"] = true
	}

	if d.Features.Eq {
		names["Equal"] = true
	}

	if d.Features.Ord {
		names["Compare"] = true
	}

	if d.Features.Debug {
		names["String"] = true
	}

	return names
}

func (st *fileState) typeParams(tps *types.TypeParamList) (string, string) {
	if tps.Len() == 0 {
		return "", ""
	}

	decls := make([]string, tps.Len())
	names := make([]string, tps.Len())

	for i := range tps.Len() {
		tp := tps.At(i)
		names[i] = tp.Obj().Name()
		decls[i] = names[i] + " " + st.typeString(tp.Constraint())
	}

	return "[" + strings.Join(decls, ", ") + "]", "[" + strings.Join(names, ", ") + "]"
}

// companion returns the companion type and constructor of the model type t.
// Shared record companions are pointers; union companions are interfaces.
func (st *fileState) companion(t types.Type, target model.ModelID, shared bool) (string, string) {
	named, _ := types.Unalias(t).(*types.Named)
	obj := named.Origin().Obj()

	qual := ""
	if q := st.imports.qualifier(obj.Pkg()); q != "" {
		qual = q + "."
	}

	var args string

	if ta := named.TypeArgs(); ta.Len() > 0 {
		parts := make([]string, ta.Len())
		for i := range ta.Len() {
			parts[i] = st.typeString(ta.At(i))
		}

		args = "[" + strings.Join(parts, ", ") + "]"
	}

	prefix := st.config.ScopedPrefix
	if shared {
		prefix = st.config.SharedPrefix
	}

	typ := qual + prefix + obj.Name() + args
	ctor := qual + "New" + prefix + obj.Name() + args

	if decl, ok := st.registry.Lookup(target); shared && ok && decl.Kind == model.DeclRecord {
		typ = "*" + typ
	}

	return typ, ctor
}

// sliceExpr turns a collection-shaped source expression into a slice.
func (st *fileState) sliceExpr(f model.Field, src string) string {
	switch f.Shape {
	case model.ShapeArray:
		return src + "[:]"
	case model.ShapeNamedSlice:
		return "[]" + st.typeString(f.Elem) + "(" + src + ")"
	default:
		return src
	}
}

// field applies the classification transform to f for both companions.
func (st *fileState) field(f model.Field) FieldData {
	src := "data." + f.Name

	fd := FieldData{
		Name:  f.Name,
		Class: f.Class.String(),
	}

	switch f.Class {
	case model.ClassBare:
		rx, sc := st.runtime("reactive"), st.runtime("scope")
		typ := st.typeString(f.Type)

		fd.SharedType = fmt.Sprintf("*%s.Signal[%s]", rx, typ)
		fd.SharedInit = fmt.Sprintf("%s.New(%s)", rx, src)
		fd.ScopedType = fmt.Sprintf("*%s.Signal[%s]", sc, typ)
		fd.ScopedInit = fmt.Sprintf("%s.NewSignal(cx, %s)", sc, src)

	case model.ClassStateful:
		rx, sc := st.runtime("reactive"), st.runtime("scope")
		sharedType, sharedCtor := st.companion(f.Type, f.Target, true)
		scopedType, scopedCtor := st.companion(f.Type, f.Target, false)

		fd.SharedType = fmt.Sprintf("*%s.Signal[%s]", rx, sharedType)
		fd.SharedInit = fmt.Sprintf("%s.New(%s(%s))", rx, sharedCtor, src)
		fd.ScopedType = fmt.Sprintf("*%s.Signal[%s]", sc, scopedType)
		fd.ScopedInit = fmt.Sprintf("%s.NewSignal(cx, %s(cx, %s))", sc, scopedCtor, src)

	case model.ClassCollection:
		col := st.runtime("collection")
		elem := st.typeString(f.Elem)
		slice := st.sliceExpr(f, src)

		fd.SharedType = fmt.Sprintf("*%s.Collection[%s]", col, elem)
		fd.SharedInit = fmt.Sprintf("%s.New(%s)", col, slice)
		fd.ScopedType = fmt.Sprintf("*%s.Scoped[%s]", col, elem)
		fd.ScopedInit = fmt.Sprintf("%s.NewScoped(cx, %s)", col, slice)

	case model.ClassStatefulCollection:
		col := st.runtime("collection")
		elem := st.typeString(f.Elem)
		slice := st.sliceExpr(f, src)
		sharedType, sharedCtor := st.companion(f.Elem, f.Target, true)
		scopedType, scopedCtor := st.companion(f.Elem, f.Target, false)

		fd.SharedType = fmt.Sprintf("*%s.Collection[%s]", col, sharedType)
		fd.SharedInit = fmt.Sprintf("%s.New(%s.Map(%s, %s))", col, col, slice, sharedCtor)
		fd.ScopedType = fmt.Sprintf("*%s.Scoped[%s]", col, scopedType)
		fd.ScopedInit = fmt.Sprintf("%s.NewScoped(cx, %s.Map(%s, func(v %s) %s { return %s(cx, v) }))",
			col, col, slice, elem, scopedType, scopedCtor)
	}

	return fd
}

// ModelNames lists the models of a plan in emission order.
func (d *FileData) ModelNames() []string {
	names := make([]string, 0, len(d.Models))
	for _, m := range d.Models {
		names = append(names, m.Name)
	}

	return names
}
