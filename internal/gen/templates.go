package gen

import "text/template"

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by state-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Models}}{{if .Union}}{{template "union" .}}{{else}}{{template "record" .}}{{end}}{{end}}`))

var _ = template.Must(fileTemplate.New("record").Parse(`
// {{.SharedName}} is the shared observable companion of {{.Name}}.
type {{.SharedName}}{{.TypeParams}} struct {
{{range .Fields}}	{{.Name}} {{.SharedType}}
{{end}}}

// New{{.SharedName}} builds the shared companion of data.
func New{{.SharedName}}{{.TypeParams}}(data {{.Source}}) *{{.SharedName}}{{.TypeArgs}} {
	return &{{.SharedName}}{{.TypeArgs}}{
{{range .Fields}}		{{.Name}}: {{.SharedInit}},
{{end}}	}
}
{{if .Features.Clone}}
// Clone returns a companion sharing the same cells.
func (s *{{.SharedName}}{{.TypeArgs}}) Clone() *{{.SharedName}}{{.TypeArgs}} {
	c := *s
	return &c
}
{{end}}{{if .Features.Eq}}
// Equal reports whether both companions hold equal values.
func (s *{{.SharedName}}{{.TypeArgs}}) Equal(other *{{.SharedName}}{{.TypeArgs}}) bool {
	if s == nil || other == nil {
		return s == other
	}

	return {{range $i, $f := .Fields}}{{if $i}} &&
		{{end}}s.{{$f.Name}}.Equal(other.{{$f.Name}}){{else}}true{{end}}
}
{{end}}{{if .Features.Ord}}
// Compare orders two companions field by field.
func (s *{{.SharedName}}{{.TypeArgs}}) Compare(other *{{.SharedName}}{{.TypeArgs}}) int {
{{range .Fields}}	if c := s.{{.Name}}.Compare(other.{{.Name}}); c != 0 {
		return c
	}

{{end}}	return 0
}
{{end}}{{if .Features.Debug}}
// String renders the current field values.
func (s *{{.SharedName}}{{.TypeArgs}}) String() string {
	return {{.Sprintf}}({{printf "%q" .SharedFormat}}{{range .Fields}}, s.{{.Name}}{{end}})
}
{{end}}
// {{.ScopedName}} is the scoped observable companion of {{.Name}}. Its cells
// belong to the scope passed to New{{.ScopedName}}.
type {{.ScopedName}}{{.TypeParams}} struct {
{{range .Fields}}	{{.Name}} {{.ScopedType}}
{{end}}}

// New{{.ScopedName}} builds the scoped companion of data in cx.
func New{{.ScopedName}}{{.TypeParams}}(cx *{{.Scope}}, data {{.Source}}) {{.ScopedName}}{{.TypeArgs}} {
	return {{.ScopedName}}{{.TypeArgs}}{
{{range .Fields}}		{{.Name}}: {{.ScopedInit}},
{{end}}	}
}

// Clone returns a copy borrowing the same cells.
func (s {{.ScopedName}}{{.TypeArgs}}) Clone() {{.ScopedName}}{{.TypeArgs}} {
	return s
}
{{if .Features.Eq}}
// Equal reports whether both companions hold equal values.
func (s {{.ScopedName}}{{.TypeArgs}}) Equal(other {{.ScopedName}}{{.TypeArgs}}) bool {
	return {{range $i, $f := .Fields}}{{if $i}} &&
		{{end}}s.{{$f.Name}}.Equal(other.{{$f.Name}}){{else}}true{{end}}
}
{{end}}{{if .Features.Ord}}
// Compare orders two companions field by field.
func (s {{.ScopedName}}{{.TypeArgs}}) Compare(other {{.ScopedName}}{{.TypeArgs}}) int {
{{range .Fields}}	if c := s.{{.Name}}.Compare(other.{{.Name}}); c != 0 {
		return c
	}

{{end}}	return 0
}
{{end}}{{if .Features.Debug}}
// String renders the current field values.
func (s {{.ScopedName}}{{.TypeArgs}}) String() string {
	return {{.Sprintf}}({{printf "%q" .ScopedFormat}}{{range .Fields}}, s.{{.Name}}{{end}})
}
{{end}}`))

var _ = template.Must(fileTemplate.New("union").Parse(`
// {{.SharedName}} is the shared observable companion of {{.Name}}. Each
// case of {{.Name}} has its own implementation.
type {{.SharedName}} interface {
	// Variant returns the case index of the source value.
	Variant() int
{{if .Features.Clone}}	Clone() {{.SharedName}}
{{end}}{{if .Features.Eq}}	Equal(other {{.SharedName}}) bool
{{end}}{{if .Features.Ord}}	Compare(other {{.SharedName}}) int
{{end}}{{if .Features.Debug}}	String() string
{{end}}
	is{{.SharedName}}()
}

// New{{.SharedName}} builds the shared companion of data. A nil data, or a
// nil pointer case, yields a nil companion.
func New{{.SharedName}}(data {{.Source}}) {{.SharedName}} {
	switch data := data.(type) {
	case nil:
		return nil
{{range .Variants}}	case {{.Case}}:
{{if .Pointer}}		if data == nil {
			return nil
		}

{{end}}		return &{{.SharedName}}{ {{.Payload.Name}}: {{.Payload.SharedInit}} }
{{end}}	default:
		panic({{.Sprintf}}("New{{.SharedName}}: unknown variant %T", data))
	}
}
{{range .Variants}}
// {{.SharedName}} is the shared companion of the {{.Name}} case of {{$.Name}}.
type {{.SharedName}} struct {
	{{.Payload.Name}} {{.Payload.SharedType}}
}

// Variant returns {{.Index}}.
func (*{{.SharedName}}) Variant() int { return {{.Index}} }

func (*{{.SharedName}}) is{{$.SharedName}}() {}
{{if $.Features.Clone}}
// Clone returns a companion sharing the same cells.
func (v *{{.SharedName}}) Clone() {{$.SharedName}} {
	c := *v
	return &c
}
{{end}}{{if $.Features.Eq}}
// Equal reports whether other is the same case holding equal values.
func (v *{{.SharedName}}) Equal(other {{$.SharedName}}) bool {
	o, ok := other.(*{{.SharedName}})
	if !ok || v == nil || o == nil {
		return ok && v == o
	}

	return v.{{.Payload.Name}}.Equal(o.{{.Payload.Name}})
}
{{end}}{{if $.Features.Ord}}
// Compare orders by case index, then by payload.
func (v *{{.SharedName}}) Compare(other {{$.SharedName}}) int {
	o, ok := other.(*{{.SharedName}})
	if !ok {
		return {{$.CmpCompare}}(v.Variant(), other.Variant())
	}

	return v.{{.Payload.Name}}.Compare(o.{{.Payload.Name}})
}
{{end}}{{if $.Features.Debug}}
// String renders the case and its current payload.
func (v *{{.SharedName}}) String() string {
	return {{$.Sprintf}}({{printf "%q" .SharedFormat}}, v.{{.Payload.Name}})
}
{{end}}{{end}}
// {{.ScopedName}} is the scoped observable companion of {{.Name}}. Each
// case of {{.Name}} has its own implementation.
type {{.ScopedName}} interface {
	// Variant returns the case index of the source value.
	Variant() int
	Clone() {{.ScopedName}}
{{if .Features.Eq}}	Equal(other {{.ScopedName}}) bool
{{end}}{{if .Features.Ord}}	Compare(other {{.ScopedName}}) int
{{end}}{{if .Features.Debug}}	String() string
{{end}}
	is{{.ScopedName}}()
}

// New{{.ScopedName}} builds the scoped companion of data in cx. A nil data,
// or a nil pointer case, yields a nil companion.
func New{{.ScopedName}}(cx *{{.Scope}}, data {{.Source}}) {{.ScopedName}} {
	switch data := data.(type) {
	case nil:
		return nil
{{range .Variants}}	case {{.Case}}:
{{if .Pointer}}		if data == nil {
			return nil
		}

{{end}}		return {{.ScopedName}}{ {{.Payload.Name}}: {{.Payload.ScopedInit}} }
{{end}}	default:
		panic({{.Sprintf}}("New{{.ScopedName}}: unknown variant %T", data))
	}
}
{{range .Variants}}
// {{.ScopedName}} is the scoped companion of the {{.Name}} case of {{$.Name}}.
type {{.ScopedName}} struct {
	{{.Payload.Name}} {{.Payload.ScopedType}}
}

// Variant returns {{.Index}}.
func ({{.ScopedName}}) Variant() int { return {{.Index}} }

func ({{.ScopedName}}) is{{$.ScopedName}}() {}

// Clone returns a copy borrowing the same cells.
func (v {{.ScopedName}}) Clone() {{$.ScopedName}} {
	return v
}
{{if $.Features.Eq}}
// Equal reports whether other is the same case holding equal values.
func (v {{.ScopedName}}) Equal(other {{$.ScopedName}}) bool {
	o, ok := other.({{.ScopedName}})
	if !ok {
		return false
	}

	return v.{{.Payload.Name}}.Equal(o.{{.Payload.Name}})
}
{{end}}{{if $.Features.Ord}}
// Compare orders by case index, then by payload.
func (v {{.ScopedName}}) Compare(other {{$.ScopedName}}) int {
	o, ok := other.({{.ScopedName}})
	if !ok {
		return {{$.CmpCompare}}(v.Variant(), other.Variant())
	}

	return v.{{.Payload.Name}}.Compare(o.{{.Payload.Name}})
}
{{end}}{{if $.Features.Debug}}
// String renders the case and its current payload.
func (v {{.ScopedName}}) String() string {
	return {{$.Sprintf}}({{printf "%q" .ScopedFormat}}, v.{{.Payload.Name}})
}
{{end}}{{end}}`))
