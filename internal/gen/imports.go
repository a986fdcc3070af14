package gen

import (
	"fmt"
	"go/types"
	"sort"

	"state-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet assigns unique local names to the packages a generated file
// refers to.
type importSet struct {
	self    string
	aliases map[string]string // path -> local name
	names   map[string]string // path -> package name
	taken   map[string]bool
}

func newImportSet(self string) *importSet {
	return &importSet{
		self:    self,
		aliases: make(map[string]string),
		names:   make(map[string]string),
		taken:   make(map[string]bool),
	}
}

// add registers pkgPath and returns the name to refer to it by. An empty
// name falls back to the last element of the path.
func (s *importSet) add(pkgPath, name string) string {
	if alias, ok := s.aliases[pkgPath]; ok {
		return alias
	}

	if name == "" {
		name = common.PkgAlias(pkgPath)
	}

	alias := name
	for i := 2; s.taken[alias]; i++ {
		alias = fmt.Sprintf("%s%d", name, i)
	}

	s.aliases[pkgPath] = alias
	s.names[pkgPath] = name
	s.taken[alias] = true

	return alias
}

// qualifier is a types.Qualifier that records every foreign package.
func (s *importSet) qualifier(p *types.Package) string {
	if p == nil || p.Path() == s.self {
		return ""
	}

	return s.add(p.Path(), p.Name())
}

// specs returns the imports sorted by path. Aliases are only kept where they
// differ from the package name.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.aliases))
	for path, alias := range s.aliases {
		spec := importSpec{Path: path}
		if alias != s.names[path] {
			spec.Alias = alias
		}

		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}
