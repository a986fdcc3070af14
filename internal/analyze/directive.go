package analyze

import (
	"go/ast"
	"strings"
	"unicode"

	"state-generator/internal/model"
)

// Directive marks a type declaration as a derivable model.
const Directive = "//state:derive"

// Capability names accepted after the directive.
const (
	FeatureClone = "clone"
	FeatureEq    = "eq"
	FeatureOrd   = "ord"
	FeatureDebug = "debug"
)

// findDirective returns the text following the directive in doc, and
// whether the directive was present.
func findDirective(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, Directive)
		if !ok {
			continue
		}

		// //state:derived is some other directive
		if rest != "" && !unicode.IsSpace(rune(rest[0])) {
			continue
		}

		return strings.TrimSpace(rest), true
	}

	return "", false
}

// parseFeatures reads capability names separated by commas or spaces.
// Unknown names are returned separately.
func parseFeatures(args string) (model.Features, []string) {
	var (
		f       model.Features
		unknown []string
	)

	names := strings.FieldsFunc(args, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	for _, name := range names {
		switch name {
		case FeatureClone:
			f.Clone = true
		case FeatureEq:
			f.Eq = true
		case FeatureOrd:
			f.Ord = true
		case FeatureDebug:
			f.Debug = true
		default:
			unknown = append(unknown, name)
		}
	}

	return f, unknown
}
