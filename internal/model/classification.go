package model

//go:generate go tool stringer -type=Classification -trimprefix=Class -output=classification_string.go

// Classification is the wrapping rule applied to one field.
type Classification int

const (
	ClassBare               Classification = iota // plain cell of T
	ClassStateful                                 // cell of T's companion
	ClassCollection                               // ordered collection of T's elements
	ClassStatefulCollection                       // ordered collection of the elements' companions
)

// Classify combines the two independent markers into a classification.
func Classify(stateful, collection bool) Classification {
	switch {
	case stateful && collection:
		return ClassStatefulCollection
	case stateful:
		return ClassStateful
	case collection:
		return ClassCollection
	default:
		return ClassBare
	}
}

// IsStateful reports whether the field wraps a companion representation.
func (c Classification) IsStateful() bool {
	return c == ClassStateful || c == ClassStatefulCollection
}

// IsCollection reports whether the field becomes an ordered collection.
func (c Classification) IsCollection() bool {
	return c == ClassCollection || c == ClassStatefulCollection
}
