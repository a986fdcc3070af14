package invalid

// Bad carries one problem per field.
//
//state:derive clone,hash
type Bad struct {
	Count int    `state:"collection"`
	Plain Plain  `state:"stateful"`
	Note  string `state:"lazy"`
	Fine  int
}

// Plain has no directive.
type Plain struct {
	X int
}

// Shape mixes valid and invalid variants.
//
//state:derive
type Shape interface {
	isShape()
}

type Point struct{}

func (Point) isShape() {}

type Line struct {
	From, To int
}

func (Line) isShape() {}

type Circle struct {
	Radius float64
}

func (*Circle) isShape() {}

// Lonely has no implementations.
//
//state:derive
type Lonely interface {
	isLonely()
}

// Number is neither a struct nor an interface.
//
//state:derive
type Number int

// Alias points at a type without a directive.
//
//state:derive
type Alias = Plain
