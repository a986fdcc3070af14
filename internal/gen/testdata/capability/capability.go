package capability

// Shape only derives debug, so it cannot be ordered or compared.
//
//state:derive debug
type Shape interface{ isShape() }

type Circle struct{ Radius int }

func (Circle) isShape() {}

type Label struct{ Text string }

func (Label) isShape() {}

//state:derive ord
type Holder struct {
	E Shape `state:"stateful"`
}

//state:derive eq
type Inner struct{ N int }

//state:derive eq,ord
type Wrapper struct {
	Items []Inner `state:"stateful,collection"`
}

//state:derive eq
type Fine struct {
	Inner Inner `state:"stateful"`
}
