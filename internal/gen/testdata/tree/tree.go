package tree

// Node references itself.
//
//state:derive eq
type Node struct {
	Label    string
	Children []Node `state:"stateful,collection"`
}
