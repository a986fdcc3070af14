package cross

import "state-generator/examples/todo"

// Board refers to models of another package.
//
//state:derive debug
type Board struct {
	Lead    todo.Task   `state:"stateful"`
	Backlog []todo.Task `state:"stateful,collection"`
	Pinned  todo.Event  `state:"stateful"`
	Grid    [3]int      `state:"collection"`
}
