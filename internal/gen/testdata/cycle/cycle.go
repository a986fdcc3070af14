package cycle

//state:derive
type Left struct {
	Rights []Right `state:"stateful,collection"`
}

//state:derive
type Right struct {
	Lefts []Left `state:"stateful,collection"`
}
