package collide

//state:derive debug
type Label struct {
	String string
}
