package broken

//state:derive
type Order struct {
	Lines int `state:"collection"`
}
