package shop

//state:derive eq,debug
type Item struct {
	SKU   string
	Price int
}

//state:derive debug
type Cart struct {
	Owner string
	Items []Item `state:"stateful,collection"`
}
