package model

// RawEvent is a decoded contract event before normalization. Args holds the
// decoded arguments in event signature order.
type RawEvent struct {
	Name       string
	Args       []interface{}
	Provenance Provenance
}
