package domain

// Snapshot is the full persisted state: every entity lives only as long as
// it appears here. The store reads and writes it as one unit.
type Snapshot struct {
	Products  []Product  `json:"products"`
	Customers []Customer `json:"customers"`
	Sales     []Sale     `json:"sales"`
}

// NewSnapshot returns the empty default used when no prior state exists.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Products:  []Product{},
		Customers: []Customer{},
		Sales:     []Sale{},
	}
}
