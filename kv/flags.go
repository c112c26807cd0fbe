package kv

// Flags is a bitmask drawn from {Create, DupSort} for Txn.Open, and
// {Append, NoOverwrite} for Table.Put.
type Flags uint

const (
	// Create creates the sub-store if it does not already exist.
	Create Flags = 1 << iota
	// DupSort allows multiple values per key, sorted — used for index
	// sub-stores built on a non-unique composite key.
	DupSort
	// Append asserts keys are supplied in strictly increasing order;
	// violating that assertion is an error rather than a silent
	// out-of-order insert.
	Append
	// NoOverwrite makes Put report a duplicate key as a non-error "false"
	// return rather than overwriting the existing value.
	NoOverwrite
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// Op selects a cursor positioning operation.
type Op int

const (
	Next Op = iota
	Last
	SetRange
)
