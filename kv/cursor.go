package kv

import (
	"github.com/erigontech/mdbx-go/mdbx"
	"github.com/litedb-go/litedb/lerrors"
)

// Cursor implements the operation set {Next, Last, SetRange} over one
// sub-store. SetRange positions at the smallest key >= the supplied key
// using the sub-store's installed comparator; failure means no such key
// exists.
type Cursor struct {
	table  *Table
	cursor *mdbx.Cursor
}

// Get positions the cursor per op and returns the key/value found there.
// ok is false (no error) when no such entry exists.
func (c *Cursor) Get(key []byte, op Op) (gotKey, value []byte, ok bool, err error) {
	var mop uint
	switch op {
	case Next:
		mop = mdbx.Next
	case Last:
		mop = mdbx.Last
	case SetRange:
		mop = mdbx.SetRange
	default:
		return nil, nil, false, lerrors.New(lerrors.Invalid, "kv: unknown cursor op %d", op)
	}

	gotKey, value, err = c.cursor.Get(key, nil, mop)
	if err != nil {
		if mdbx.IsNotFound(err) {
			return nil, nil, false, nil
		}
		return nil, nil, false, lerrors.Wrap(lerrors.IO, err, "kv: cursor get on %q", c.table.name)
	}
	return gotKey, value, true, nil
}

// Put stores key/value at the cursor's sub-store. flags may include
// Append.
func (c *Cursor) Put(key, value []byte, flags Flags) error {
	var mflags uint
	if flags.has(Append) {
		mflags |= mdbx.Append
	}
	if err := c.cursor.Put(key, value, mflags); err != nil {
		return lerrors.Wrap(lerrors.IO, err, "kv: cursor put on %q", c.table.name)
	}
	c.table.txn.env.metrics.puts.Inc()
	c.table.txn.env.metrics.bytesWritten.Add(len(key) + len(value))
	return nil
}

// Close releases the cursor.
func (c *Cursor) Close() {
	c.cursor.Close()
}
