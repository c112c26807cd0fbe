package kv

import (
	"github.com/erigontech/mdbx-go/mdbx"
	"github.com/litedb-go/litedb/compare"
	"github.com/litedb-go/litedb/lerrors"
)

// Table is a named ordered sub-store within one transaction.
type Table struct {
	txn          *Txn
	name         string
	dbi          mdbx.DBI
	cmp          compare.Func
	cmpInstalled bool
}

// SetComparator installs cmp as this sub-store's key order. Must be called
// at most once per sub-store per transaction, before any I/O on it;
// subsequent calls (including ones racing the first I/O) are silent no-ops
// — this is an explicit contract, not an oversight.
func (tbl *Table) SetComparator(cmp compare.Func) {
	if tbl.cmpInstalled {
		return
	}
	tbl.cmp = cmp
	tbl.cmpInstalled = true
	tbl.txn.tx.SetCmp(tbl.dbi, mdbxCmp(cmp))
}

func mdbxCmp(cmp compare.Func) mdbx.CmpFunc {
	return func(a, b []byte) int { return cmp(a, b) }
}

// Put stores key/value. flags may include Append (strictly increasing
// keys, error otherwise) and NoOverwrite (duplicate key reports ok=false,
// not an error).
func (tbl *Table) Put(key, value []byte, flags Flags) (ok bool, err error) {
	var dbiFlags uint
	if flags.has(Append) {
		dbiFlags |= mdbx.Append
	}
	if flags.has(NoOverwrite) {
		dbiFlags |= mdbx.NoOverwrite
	}

	err = tbl.txn.tx.Put(tbl.dbi, key, value, dbiFlags)
	if err != nil {
		if mdbx.IsKeyExists(err) {
			return false, nil
		}
		return false, lerrors.Wrap(lerrors.IO, err, "kv: put into %q", tbl.name)
	}
	tbl.txn.env.metrics.puts.Inc()
	tbl.txn.env.metrics.bytesWritten.Add(len(key) + len(value))
	return true, nil
}

// Get fetches key's value. ok is false (no error) if key is absent —
// NotFound is never an *lerrors.Error at this layer.
func (tbl *Table) Get(key []byte) (value []byte, ok bool, err error) {
	value, err = tbl.txn.tx.Get(tbl.dbi, key)
	if err != nil {
		if mdbx.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, lerrors.Wrap(lerrors.IO, err, "kv: get from %q", tbl.name)
	}
	return value, true, nil
}

// Del deletes key. ok is false (no error) if key is absent.
func (tbl *Table) Del(key []byte) (ok bool, err error) {
	err = tbl.txn.tx.Del(tbl.dbi, key, nil)
	if err != nil {
		if mdbx.IsNotFound(err) {
			return false, nil
		}
		return false, lerrors.Wrap(lerrors.IO, err, "kv: delete from %q", tbl.name)
	}
	return true, nil
}

// Cursor opens a cursor over this sub-store.
func (tbl *Table) Cursor() (*Cursor, error) {
	c, err := tbl.txn.tx.OpenCursor(tbl.dbi)
	if err != nil {
		return nil, lerrors.Wrap(lerrors.IO, err, "kv: open cursor on %q", tbl.name)
	}
	return &Cursor{table: tbl, cursor: c}, nil
}
