package kv

import (
	"github.com/erigontech/mdbx-go/mdbx"
	"github.com/litedb-go/litedb/lerrors"
	"go.uber.org/zap"
)

// Txn is a handle into the environment, owning every sub-store opened
// through it. After Commit or Abort it becomes unusable.
type Txn struct {
	env      *Environment
	tx       *mdbx.Txn
	writable bool
	tables   map[string]*Table
	done     bool
	log      *zap.SugaredLogger
}

// Open opens the named sub-store, creating it only if flags include
// Create. Opening twice with the same
// name in one transaction returns the cached handle — flags passed on the
// second call are ignored, matching the first-open-wins contract.
func (t *Txn) Open(name string, flags Flags) (*Table, error) {
	if tbl, ok := t.tables[name]; ok {
		return tbl, nil
	}

	var dbiFlags uint
	if flags.has(Create) {
		dbiFlags |= mdbx.Create
	}
	if flags.has(DupSort) {
		dbiFlags |= mdbx.DupSort
	}

	dbi, err := t.tx.OpenDBISimple(name, dbiFlags)
	if err != nil {
		return nil, lerrors.Wrap(lerrors.CantOpen, err, "kv: open sub-store %q", name)
	}

	tbl := &Table{txn: t, name: name, dbi: dbi}
	t.tables[name] = tbl
	return tbl, nil
}

// Commit makes all writes durable. After success the transaction is
// unusable.
func (t *Txn) Commit() error {
	if t.done {
		return lerrors.New(lerrors.Invalid, "kv: commit of finished transaction")
	}
	t.done = true
	if t.writable {
		defer t.env.writeMu.Release(1)
	}
	if _, err := t.tx.Commit(); err != nil {
		t.env.metrics.aborts.Inc()
		return lerrors.Wrap(lerrors.IO, err, "kv: commit")
	}
	t.env.metrics.commits.Inc()
	return nil
}

// Abort discards all writes. After it returns the transaction is unusable.
func (t *Txn) Abort() {
	if t.done {
		return
	}
	t.done = true
	if t.writable {
		defer t.env.writeMu.Release(1)
	}
	t.tx.Abort()
	t.env.metrics.aborts.Inc()
}

// Writable reports whether this transaction can mutate sub-stores.
func (t *Txn) Writable() bool { return t.writable }
