package relstore

import "github.com/litedb-go/litedb/kv"

// Txn is the transactional façade used by callers: it owns the relation
// descriptor cache (invariant 5) on top of one kv.Txn.
type Txn struct {
	kv       *kv.Txn
	loader   Loader
	relCache map[int64]*Relation
}

// NewTxn wraps a kv transaction with a relation descriptor cache. loader
// is consulted to hydrate catalog metadata on OpenTable; the catalog
// package supplies it.
func NewTxn(kvTxn *kv.Txn, loader Loader) *Txn {
	return &Txn{kv: kvTxn, loader: loader, relCache: make(map[int64]*Relation)}
}

func (t *Txn) cached(relid int64) (*Relation, bool) {
	rel, ok := t.relCache[relid]
	return rel, ok
}

func (t *Txn) cache(relid int64, rel *Relation) {
	t.relCache[relid] = rel
}

// KV exposes the underlying kv transaction for catalog code that needs to
// do raw sub-store I/O against fixed-OID relations.
func (t *Txn) KV() *kv.Txn { return t.kv }

// Commit commits the underlying kv transaction.
func (t *Txn) Commit() error { return t.kv.Commit() }

// Abort aborts the underlying kv transaction.
func (t *Txn) Abort() { t.kv.Abort() }

// Writable reports whether the underlying transaction can mutate stores.
func (t *Txn) Writable() bool { return t.kv.Writable() }

// IndexMetaByID loads a single sys_index row directly via the
// transaction's Loader, for callers (the system-table scan façade) that
// need one index's metadata without a relation's full cached list.
func (t *Txn) IndexMetaByID(indexRelID int64) (IndexMeta, bool, error) {
	return t.loader.LoadIndexByID(t, indexRelID)
}
