// Package relstore implements the transactional relation descriptor: a
// cached runtime handle onto a table or index sub-store, carrying its
// catalog metadata, plus the table scan driver (§4.5, §4.8).
//
// This package never imports the catalog package: catalog rows are
// represented here only by the generic ClassMeta/IndexMeta/AttributeMeta
// views a Loader hands back, so that the actual typed sys_class/
// sys_attribute/sys_index row logic (which itself needs to open relations
// and run scans) can live one layer up in catalog without an import cycle.
package relstore

import (
	"encoding/binary"
	"strconv"

	"github.com/litedb-go/litedb/compare"
	"github.com/litedb-go/litedb/kv"
	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/tuple"
)

var enc = binary.NativeEndian

// Kind is a relation's storage kind.
type Kind byte

const (
	TableKind Kind = 'r'
	IndexKind Kind = 'i'
)

// ClassMeta is the generic view of a sys_class row a Loader hands back.
type ClassMeta struct {
	RelID       int64
	RelName     string
	RelHasIndex bool
	RelKind     byte
	RelNatts    int16
}

// IndexMeta is the generic view of a sys_index row.
type IndexMeta struct {
	IndexRelID   int64
	IndRelID     int64
	IndNatts     int16
	IndIsUnique  bool
	IndIsPrimary bool
	IndKey       [oid.IndexMaxKeys]int16
}

// AttributeMeta is the generic view of a sys_attribute row.
type AttributeMeta struct {
	AttID    int64
	AttRelID int64
	AttTypID int32
	AttName  string
	AttNum   int16
}

// Loader hydrates a relation descriptor's catalog metadata. The catalog
// package implements this over its typed SysClass/SysAttribute/SysIndex
// rows.
type Loader interface {
	LoadClass(txn *Txn, relid int64) (ClassMeta, bool, error)
	LoadIndexes(txn *Txn, relid int64) ([]IndexMeta, error)
	LoadAttributes(txn *Txn, relid int64, relnatts int16) ([]AttributeMeta, error)
	LoadIndexByID(txn *Txn, indexRelID int64) (IndexMeta, bool, error)
}

// Relation is the runtime descriptor for one table or index: a KV handle
// plus whatever catalog metadata has been hydrated onto it.
type Relation struct {
	RelID      int64
	Table      *kv.Table
	Kind       Kind
	Class      ClassMeta
	Indexes    []IndexMeta
	Attributes []AttributeMeta
}

func rowidKey(id int64) []byte {
	buf := make([]byte, 8)
	enc.PutUint64(buf, uint64(id))
	return buf
}

// Create opens-or-creates the table sub-store for relid, installs the
// rowid comparator, and returns a RELATION descriptor. Per invariant 5 (a
// descriptor is created at most once per (transaction, relid) pair) this
// consults and populates the transaction's descriptor cache exactly like
// OpenTable/OpenIndex, even though it never reads sys_class — callers that
// supply their own class row (the bootstrap path) do so by setting
// rel.Class directly after Create returns.
func Create(txn *Txn, relid int64) (*Relation, error) {
	if rel, ok := txn.cached(relid); ok {
		return rel, nil
	}

	tbl, err := txn.kv.Open(relName(relid), kv.Create)
	if err != nil {
		return nil, err
	}
	tbl.SetComparator(compare.Uint64Cmp)

	rel := &Relation{RelID: relid, Table: tbl, Kind: TableKind}
	rel.Class.RelID = relid
	rel.Class.RelKind = byte(TableKind)
	txn.cache(relid, rel)
	return rel, nil
}

// OpenTable opens relid as a table, hydrating its sys_class row and (if
// relhasindex) its sys_index and sys_attribute lists via the transaction's
// Loader. A descriptor with no matching sys_class row is returned
// un-hydrated, not an error — the bootstrap path inserts the class row
// itself after creating the relation.
func OpenTable(txn *Txn, relid int64) (*Relation, error) {
	if rel, ok := txn.cached(relid); ok {
		return rel, nil
	}

	tbl, err := txn.kv.Open(relName(relid), 0)
	if err != nil {
		return nil, err
	}
	tbl.SetComparator(compare.Uint64Cmp)

	rel := &Relation{RelID: relid, Table: tbl, Kind: TableKind}
	txn.cache(relid, rel)

	class, found, err := txn.loader.LoadClass(txn, relid)
	if err != nil {
		return nil, err
	}
	if !found {
		return rel, nil
	}
	rel.Class = class

	if class.RelHasIndex {
		indexes, err := txn.loader.LoadIndexes(txn, relid)
		if err != nil {
			return nil, err
		}
		rel.Indexes = indexes

		attrs, err := txn.loader.LoadAttributes(txn, relid, class.RelNatts)
		if err != nil {
			return nil, err
		}
		rel.Attributes = attrs
	}
	return rel, nil
}

// OpenIndex opens relid as an index, installing the composite comparator
// and registering it with INDEX kind.
func OpenIndex(txn *Txn, relid int64) (*Relation, error) {
	if rel, ok := txn.cached(relid); ok {
		return rel, nil
	}

	tbl, err := txn.kv.Open(relName(relid), kv.Create|kv.DupSort)
	if err != nil {
		return nil, err
	}
	tbl.SetComparator(compare.Composite)

	rel := &Relation{RelID: relid, Table: tbl, Kind: IndexKind}
	rel.Class.RelID = relid
	rel.Class.RelKind = byte(IndexKind)
	txn.cache(relid, rel)
	return rel, nil
}

// TableInsert writes a rowid-keyed entry with the caller-supplied id,
// which must be positive.
func (r *Relation) TableInsert(id int64, tup *tuple.Tuple) error {
	if r.Kind != TableKind {
		return lerrors.New(lerrors.Invalid, "relstore: TableInsert on non-table relation %d", r.RelID)
	}
	if id <= 0 {
		return lerrors.New(lerrors.Invalid, "relstore: TableInsert requires a positive id, got %d", id)
	}
	_, err := r.Table.Put(rowidKey(id), tup.Data(), 0)
	return err
}

// TableNextID returns 1+max(existing rowid), or 1 if the table is empty,
// without writing.
func (r *Relation) TableNextID() (int64, error) {
	if r.Kind != TableKind {
		return 0, lerrors.New(lerrors.Invalid, "relstore: TableNextID on non-table relation %d", r.RelID)
	}
	cur, err := r.Table.Cursor()
	if err != nil {
		return 0, err
	}
	defer cur.Close()

	key, _, ok, err := cur.Get(nil, kv.Last)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	if len(key) != 8 {
		return 0, lerrors.New(lerrors.Corrupt, "relstore: rowid key size %d != 8", len(key))
	}
	return int64(enc.Uint64(key)) + 1, nil
}

// TableAppend computes the next rowid the same way TableNextID does (LAST
// then +1, else 1) and writes it with the Append flag (strictly increasing
// keys).
func (r *Relation) TableAppend(tup *tuple.Tuple) (int64, error) {
	if r.Kind != TableKind {
		return 0, lerrors.New(lerrors.Invalid, "relstore: TableAppend on non-table relation %d", r.RelID)
	}

	cur, err := r.Table.Cursor()
	if err != nil {
		return 0, err
	}
	defer cur.Close()

	key, _, ok, err := cur.Get(nil, kv.Last)
	if err != nil {
		return 0, err
	}
	var id int64
	if ok {
		if len(key) != 8 {
			return 0, lerrors.New(lerrors.Corrupt, "relstore: rowid key size %d != 8", len(key))
		}
		id = int64(enc.Uint64(key)) + 1
	} else {
		id = 1
	}

	if err := cur.Put(rowidKey(id), tup.Data(), kv.Append); err != nil {
		return 0, err
	}
	return id, nil
}

func relName(relid int64) string {
	return strconv.FormatInt(relid, 10)
}
