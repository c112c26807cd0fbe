// Package indexam implements the index access method: building a
// secondary index from a base table, inserting entries incrementally,
// detecting unique violations, and driving equality-prefix ordered index
// scans (§4.7), plus the system-table scan façade that unifies table and
// index scan drivers (§4.9).
package indexam

import (
	"encoding/binary"

	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/relstore"
	"github.com/litedb-go/litedb/tuple"
)

var enc = binary.NativeEndian

// IndexInfo describes which table columns an index is built over and
// whether it enforces uniqueness — the Go equivalent of the source's
// ii_NumIndexKeyAttrs/ii_IndexAttrNumbers/ii_Unique triple, derived
// directly from a catalog sys_index row rather than carried as a
// separately-registered struct.
type IndexInfo struct {
	IndexAttrNumbers []int16
	Unique           bool
}

func projectKey(row *tuple.Tuple, info IndexInfo) (*tuple.Tuple, error) {
	cols := make([]tuple.Column, len(info.IndexAttrNumbers))
	for i, attno := range info.IndexAttrNumbers {
		typ, err := row.GetType(int(attno))
		if err != nil {
			return nil, err
		}
		data, err := row.GetSlice(int(attno))
		if err != nil {
			return nil, err
		}
		cols[i] = tuple.Column{Type: typ, Data: data}
	}
	return tuple.Construct(0, cols)
}

// Build scans tableRel with no keys and inserts one entry per row into
// indexRel, in table order. A unique index fails with Constraint the
// first time two rows project to the same key.
func Build(tableRel, indexRel *relstore.Relation, info IndexInfo) error {
	scan, err := relstore.TableBeginScan(tableRel, nil)
	if err != nil {
		return err
	}
	defer scan.EndScan()

	for {
		row, err := scan.GetNext()
		if err != nil {
			return err
		}
		if row == nil {
			return nil
		}
		if err := Insert(indexRel, row, info); err != nil {
			return err
		}
	}
}

// Insert projects row's key columns per info and writes key -> rowid into
// indexRel, one iteration of Build invoked from DML paths that lie
// outside this core.
func Insert(indexRel *relstore.Relation, row *tuple.Tuple, info IndexInfo) error {
	if indexRel.Kind != relstore.IndexKind {
		return lerrors.New(lerrors.Invalid, "indexam: insert into non-index relation %d", indexRel.RelID)
	}

	key, err := projectKey(row, info)
	if err != nil {
		return err
	}

	if info.Unique {
		_, exists, err := indexRel.Table.Get(key.Data())
		if err != nil {
			return err
		}
		if exists {
			return lerrors.New(lerrors.Constraint, "indexam: unique violation on index %d", indexRel.RelID)
		}
	}

	rowidBuf := make([]byte, 8)
	enc.PutUint64(rowidBuf, uint64(row.RowID()))
	if _, err := indexRel.Table.Put(key.Data(), rowidBuf, 0); err != nil {
		return err
	}
	return nil
}
