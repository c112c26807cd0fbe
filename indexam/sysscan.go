package indexam

import (
	"github.com/litedb-go/litedb/bitmapset"
	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/relstore"
	"github.com/litedb-go/litedb/scankey"
	"github.com/litedb-go/litedb/tuple"
)

// SysScan unifies the table scan and index scan drivers behind one handle
// (§4.9): catalog lookups go through it so that callers never choose
// between the two drivers themselves.
type SysScan struct {
	table *relstore.TableScan
	index *IndexScan
}

// SysTableBeginScan delegates to the table scan driver for no keys or a
// single key on the rowid (attno 0), whatever its strategy; otherwise it
// requires an index, remaps each
// input scan key's attno to that index's column position, and drives an
// index scan with the remapped keys.
func SysTableBeginScan(txn *relstore.Txn, tableRel *relstore.Relation, indexID int64, keys []scankey.Key) (*SysScan, error) {
	if len(keys) == 0 || (len(keys) == 1 && keys[0].Attno == 0) {
		scan, err := relstore.TableBeginScan(tableRel, keys)
		if err != nil {
			return nil, err
		}
		return &SysScan{table: scan}, nil
	}

	if indexID == 0 || !tableRel.Class.RelHasIndex {
		return nil, lerrors.New(lerrors.Invalid, "indexam: SysTableBeginScan requires an index on relation %d", tableRel.RelID)
	}

	meta, found := findIndexMeta(tableRel, indexID)
	if !found {
		var err error
		meta, found, err = txn.IndexMetaByID(indexID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, lerrors.New(lerrors.Invalid, "indexam: no sys_index row for index %d", indexID)
		}
	}

	if !requestedAttnos(keys).IsSubset(coveredAttnos(meta)) {
		return nil, lerrors.New(lerrors.Invalid, "indexam: index %d does not cover all requested attributes", indexID)
	}

	remapped := make([]scankey.Key, len(keys))
	for i, k := range keys {
		j := -1
		for col := 0; col < int(meta.IndNatts); col++ {
			if meta.IndKey[col] == k.Attno {
				j = col
				break
			}
		}
		if j < 0 {
			return nil, lerrors.New(lerrors.Invalid, "indexam: attribute %d is not indexed by index %d", k.Attno, indexID)
		}
		remapped[i] = scankey.New(int16(j+1), k.Strategy, k.Type, k.Argument)
	}

	indexRel, err := relstore.OpenIndex(txn, meta.IndexRelID)
	if err != nil {
		return nil, err
	}

	scan, err := BeginScan(tableRel, indexRel, remapped)
	if err != nil {
		return nil, err
	}
	return &SysScan{index: scan}, nil
}

func findIndexMeta(tableRel *relstore.Relation, indexID int64) (relstore.IndexMeta, bool) {
	for _, m := range tableRel.Indexes {
		if m.IndexRelID == indexID {
			return m, true
		}
	}
	return relstore.IndexMeta{}, false
}

// requestedAttnos is the set of attnos the caller's scan keys reference.
func requestedAttnos(keys []scankey.Key) bitmapset.Set {
	set := bitmapset.Empty()
	for _, k := range keys {
		set = set.Add(int(k.Attno))
	}
	return set
}

// coveredAttnos is the set of attnos meta's indkey actually indexes.
func coveredAttnos(meta relstore.IndexMeta) bitmapset.Set {
	set := bitmapset.Empty()
	for col := 0; col < int(meta.IndNatts); col++ {
		set = set.Add(int(meta.IndKey[col]))
	}
	return set
}

// SysTableGetNext returns the next matching row, or (nil, nil) at end of
// scan.
func (s *SysScan) SysTableGetNext() (*tuple.Tuple, error) {
	if s.table != nil {
		return s.table.GetNext()
	}
	return s.index.GetNext()
}

// SysTableEndScan releases the underlying scan's resources.
func (s *SysScan) SysTableEndScan() {
	if s.table != nil {
		s.table.EndScan()
		return
	}
	s.index.EndScan()
}
