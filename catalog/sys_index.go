package catalog

import (
	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/relstore"
	"github.com/litedb-go/litedb/scankey"
	"github.com/litedb-go/litedb/tuple"
)

func indexFromTuple(t *tuple.Tuple) (SysIndex, error) {
	if t.Columns() != NattsSysIndex {
		return SysIndex{}, lerrors.New(lerrors.Corrupt, "catalog: sys_index tuple has %d columns, want %d", t.Columns(), NattsSysIndex)
	}

	indrelid, err := tuple.GetInt64(t, int(AnumSysIndexIndrelid))
	if err != nil {
		return SysIndex{}, err
	}
	indnatts, err := tuple.GetInt16(t, int(AnumSysIndexIndnatts))
	if err != nil {
		return SysIndex{}, err
	}
	indisunique, err := tuple.GetBool(t, int(AnumSysIndexIndisunique))
	if err != nil {
		return SysIndex{}, err
	}
	indisprimary, err := tuple.GetBool(t, int(AnumSysIndexIndisprimary))
	if err != nil {
		return SysIndex{}, err
	}
	indkey, err := tuple.GetInt2Vector(t, int(AnumSysIndexIndkey))
	if err != nil {
		return SysIndex{}, err
	}

	return SysIndex{
		Indexrelid:   t.RowID(),
		Indrelid:     indrelid,
		Indnatts:     indnatts,
		Indisunique:  indisunique,
		Indisprimary: indisprimary,
		Indkey:       indkey,
	}, nil
}

func indexToTuple(s SysIndex) (*tuple.Tuple, error) {
	return tuple.Construct(s.Indexrelid, []tuple.Column{
		tuple.Int64Column(s.Indrelid),
		tuple.Int16Column(s.Indnatts),
		tuple.BoolColumn(s.Indisunique),
		tuple.BoolColumn(s.Indisprimary),
		tuple.Int2VectorColumn(s.Indkey),
	})
}

// IndexCreateEntry inserts a sys_index row with the caller-supplied
// indexrelid.
func IndexCreateEntry(txn *relstore.Txn, s SysIndex) error {
	rel, err := relstore.Create(txn, SysIndexRelationID)
	if err != nil {
		return err
	}
	tup, err := indexToTuple(s)
	if err != nil {
		return err
	}
	return rel.TableInsert(s.Indexrelid, tup)
}

// IndexGetList sequentially scans sys_index filtering by indrelid,
// grounded on SysIndex::GetIndexList.
func IndexGetList(txn *relstore.Txn, indrelid int64) ([]SysIndex, error) {
	rel, err := relstore.Create(txn, SysIndexRelationID)
	if err != nil {
		return nil, err
	}

	key := scankey.New(AnumSysIndexIndrelid, scankey.Equal, oid.INT8OID, int64Bytes(indrelid))
	scan, err := relstore.TableBeginScan(rel, []scankey.Key{key})
	if err != nil {
		return nil, err
	}
	defer scan.EndScan()

	var out []SysIndex
	for {
		row, err := scan.GetNext()
		if err != nil {
			return nil, err
		}
		if row == nil {
			return out, nil
		}
		s, err := indexFromTuple(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
}

// IndexGetByIndexRelid performs a direct Get on the sys_index table
// sub-store.
func IndexGetByIndexRelid(txn *relstore.Txn, indexrelid int64) (SysIndex, bool, error) {
	rel, err := relstore.Create(txn, SysIndexRelationID)
	if err != nil {
		return SysIndex{}, false, err
	}

	val, found, err := rel.Table.Get(rowidKeyBytes(indexrelid))
	if err != nil {
		return SysIndex{}, false, err
	}
	if !found {
		return SysIndex{}, false, nil
	}

	t := tuple.New(val)
	t.SetRowID(indexrelid)
	s, err := indexFromTuple(t)
	if err != nil {
		return SysIndex{}, false, err
	}
	return s, true, nil
}
