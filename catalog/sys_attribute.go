package catalog

import (
	"github.com/litedb-go/litedb/indexam"
	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/relstore"
	"github.com/litedb-go/litedb/scankey"
	"github.com/litedb-go/litedb/tuple"
)

func attributeFromTuple(t *tuple.Tuple) (SysAttribute, error) {
	if t.Columns() != NattsSysAttribute {
		return SysAttribute{}, lerrors.New(lerrors.Corrupt, "catalog: sys_attribute tuple has %d columns, want %d", t.Columns(), NattsSysAttribute)
	}

	attrelid, err := tuple.GetInt64(t, int(AnumSysAttributeAttrelid))
	if err != nil {
		return SysAttribute{}, err
	}
	atttypid, err := tuple.GetInt32(t, int(AnumSysAttributeAtttypid))
	if err != nil {
		return SysAttribute{}, err
	}
	attname, err := tuple.GetName(t, int(AnumSysAttributeAttname))
	if err != nil {
		return SysAttribute{}, err
	}
	attnum, err := tuple.GetInt16(t, int(AnumSysAttributeAttnum))
	if err != nil {
		return SysAttribute{}, err
	}

	return SysAttribute{
		Attid:    t.RowID(),
		Attrelid: attrelid,
		Atttypid: oid.Type(atttypid),
		Attname:  attname,
		Attnum:   attnum,
	}, nil
}

func attributeToTuple(a SysAttribute) (*tuple.Tuple, error) {
	return tuple.Construct(a.Attid, []tuple.Column{
		tuple.Int64Column(a.Attrelid),
		tuple.Int32Column(int32(a.Atttypid)),
		tuple.NameColumn(a.Attname),
		tuple.Int16Column(a.Attnum),
	})
}

// AttributeCreateEntry appends a sys_attribute row, auto-assigning attid.
func AttributeCreateEntry(txn *relstore.Txn, attrelid int64, atttypid oid.Type, attname string, attnum int16) (int64, error) {
	rel, err := relstore.Create(txn, SysAttributeRelationID)
	if err != nil {
		return 0, err
	}

	tup, err := attributeToTuple(SysAttribute{Attrelid: attrelid, Atttypid: atttypid, Attname: attname, Attnum: attnum})
	if err != nil {
		return 0, err
	}
	return rel.TableAppend(tup)
}

// AttributeGetList returns attrelid's columns in attnum order
// 0..relnatts-1 (attnum 0 is the id column that doubles as the rowid),
// scanning the (attrelid, attnum) index with a two-key range:
// attrelid = ? AND attnum < relnatts+1.
func AttributeGetList(txn *relstore.Txn, attrelid int64, relnatts int16) ([]SysAttribute, error) {
	rel, err := relstore.OpenTable(txn, SysAttributeRelationID)
	if err != nil {
		return nil, err
	}

	keys := []scankey.Key{
		scankey.New(AnumSysAttributeAttrelid, scankey.Equal, oid.INT8OID, int64Bytes(attrelid)),
		scankey.New(AnumSysAttributeAttnum, scankey.Less, oid.INT2OID, int16Bytes(relnatts+1)),
	}

	scan, err := indexam.SysTableBeginScan(txn, rel, SysAttributeAttrelidAttnumIndex, keys)
	if err != nil {
		return nil, err
	}
	defer scan.SysTableEndScan()

	var out []SysAttribute
	for {
		row, err := scan.SysTableGetNext()
		if err != nil {
			return nil, err
		}
		if row == nil {
			return out, nil
		}
		a, err := attributeFromTuple(row)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
}
