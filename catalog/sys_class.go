package catalog

import (
	"github.com/litedb-go/litedb/indexam"
	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/relstore"
	"github.com/litedb-go/litedb/scankey"
	"github.com/litedb-go/litedb/tuple"
)

// classFromTuple decodes a sys_class row, reading relid from the tuple's
// attached rowid rather than a stored column.
func classFromTuple(t *tuple.Tuple) (SysClass, error) {
	if t.Columns() != NattsSysClass {
		return SysClass{}, lerrors.New(lerrors.Corrupt, "catalog: sys_class tuple has %d columns, want %d", t.Columns(), NattsSysClass)
	}

	relname, err := tuple.GetName(t, int(AnumSysClassRelname))
	if err != nil {
		return SysClass{}, err
	}
	relhasindex, err := tuple.GetBool(t, int(AnumSysClassRelhasindex))
	if err != nil {
		return SysClass{}, err
	}
	relkind, err := tuple.GetInt8(t, int(AnumSysClassRelkind))
	if err != nil {
		return SysClass{}, err
	}
	relnatts, err := tuple.GetInt16(t, int(AnumSysClassRelnatts))
	if err != nil {
		return SysClass{}, err
	}

	return SysClass{
		Relid:       t.RowID(),
		Relname:     relname,
		Relhasindex: relhasindex,
		Relkind:     byte(relkind),
		Relnatts:    relnatts,
	}, nil
}

// classToTuple omits the id column — the rowid itself is the relid.
func classToTuple(c SysClass) (*tuple.Tuple, error) {
	return tuple.Construct(c.Relid, []tuple.Column{
		tuple.NameColumn(c.Relname),
		tuple.BoolColumn(c.Relhasindex),
		tuple.Int8Column(oid.CHAROID, int8(c.Relkind)),
		tuple.Int16Column(c.Relnatts),
	})
}

// ClassCreateEntry inserts a sys_class row. relid <= 0 means "assign the
// next id"; otherwise the caller's id (the bootstrap path) is used as-is.
func ClassCreateEntry(txn *relstore.Txn, relid int64, relname string, relhasindex bool, relkind byte, relnatts int16) (int64, error) {
	rel, err := relstore.Create(txn, SysClassRelationID)
	if err != nil {
		return 0, err
	}

	id := relid
	if id <= 0 {
		id, err = rel.TableNextID()
		if err != nil {
			return 0, err
		}
	}

	tup, err := classToTuple(SysClass{Relid: id, Relname: relname, Relhasindex: relhasindex, Relkind: relkind, Relnatts: relnatts})
	if err != nil {
		return 0, err
	}
	if err := rel.TableInsert(id, tup); err != nil {
		return 0, err
	}
	return id, nil
}

// ClassGetByRelid performs a direct Get on the sys_class table sub-store.
func ClassGetByRelid(txn *relstore.Txn, relid int64) (SysClass, bool, error) {
	rel, err := relstore.Create(txn, SysClassRelationID)
	if err != nil {
		return SysClass{}, false, err
	}

	val, found, err := rel.Table.Get(rowidKeyBytes(relid))
	if err != nil {
		return SysClass{}, false, err
	}
	if !found {
		return SysClass{}, false, nil
	}

	t := tuple.New(val)
	t.SetRowID(relid)
	c, err := classFromTuple(t)
	if err != nil {
		return SysClass{}, false, err
	}
	return c, true, nil
}

// ClassGetByRelname runs an equality scan on sys_class_relname_index and
// returns a copy of the matching row's tuple (supplementing the distilled
// spec's CRUD surface — grounded on SysClass::GetSysClass).
func ClassGetByRelname(txn *relstore.Txn, relname string) (*tuple.Tuple, bool, error) {
	rel, err := relstore.OpenTable(txn, SysClassRelationID)
	if err != nil {
		return nil, false, err
	}

	key := scankey.New(AnumSysClassRelname, scankey.Equal, oid.NAMEOID, nameBytes(relname))
	scan, err := indexam.SysTableBeginScan(txn, rel, SysClassRelnameIndex, []scankey.Key{key})
	if err != nil {
		return nil, false, err
	}
	defer scan.SysTableEndScan()

	row, err := scan.SysTableGetNext()
	if err != nil {
		return nil, false, err
	}
	if row == nil {
		return nil, false, nil
	}
	return row.Copy(), true, nil
}
