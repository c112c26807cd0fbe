package catalog

import (
	"github.com/litedb-go/litedb/bitmapset"
	"github.com/litedb-go/litedb/indexam"
	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/relstore"
)

// catalogColumn is one column of a bootstrap relation's own sys_attribute
// rows.
type catalogColumn struct {
	typ  oid.Type
	name string
	num  int16
}

// createRelationColumns inserts cols as relid's sys_attribute rows, first
// asserting invariant 6: relnatts equals the cardinality of the attribute-
// number set the columns form (no duplicate or missing attnos).
func createRelationColumns(txn *relstore.Txn, relid int64, relnatts int16, cols []catalogColumn) error {
	attnos := bitmapset.Empty()
	for _, c := range cols {
		attnos = attnos.Add(int(c.num))
	}
	if attnos.Len() != int(relnatts) {
		return lerrors.New(lerrors.Corrupt, "catalog: relation %d declares relnatts=%d but registers %d distinct attribute numbers", relid, relnatts, attnos.Len())
	}

	for _, c := range cols {
		if _, err := AttributeCreateEntry(txn, relid, c.typ, c.name, c.num); err != nil {
			return err
		}
	}
	return nil
}

// fixedIndex is one of the seven secondary indexes Bootstrap registers and
// builds over the three catalog tables (§6.2 item 4).
type fixedIndex struct {
	table       int64
	index       int64
	unique      bool
	primary     bool
	attrNumbers []int16
}

var fixedIndexes = []fixedIndex{
	{SysClassRelationID, SysClassRelidIndex, true, true, []int16{AnumSysClassRelid}},
	{SysClassRelationID, SysClassRelnameIndex, true, false, []int16{AnumSysClassRelname}},

	{SysAttributeRelationID, SysAttributeAttidIndex, true, true, []int16{AnumSysAttributeAttid}},
	{SysAttributeRelationID, SysAttributeAttrelidAttnameIndex, true, false, []int16{AnumSysAttributeAttrelid, AnumSysAttributeAttname}},
	{SysAttributeRelationID, SysAttributeAttrelidAttnumIndex, true, false, []int16{AnumSysAttributeAttrelid, AnumSysAttributeAttnum}},

	{SysIndexRelationID, SysIndexIndexrelidIndex, true, true, []int16{AnumSysIndexIndexrelid}},
	{SysIndexRelationID, SysIndexIndrelidIndex, false, false, []int16{AnumSysIndexIndrelid}},
}

// Bootstrap performs the one-time initdb procedure (§6.2) against a fresh
// catalog transaction: create the three bootstrap relations, insert their
// sys_class and sys_attribute rows, then register and build the seven
// fixed secondary indexes.
func Bootstrap(txn *relstore.Txn) error {
	if _, err := relstore.Create(txn, SysClassRelationID); err != nil {
		return err
	}
	if _, err := relstore.Create(txn, SysAttributeRelationID); err != nil {
		return err
	}
	if _, err := relstore.Create(txn, SysIndexRelationID); err != nil {
		return err
	}

	if err := initSysClass(txn); err != nil {
		return err
	}
	if err := initSysAttribute(txn); err != nil {
		return err
	}
	if err := initSysIndex(txn); err != nil {
		return err
	}

	// The descriptors Create cached above carry no class row; hydrate them
	// from the rows just inserted so later scans in this transaction see
	// relhasindex.
	for _, relid := range []int64{SysClassRelationID, SysAttributeRelationID, SysIndexRelationID} {
		rel, err := relstore.Create(txn, relid)
		if err != nil {
			return err
		}
		if rel.Class, _, err = (RelationLoader{}).LoadClass(txn, relid); err != nil {
			return err
		}
	}

	return buildFixedIndexes(txn)
}

func initSysClass(txn *relstore.Txn) error {
	if _, err := ClassCreateEntry(txn, SysClassRelationID, "sys_class", true, RelkindRelation, NattsSysClass); err != nil {
		return err
	}
	return createRelationColumns(txn, SysClassRelationID, NattsSysClass, []catalogColumn{
		{oid.INT8OID, "relid", AnumSysClassRelid},
		{oid.NAMEOID, "relname", AnumSysClassRelname},
		{oid.BOOLOID, "relhasindex", AnumSysClassRelhasindex},
		{oid.CHAROID, "relkind", AnumSysClassRelkind},
		{oid.INT2OID, "relnatts", AnumSysClassRelnatts},
	})
}

func initSysAttribute(txn *relstore.Txn) error {
	if _, err := ClassCreateEntry(txn, SysAttributeRelationID, "sys_attribute", true, RelkindRelation, NattsSysAttribute); err != nil {
		return err
	}
	return createRelationColumns(txn, SysAttributeRelationID, NattsSysAttribute, []catalogColumn{
		{oid.INT8OID, "attid", AnumSysAttributeAttid},
		{oid.INT8OID, "attrelid", AnumSysAttributeAttrelid},
		{oid.INT4OID, "atttypid", AnumSysAttributeAtttypid},
		{oid.NAMEOID, "attname", AnumSysAttributeAttname},
		{oid.INT2OID, "attnum", AnumSysAttributeAttnum},
	})
}

func initSysIndex(txn *relstore.Txn) error {
	if _, err := ClassCreateEntry(txn, SysIndexRelationID, "sys_index", true, RelkindRelation, NattsSysIndex); err != nil {
		return err
	}
	return createRelationColumns(txn, SysIndexRelationID, NattsSysIndex, []catalogColumn{
		{oid.INT8OID, "indexrelid", AnumSysIndexIndexrelid},
		{oid.INT8OID, "indrelid", AnumSysIndexIndrelid},
		{oid.INT2OID, "indnatts", AnumSysIndexIndnatts},
		{oid.BOOLOID, "indisunique", AnumSysIndexIndisunique},
		{oid.BOOLOID, "indisprimary", AnumSysIndexIndisprimary},
		{oid.INT2VECTOROID, "indkey", AnumSysIndexIndkey},
	})
}

func buildFixedIndexes(txn *relstore.Txn) error {
	for _, fi := range fixedIndexes {
		tableRel, err := relstore.Create(txn, fi.table)
		if err != nil {
			return err
		}
		indexRel, err := relstore.OpenIndex(txn, fi.index)
		if err != nil {
			return err
		}

		var indkey [oid.IndexMaxKeys]int16
		copy(indkey[:], fi.attrNumbers)

		if err := IndexCreateEntry(txn, SysIndex{
			Indexrelid:   fi.index,
			Indrelid:     fi.table,
			Indnatts:     int16(len(fi.attrNumbers)),
			Indisunique:  fi.unique,
			Indisprimary: fi.primary,
			Indkey:       indkey,
		}); err != nil {
			return err
		}

		info := indexam.IndexInfo{IndexAttrNumbers: fi.attrNumbers, Unique: fi.unique}
		if err := indexam.Build(tableRel, indexRel, info); err != nil {
			return err
		}
	}
	return nil
}
