// Package catalog implements the typed sys_class/sys_attribute/sys_index
// row views, their CRUD and lookup helpers keyed by well-known OIDs, and
// the bootstrap procedure that creates a fresh catalog (§4.6, §6.2).
//
// catalog sits above relstore and indexam: it implements relstore.Loader
// so that Relation.OpenTable can hydrate a relation's class/index/
// attribute metadata without relstore ever importing catalog back.
package catalog

import "github.com/litedb-go/litedb/oid"

// Well-known relation ids (§3 "Well-known OIDs").
const (
	SysClassRelationID     int64 = 1259
	SysAttributeRelationID int64 = 1249
	SysIndexRelationID     int64 = 2610
)

// Fixed secondary index ids, registered by Bootstrap.
const (
	SysClassRelidIndex   int64 = 2662
	SysClassRelnameIndex int64 = 2663

	SysAttributeAttidIndex           int64 = 2657
	SysAttributeAttrelidAttnameIndex int64 = 2658
	SysAttributeAttrelidAttnumIndex  int64 = 2659

	SysIndexIndexrelidIndex int64 = 2678
	SysIndexIndrelidIndex   int64 = 2679
)

const (
	RelkindRelation byte = 'r'
	RelkindIndex    byte = 'i'
)

// sys_class attribute numbers.
const (
	AnumSysClassRelid       int16 = 0
	AnumSysClassRelname     int16 = 1
	AnumSysClassRelhasindex int16 = 2
	AnumSysClassRelkind     int16 = 3
	AnumSysClassRelnatts    int16 = 4

	NattsSysClass = 5
)

// sys_attribute attribute numbers.
const (
	AnumSysAttributeAttid    int16 = 0
	AnumSysAttributeAttrelid int16 = 1
	AnumSysAttributeAtttypid int16 = 2
	AnumSysAttributeAttname  int16 = 3
	AnumSysAttributeAttnum   int16 = 4

	NattsSysAttribute = 5
)

// sys_index attribute numbers.
const (
	AnumSysIndexIndexrelid   int16 = 0
	AnumSysIndexIndrelid     int16 = 1
	AnumSysIndexIndnatts     int16 = 2
	AnumSysIndexIndisunique  int16 = 3
	AnumSysIndexIndisprimary int16 = 4
	AnumSysIndexIndkey       int16 = 5

	NattsSysIndex = 6
)

// SysClass is the typed view of one sys_class row.
type SysClass struct {
	Relid       int64
	Relname     string
	Relhasindex bool
	Relkind     byte
	Relnatts    int16
}

// SysAttribute is the typed view of one sys_attribute row.
type SysAttribute struct {
	Attid    int64
	Attrelid int64
	Atttypid oid.Type
	Attname  string
	Attnum   int16
}

// SysIndex is the typed view of one sys_index row.
type SysIndex struct {
	Indexrelid   int64
	Indrelid     int64
	Indnatts     int16
	Indisunique  bool
	Indisprimary bool
	Indkey       [oid.IndexMaxKeys]int16
}
