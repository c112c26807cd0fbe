package catalog

import "github.com/litedb-go/litedb/relstore"

// RelationLoader implements relstore.Loader over the typed catalog rows,
// breaking what would otherwise be a relstore<->catalog import cycle: the
// relation-hydration logic depends on catalog's row decoding, but catalog
// itself depends on relstore's Create/OpenTable/scan primitives.
type RelationLoader struct{}

func (RelationLoader) LoadClass(txn *relstore.Txn, relid int64) (relstore.ClassMeta, bool, error) {
	c, found, err := ClassGetByRelid(txn, relid)
	if err != nil || !found {
		return relstore.ClassMeta{}, found, err
	}
	return relstore.ClassMeta{
		RelID:       c.Relid,
		RelName:     c.Relname,
		RelHasIndex: c.Relhasindex,
		RelKind:     c.Relkind,
		RelNatts:    c.Relnatts,
	}, true, nil
}

func (RelationLoader) LoadIndexes(txn *relstore.Txn, relid int64) ([]relstore.IndexMeta, error) {
	list, err := IndexGetList(txn, relid)
	if err != nil {
		return nil, err
	}
	out := make([]relstore.IndexMeta, len(list))
	for i, s := range list {
		out[i] = indexMetaOf(s)
	}
	return out, nil
}

func (RelationLoader) LoadAttributes(txn *relstore.Txn, relid int64, relnatts int16) ([]relstore.AttributeMeta, error) {
	list, err := AttributeGetList(txn, relid, relnatts)
	if err != nil {
		return nil, err
	}
	out := make([]relstore.AttributeMeta, len(list))
	for i, a := range list {
		out[i] = relstore.AttributeMeta{
			AttID:    a.Attid,
			AttRelID: a.Attrelid,
			AttTypID: int32(a.Atttypid),
			AttName:  a.Attname,
			AttNum:   a.Attnum,
		}
	}
	return out, nil
}

func (RelationLoader) LoadIndexByID(txn *relstore.Txn, indexRelID int64) (relstore.IndexMeta, bool, error) {
	s, found, err := IndexGetByIndexRelid(txn, indexRelID)
	if err != nil || !found {
		return relstore.IndexMeta{}, found, err
	}
	return indexMetaOf(s), true, nil
}

func indexMetaOf(s SysIndex) relstore.IndexMeta {
	return relstore.IndexMeta{
		IndexRelID:   s.Indexrelid,
		IndRelID:     s.Indrelid,
		IndNatts:     s.Indnatts,
		IndIsUnique:  s.Indisunique,
		IndIsPrimary: s.Indisprimary,
		IndKey:       s.Indkey,
	}
}
