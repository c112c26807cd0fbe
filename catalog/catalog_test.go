package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/litedb-go/litedb/catalog"
	"github.com/litedb-go/litedb/kv"
	"github.com/litedb-go/litedb/relstore"
	"github.com/stretchr/testify/require"
)

func bootstrapped(t *testing.T) *relstore.Txn {
	t.Helper()
	env, err := kv.Open(filepath.Join(t.TempDir(), "catalog.mdbx"), kv.Options{})
	require.NoError(t, err)
	t.Cleanup(env.Close)

	kvTxn, err := env.Begin(context.Background(), true)
	require.NoError(t, err)
	txn := relstore.NewTxn(kvTxn, catalog.RelationLoader{})

	require.NoError(t, catalog.Bootstrap(txn))
	return txn
}

func countRows(t *testing.T, rel *relstore.Relation) int {
	t.Helper()
	scan, err := relstore.TableBeginScan(rel, nil)
	require.NoError(t, err)
	defer scan.EndScan()

	var n int
	for {
		row, err := scan.GetNext()
		require.NoError(t, err)
		if row == nil {
			return n
		}
		n++
	}
}

// TestBootstrapPopulatesCatalog is scenario S3: a fresh catalog has exactly
// three sys_class rows (the bootstrap relations themselves) and one
// sys_attribute row per column they declare.
func TestBootstrapPopulatesCatalog(t *testing.T) {
	txn := bootstrapped(t)

	for _, relid := range []int64{catalog.SysClassRelationID, catalog.SysAttributeRelationID, catalog.SysIndexRelationID} {
		c, found, err := catalog.ClassGetByRelid(txn, relid)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, relid, c.Relid)
		require.True(t, c.Relhasindex)
		require.Equal(t, catalog.RelkindRelation, c.Relkind)
	}

	classRel, err := relstore.OpenTable(txn, catalog.SysClassRelationID)
	require.NoError(t, err)
	require.Equal(t, 3, countRows(t, classRel))

	attrRel, err := relstore.OpenTable(txn, catalog.SysAttributeRelationID)
	require.NoError(t, err)
	require.Equal(t, catalog.NattsSysClass+catalog.NattsSysAttribute+catalog.NattsSysIndex, countRows(t, attrRel))
}

// TestEqualityIndexScanOnRelname is scenario S4: an equality scan against
// sys_class_relname_index returns exactly the row for the requested name.
func TestEqualityIndexScanOnRelname(t *testing.T) {
	txn := bootstrapped(t)

	tup, found, err := catalog.ClassGetByRelname(txn, "sys_class")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, catalog.SysClassRelationID, tup.RowID())

	_, found, err = catalog.ClassGetByRelname(txn, "no_such_relation")
	require.NoError(t, err)
	require.False(t, found)
}

// TestAttributeListOrderedByAttnum is scenario S5: a system-table scan over
// the (attrelid, attnum) index, with attnos remapped onto the index's own
// column positions, returns a relation's columns in attnum order and
// filtered to that relid alone.
func TestAttributeListOrderedByAttnum(t *testing.T) {
	txn := bootstrapped(t)

	attrs, err := catalog.AttributeGetList(txn, catalog.SysClassRelationID, catalog.NattsSysClass)
	require.NoError(t, err)
	require.Len(t, attrs, int(catalog.NattsSysClass))

	for i, a := range attrs {
		require.Equal(t, catalog.SysClassRelationID, a.Attrelid)
		require.EqualValues(t, i, a.Attnum)
	}

	indexAttrs, err := catalog.AttributeGetList(txn, catalog.SysIndexRelationID, catalog.NattsSysIndex)
	require.NoError(t, err)
	require.Len(t, indexAttrs, int(catalog.NattsSysIndex))
	for i, a := range indexAttrs {
		require.Equal(t, catalog.SysIndexRelationID, a.Attrelid)
		require.EqualValues(t, i, a.Attnum)
	}
}

// TestIndexGetListReturnsFixedIndexes exercises sys_index's own sequential
// lookup helper (grounded directly on SysIndex::GetIndexList, which scans
// sys_index without going through an index itself).
func TestIndexGetListReturnsFixedIndexes(t *testing.T) {
	txn := bootstrapped(t)

	indexes, err := catalog.IndexGetList(txn, catalog.SysClassRelationID)
	require.NoError(t, err)
	require.Len(t, indexes, 2)

	byRelid, found, err := catalog.IndexGetByIndexRelid(txn, catalog.SysClassRelidIndex)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, catalog.SysClassRelationID, byRelid.Indrelid)
	require.True(t, byRelid.Indisunique)
	require.True(t, byRelid.Indisprimary)
}
