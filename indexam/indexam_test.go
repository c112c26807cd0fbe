package indexam_test

import (
	"context"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/litedb-go/litedb/indexam"
	"github.com/litedb-go/litedb/kv"
	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/relstore"
	"github.com/litedb-go/litedb/scankey"
	"github.com/litedb-go/litedb/tuple"
	"github.com/stretchr/testify/require"
)

type nopLoader struct{}

func (nopLoader) LoadClass(*relstore.Txn, int64) (relstore.ClassMeta, bool, error) {
	return relstore.ClassMeta{}, false, nil
}
func (nopLoader) LoadIndexes(*relstore.Txn, int64) ([]relstore.IndexMeta, error) { return nil, nil }
func (nopLoader) LoadAttributes(*relstore.Txn, int64, int16) ([]relstore.AttributeMeta, error) {
	return nil, nil
}
func (nopLoader) LoadIndexByID(*relstore.Txn, int64) (relstore.IndexMeta, bool, error) {
	return relstore.IndexMeta{}, false, nil
}

func openTxn(t *testing.T) *relstore.Txn {
	t.Helper()
	env, err := kv.Open(filepath.Join(t.TempDir(), "test.mdbx"), kv.Options{})
	require.NoError(t, err)
	t.Cleanup(env.Close)

	kvTxn, err := env.Begin(context.Background(), true)
	require.NoError(t, err)
	return relstore.NewTxn(kvTxn, nopLoader{})
}

func row(rowid int64, code int32, label byte) *tuple.Tuple {
	tup, err := tuple.Construct(rowid, []tuple.Column{
		tuple.Int32Column(code),
		tuple.Int8Column(oid.CHAROID, int8(label)),
	})
	if err != nil {
		panic(err)
	}
	return tup
}

// TestBuildAgreesWithTable is universal law 3.
func TestBuildAgreesWithTable(t *testing.T) {
	txn := openTxn(t)
	table, err := relstore.Create(txn, 100)
	require.NoError(t, err)
	index, err := relstore.OpenIndex(txn, 101)
	require.NoError(t, err)

	rowids := make([]int64, 0, 20)
	for i := int32(0); i < 20; i++ {
		id, err := table.TableAppend(row(0, i, byte(i)))
		require.NoError(t, err)
		rowids = append(rowids, id)
	}

	info := indexam.IndexInfo{IndexAttrNumbers: []int16{1}, Unique: true}
	require.NoError(t, indexam.Build(table, index, info))

	for i, id := range rowids {
		key, err := tuple.Construct(0, []tuple.Column{tuple.Int32Column(int32(i))})
		require.NoError(t, err)

		val, found, err := index.Table.Get(key.Data())
		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, val, 8)
		require.Equal(t, id, int64(binary.NativeEndian.Uint64(val)))
	}
}

// TestUniqueViolation is universal law 4 / scenario S6.
func TestUniqueViolation(t *testing.T) {
	txn := openTxn(t)
	table, err := relstore.Create(txn, 200)
	require.NoError(t, err)
	index, err := relstore.OpenIndex(txn, 201)
	require.NoError(t, err)

	_, err = table.TableAppend(row(0, 7, 'a'))
	require.NoError(t, err)
	_, err = table.TableAppend(row(0, 7, 'b'))
	require.NoError(t, err)

	info := indexam.IndexInfo{IndexAttrNumbers: []int16{1}, Unique: true}
	err = indexam.Build(table, index, info)
	require.Error(t, err)
}

// TestEqualityPrefixScanSoundness is universal law 5.
func TestEqualityPrefixScanSoundness(t *testing.T) {
	txn := openTxn(t)
	table, err := relstore.Create(txn, 300)
	require.NoError(t, err)
	index, err := relstore.OpenIndex(txn, 301)
	require.NoError(t, err)

	var wantRowID int64
	for i := int32(0); i < 30; i++ {
		id, err := table.TableAppend(row(0, i%5, byte(i)))
		require.NoError(t, err)
		if i == 12 {
			wantRowID = id
		}
	}

	info := indexam.IndexInfo{IndexAttrNumbers: []int16{1}, Unique: false}
	require.NoError(t, indexam.Build(table, index, info))

	key := scankey.New(1, scankey.Equal, oid.INT4OID, int32Bytes(2))
	scan, err := indexam.BeginScan(table, index, []scankey.Key{key})
	require.NoError(t, err)
	defer scan.EndScan()

	var rowids []int64
	for {
		r, err := scan.GetNext()
		require.NoError(t, err)
		if r == nil {
			break
		}
		rowids = append(rowids, r.RowID())
		code, err := tuple.GetInt32(r, 1)
		require.NoError(t, err)
		require.EqualValues(t, 2, code)
	}
	require.Len(t, rowids, 6)
	require.Contains(t, rowids, wantRowID)
}

func int32Bytes(v int32) []byte {
	tup, err := tuple.Construct(0, []tuple.Column{tuple.Int32Column(v)})
	if err != nil {
		panic(err)
	}
	m, err := tup.GetMeta(1)
	if err != nil {
		panic(err)
	}
	return m.Data
}
