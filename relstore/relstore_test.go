package relstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/litedb-go/litedb/kv"
	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/relstore"
	"github.com/litedb-go/litedb/scankey"
	"github.com/litedb-go/litedb/tuple"
	"github.com/stretchr/testify/require"
)

// nopLoader hydrates nothing — every relation used in these tests is
// opened with relstore.Create, which never consults the Loader.
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

func openTxn(t *testing.T) (*kv.Environment, *relstore.Txn) {
	t.Helper()
	env, err := kv.Open(filepath.Join(t.TempDir(), "test.mdbx"), kv.Options{})
	require.NoError(t, err)
	t.Cleanup(env.Close)

	kvTxn, err := env.Begin(context.Background(), true)
	require.NoError(t, err)
	return env, relstore.NewTxn(kvTxn, nopLoader{})
}

func charTuple(rowid int64, v byte) *tuple.Tuple {
	tup, err := tuple.Construct(rowid, []tuple.Column{tuple.Int8Column(oid.CHAROID, int8(v))})
	if err != nil {
		panic(err)
	}
	return tup
}

// TestAppendAssignsSequentialRowids is scenario S2, scaled down: a forward
// scan after many TableAppend calls yields rowids in order starting at 1.
func TestAppendAssignsSequentialRowids(t *testing.T) {
	_, txn := openTxn(t)
	rel, err := relstore.Create(txn, 889)
	require.NoError(t, err)

	const n = 500
	for i := 0; i < n; i++ {
		id, err := rel.TableAppend(charTuple(0, byte(i)))
		require.NoError(t, err)
		require.Equal(t, int64(i+1), id)
	}

	scan, err := relstore.TableBeginScan(rel, nil)
	require.NoError(t, err)
	defer scan.EndScan()

	var got int64
	for {
		row, err := scan.GetNext()
		require.NoError(t, err)
		if row == nil {
			break
		}
		got++
		require.Equal(t, got, row.RowID())
	}
	require.EqualValues(t, n, got)
}

// TestNextIDMonotonicity is universal law 2.
func TestNextIDMonotonicity(t *testing.T) {
	_, txn := openTxn(t)
	rel, err := relstore.Create(txn, 42)
	require.NoError(t, err)

	next, err := rel.TableNextID()
	require.NoError(t, err)
	require.Equal(t, int64(1), next)

	var last int64
	for i := 0; i < 10; i++ {
		id, err := rel.TableAppend(charTuple(0, byte(i)))
		require.NoError(t, err)
		require.Greater(t, id, last)
		last = id
	}
}

// TestSequentialScanPredicateSoundness is universal law 6.
func TestSequentialScanPredicateSoundness(t *testing.T) {
	_, txn := openTxn(t)
	rel, err := relstore.Create(txn, 7)
	require.NoError(t, err)

	for i := byte(0); i < 10; i++ {
		_, err := rel.TableAppend(charTuple(0, i))
		require.NoError(t, err)
	}

	key := scankey.New(1, scankey.GreaterEqual, oid.CHAROID, []byte{5})
	scan, err := relstore.TableBeginScan(rel, []scankey.Key{key})
	require.NoError(t, err)
	defer scan.EndScan()

	var count int
	for {
		row, err := scan.GetNext()
		require.NoError(t, err)
		if row == nil {
			break
		}
		v, err := tuple.GetInt8(row, 1)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, int8(5))
		count++
	}
	require.Equal(t, 5, count)
}

// TestRowidEqualScan exercises the rowid-direct single-Get mode.
func TestRowidEqualScan(t *testing.T) {
	_, txn := openTxn(t)
	rel, err := relstore.Create(txn, 9)
	require.NoError(t, err)

	id, err := rel.TableAppend(charTuple(0, 42))
	require.NoError(t, err)

	key := scankey.New(0, scankey.Equal, oid.INT8OID, rowidBytes(id))
	scan, err := relstore.TableBeginScan(rel, []scankey.Key{key})
	require.NoError(t, err)
	defer scan.EndScan()

	row, err := scan.GetNext()
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, id, row.RowID())

	row, err = scan.GetNext()
	require.NoError(t, err)
	require.Nil(t, row)
}

// TestRowidLessThanIsNotSupported documents the §4.8 open question's
// resolution: Less/LessEqual on a rowid-direct scan are rejected rather
// than guessed at.
func TestRowidLessThanIsNotSupported(t *testing.T) {
	_, txn := openTxn(t)
	rel, err := relstore.Create(txn, 10)
	require.NoError(t, err)

	key := scankey.New(0, scankey.Less, oid.INT8OID, rowidBytes(5))
	_, err = relstore.TableBeginScan(rel, []scankey.Key{key})
	require.Error(t, err)
}

func rowidBytes(id int64) []byte {
	tup := charTuple(id, 0)
	m, err := tup.GetMeta(0)
	if err != nil {
		panic(err)
	}
	return m.Data
}
