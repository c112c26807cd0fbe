package tuple_test

import (
	"testing"

	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/tuple"
	"github.com/stretchr/testify/require"
)

// S1: columns [CHAR=0xFF, INT2=0xFFFF, INT4=0xFFFFFFFF, INT8=0xFFFFFFFFFFFFFFFF,
// TEXT="i am v5", TEXT="i am v6"], rowid=0 -> columns()=7, accessors round-trip,
// GetBasicType on a mis-sized column fails with Corrupt.
func TestConstructScenarioS1(t *testing.T) {
	cols := []tuple.Column{
		tuple.Int8Column(oid.CHAROID, -1), // 0xFF as signed byte
		tuple.Int16Column(-1),             // 0xFFFF
		tuple.Int32Column(-1),             // 0xFFFFFFFF
		tuple.Int64Column(-1),             // 0xFFFFFFFFFFFFFFFF
		tuple.TextColumn("i am v5"),
		tuple.TextColumn("i am v6"),
	}

	tup, err := tuple.Construct(0, cols)
	require.NoError(t, err)
	require.Equal(t, 7, tup.Columns())

	c1, err := tuple.GetInt8(tup, 1)
	require.NoError(t, err)
	require.EqualValues(t, -1, c1)

	c2, err := tuple.GetInt16(tup, 2)
	require.NoError(t, err)
	require.EqualValues(t, -1, c2)

	c3, err := tuple.GetInt32(tup, 3)
	require.NoError(t, err)
	require.EqualValues(t, -1, c3)

	c4, err := tuple.GetInt64(tup, 4)
	require.NoError(t, err)
	require.EqualValues(t, -1, c4)

	s5, err := tup.GetSlice(5)
	require.NoError(t, err)
	require.Equal(t, "i am v5", string(s5))

	s6, err := tup.GetSlice(6)
	require.NoError(t, err)
	require.Equal(t, "i am v6", string(s6))

	// mis-sized accessor on the TEXT column fails Corrupt.
	_, err = tuple.GetInt32(tup, 5)
	require.True(t, lerrors.Is(err, lerrors.Corrupt))
}

// Universal law 1: tuple round-trip for any rowid > 0 and any column list.
func TestRoundTripLaw(t *testing.T) {
	cases := [][]tuple.Column{
		{tuple.Int64Column(42)},
		{tuple.NameColumn("sys_class"), tuple.BoolColumn(true), tuple.Int8Column(oid.CHAROID, 'r')},
		{tuple.TextColumn(""), tuple.TextColumn("x")},
	}

	for _, cols := range cases {
		tup, err := tuple.Construct(7, cols)
		require.NoError(t, err)
		require.Equal(t, len(cols)+1, tup.Columns())
		require.EqualValues(t, 7, tup.RowID())

		for i, c := range cols {
			got, err := tup.GetSlice(i + 1)
			require.NoError(t, err)
			require.Equal(t, c.Data, got)
			gotType, err := tup.GetType(i + 1)
			require.NoError(t, err)
			require.Equal(t, c.Type, gotType)
		}
	}
}

func TestCopyIsOwnedAndIndependent(t *testing.T) {
	tup, err := tuple.Construct(1, []tuple.Column{tuple.Int64Column(99)})
	require.NoError(t, err)

	cp := tup.Copy()
	require.Equal(t, tup.Data(), cp.Data())

	cp.Data()[0] = 0xFF
	require.NotEqual(t, tup.Data()[0], cp.Data()[0])
}

func TestRowIDColumnZero(t *testing.T) {
	tup, err := tuple.Construct(5, []tuple.Column{tuple.Int64Column(1)})
	require.NoError(t, err)

	meta, err := tup.GetMeta(0)
	require.NoError(t, err)
	require.Equal(t, oid.INT8OID, meta.Type)
	require.Len(t, meta.Data, 8)
}
